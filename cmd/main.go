package main

import (
	"os"

	"github.com/yungbote/kazlearn-backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
