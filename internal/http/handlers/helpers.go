package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/observability"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/ctxutil"
)

// pathID parses a uuid path parameter. A malformed id cannot name an
// existing row, so it is reported as not found.
func pathID(c *gin.Context, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apierr.NotFound(what + " not found")
	}
	return id, nil
}

func viewerID(c *gin.Context) uuid.UUID {
	return ctxutil.UserID(c.Request.Context())
}

func recordTrophies(m *observability.Metrics, trophies []*types.Trophy) {
	for _, t := range trophies {
		m.IncTrophyGranted(string(t.RequirementType))
	}
}
