package achievement

import (
	"fmt"
	"strings"
)

type RequirementType string

const (
	RequirementGamesWon         RequirementType = "games_won"
	RequirementWordsLearned     RequirementType = "words_learned"
	RequirementPerfectTests     RequirementType = "perfect_tests"
	RequirementStreakDays       RequirementType = "streak_days"
	RequirementCoursesCompleted RequirementType = "courses_completed"
)

var RequirementTypes = []RequirementType{
	RequirementGamesWon,
	RequirementWordsLearned,
	RequirementPerfectTests,
	RequirementStreakDays,
	RequirementCoursesCompleted,
}

func ParseRequirementType(raw string) (RequirementType, error) {
	rt := RequirementType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range RequirementTypes {
		if rt == known {
			return rt, nil
		}
	}
	return "", fmt.Errorf("unknown requirement type %q", raw)
}

// Satisfied reports whether an event of this type with the given magnitude
// meets a trophy threshold. perfect_tests is a flag: any perfect result
// satisfies every trophy of that type regardless of its threshold.
func (rt RequirementType) Satisfied(threshold, magnitude int) bool {
	switch rt {
	case RequirementPerfectTests:
		return magnitude > 0
	case RequirementGamesWon, RequirementWordsLearned, RequirementStreakDays, RequirementCoursesCompleted:
		return magnitude >= threshold
	default:
		return false
	}
}
