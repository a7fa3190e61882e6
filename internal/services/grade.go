package services

import (
	"math"
	"sort"
	"strings"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
)

const PassingPercentage = 70

type QuestionResult struct {
	QuestionID    string `json:"question_id"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

type Grade struct {
	Score       int
	TotalPoints int
	Percentage  float64
	Passed      bool
	Perfect     bool
	Results     []QuestionResult
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// grade scores answers keyed by question id. Unanswered questions compare
// as the empty string. Keys are matched case-insensitively; when several
// raw keys fold to the same id, the canonical lower-case key wins, else the
// lexically smallest raw key.
func grade(questions []*types.QuizQuestion, answers map[string]string) Grade {
	raw := make([]string, 0, len(answers))
	for k := range answers {
		raw = append(raw, k)
	}
	sort.Strings(raw)
	byKey := make(map[string]string, len(answers))
	for _, k := range raw {
		id := normalizeAnswer(k)
		if _, seen := byKey[id]; seen && k != id {
			continue
		}
		byKey[id] = answers[k]
	}

	g := Grade{Results: make([]QuestionResult, 0, len(questions))}
	for _, q := range questions {
		id := q.ID.String()
		correct := normalizeAnswer(byKey[id]) == normalizeAnswer(q.CorrectAnswer)
		if correct {
			g.Score += q.Points
		}
		g.TotalPoints += q.Points
		g.Results = append(g.Results, QuestionResult{
			QuestionID:    id,
			Correct:       correct,
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	if g.TotalPoints > 0 {
		g.Percentage = 100 * float64(g.Score) / float64(g.TotalPoints)
		g.Passed = g.Score*100 >= g.TotalPoints*PassingPercentage
		g.Perfect = g.Score == g.TotalPoints
	}
	return g
}

func roundPercentage(p float64) float64 {
	return math.Round(p*100) / 100
}
