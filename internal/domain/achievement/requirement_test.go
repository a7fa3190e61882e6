package achievement

import "testing"

func TestRequirementSatisfied(t *testing.T) {
	cases := []struct {
		rt        RequirementType
		threshold int
		magnitude int
		want      bool
	}{
		{RequirementWordsLearned, 10, 9, false},
		{RequirementWordsLearned, 10, 10, true},
		{RequirementCoursesCompleted, 1, 1, true},
		{RequirementStreakDays, 7, 3, false},
		{RequirementGamesWon, 1, 0, false},
		{RequirementPerfectTests, 5, 1, true},
		{RequirementPerfectTests, 1, 0, false},
		{RequirementType("bogus"), 0, 100, false},
	}
	for _, tc := range cases {
		if got := tc.rt.Satisfied(tc.threshold, tc.magnitude); got != tc.want {
			t.Fatalf("%s(%d,%d): want=%v got=%v", tc.rt, tc.threshold, tc.magnitude, tc.want, got)
		}
	}
}

func TestParseRequirementType(t *testing.T) {
	for _, rt := range RequirementTypes {
		got, err := ParseRequirementType(" " + string(rt) + " ")
		if err != nil || got != rt {
			t.Fatalf("ParseRequirementType(%s): got=%v err=%v", rt, got, err)
		}
	}
	if _, err := ParseRequirementType("logins"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
