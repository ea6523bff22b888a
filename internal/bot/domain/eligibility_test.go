package domain

import (
	"strings"
	"testing"
)

func testRules() RuleSet {
	return RuleSet{
		"Auto":       {MinYear: 2015, MinAmount: 10000, MaxAmount: 1000000},
		"Maquinaria": {MinYear: 2010, MinAmount: 50000, MaxAmount: 3000000},
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		year       int
		amount     float64
		wantViable bool
		wantReason string
	}{
		{"viable auto", "Auto", 2020, 500000, true, ""},
		{"year below minimum", "Auto", 2012, 30000, false, "below minimum"},
		{"amount below band", "Auto", 2020, 5000, false, "below minimum"},
		{"amount above band", "Auto", 2020, 2000000, false, "above maximum"},
		{"unknown kind is never viable", "UnknownKind", 2020, 100000, false, "no configured rule"},
		{"boundary year is viable", "Auto", 2015, 10000, true, ""},
		{"boundary max is viable", "Maquinaria", 2010, 3000000, true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(testRules(), tc.kind, tc.year, tc.amount)
			if got.Viable != tc.wantViable {
				t.Fatalf("Evaluate(%q, %d, %v).Viable = %v, want %v",
					tc.kind, tc.year, tc.amount, got.Viable, tc.wantViable)
			}
			if tc.wantReason != "" && !strings.Contains(got.Reason, tc.wantReason) {
				t.Errorf("reason %q does not mention %q", got.Reason, tc.wantReason)
			}
		})
	}
}
