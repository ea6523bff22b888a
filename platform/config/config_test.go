package config

import (
	"testing"
	"time"
)

func TestParseTiers(t *testing.T) {
	tests := []struct {
		raw     string
		want    []time.Duration
		wantErr bool
	}{
		{"6h,48h", []time.Duration{6 * time.Hour, 48 * time.Hour}, false},
		{" 30m , 2h ", []time.Duration{30 * time.Minute, 2 * time.Hour}, false},
		{"", nil, true},
		{"banana", nil, true},
		{"-1h", nil, true},
	}

	for _, tc := range tests {
		got, err := parseTiers(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseTiers(%q) expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTiers(%q) unexpected error: %v", tc.raw, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("parseTiers(%q) = %v, want %v", tc.raw, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("parseTiers(%q)[%d] = %v, want %v", tc.raw, i, got[i], tc.want[i])
			}
		}
	}
}

func TestParseRules(t *testing.T) {
	rules, err := parseRules("Auto:2015:10000:1000000;Reloj:1990:20000:500000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	auto, ok := rules["Auto"]
	if !ok {
		t.Fatal("missing Auto rule")
	}
	if auto.MinYear != 2015 || auto.MinAmount != 10000 || auto.MaxAmount != 1000000 {
		t.Errorf("unexpected Auto rule: %+v", auto)
	}

	if _, ok := rules["Reloj"]; !ok {
		t.Error("missing Reloj rule")
	}
}

func TestParseRulesInvalid(t *testing.T) {
	invalid := []string{
		"",
		"Auto:2015:10000",
		"Auto:year:10000:1000000",
		"Auto:2015:1000000:10000",
	}

	for _, raw := range invalid {
		if _, err := parseRules(raw); err == nil {
			t.Errorf("parseRules(%q) expected error", raw)
		}
	}
}
