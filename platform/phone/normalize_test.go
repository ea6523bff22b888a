package phone

import "testing"

func TestNormalizeSender(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"whatsapp:+5215512345678", "+5215512345678"},
		{"WhatsApp:+5215512345678", "+5215512345678"},
		{"+5215512345678", "+5215512345678"},
		{"55 1234 5678", "+525512345678"},
		{"tel:+14155552671", "+14155552671"},
		{"", ""},
		{"not-a-number", "not-a-number"},
	}

	for _, tc := range tests {
		if got := NormalizeSender(tc.input); got != tc.want {
			t.Errorf("NormalizeSender(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeE164KeepsInvalidInput(t *testing.T) {
	if got := NormalizeE164("12"); got != "12" {
		t.Errorf("NormalizeE164(%q) = %q, want input back", "12", got)
	}
}
