package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"national mobile", "11 98765-4321", "+5511987654321"},
		{"already e164", "+5511987654321", "+5511987654321"},
		{"landline", "(11) 3456-7890", "+551134567890"},
		{"invalid passes through", "abc", "abc"},
		{"empty", "", ""},
		{"whitespace trimmed", "  +5511987654321  ", "+5511987654321"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input); got != tc.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseE164(t *testing.T) {
	got, err := ParseE164("11 98765-4321")
	if err != nil {
		t.Fatalf("ParseE164 failed: %v", err)
	}
	if got != "+5511987654321" {
		t.Errorf("got %q", got)
	}

	if _, err := ParseE164("abc"); err == nil {
		t.Error("expected error for non-number input")
	}
}
