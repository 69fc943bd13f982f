package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"eng", "en"},
		{"fre", "fr"},
		{"ger", "de"},
		{"english", "en"},
		{"French", "fr"},
		{"en-US", "en"},
		{"es_MX", "es"},
		{"xy", "xy"},
		{"xyz", ""},
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToISO2(tt.input); got != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("sv"); got != "Swedish" {
		t.Errorf("DisplayName(sv) = %q", got)
	}
	if got := DisplayName(""); got != "Unknown" {
		t.Errorf("DisplayName(empty) = %q", got)
	}
	if got := DisplayName("xx"); got != "XX" {
		t.Errorf("DisplayName(xx) = %q", got)
	}
}

func TestSnowballName(t *testing.T) {
	tests := map[string]string{
		"en":    "english",
		"en-GB": "english",
		"spa":   "spanish",
		"ru":    "russian",
		"de":    "",
		"ja":    "",
		"":      "",
	}
	for input, want := range tests {
		if got := SnowballName(input); got != want {
			t.Errorf("SnowballName(%q) = %q, want %q", input, got, want)
		}
	}
}
