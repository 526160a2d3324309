package language

import "testing"

func TestToISO2(t *testing.T) {
	cases := map[string]string{
		"en":       "en",
		"EN":       "en",
		"eng":      "en",
		"fre":      "fr",
		"ger":      "de",
		"chi":      "zh",
		"dut":      "nl",
		"nob":      "no",
		"english":  "en",
		"Deutsch":  "de",
		"Türkçe":   "tr",
		"xy":       "xy", // unknown two-letter codes pass through
		"xyz":      "",
		"":         "",
		" ":        "",
		"mandarin": "zh",
	}
	for input, want := range cases {
		if got := ToISO2(input); got != want {
			t.Errorf("ToISO2(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"en":             "en",
		" TR ":           "tr",
		"spanish":        "es",
		"deu":            "de",
		"pt-BR":          "pt",
		"en-US":          "en",
		"sw":             "sw",
		"":               "unknown",
		"   ":            "unknown",
		"not a language": "unknown",
	}
	for input, want := range cases {
		if got := Normalize(input, "unknown"); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"en":             "English",
		"eng":            "English",
		"fre":            "French",
		"zho":            "Chinese",
		"sw":             "Swahili",
		"english":        "English",
		"":               "Unknown",
		"not a language": "NOT A LANGUAGE",
	}
	for input, want := range cases {
		if got := DisplayName(input); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", input, got, want)
		}
	}
}
