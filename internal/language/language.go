package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// entry is one supported language: its ISO 639-1 code, display name, and
// every alias (ISO 639-2 codes, English and native names) that maps to it.
type entry struct {
	code2   string
	display string
	aliases []string
}

var languages = []entry{
	{"en", "English", []string{"eng", "english"}},
	{"es", "Spanish", []string{"spa", "spanish", "español"}},
	{"fr", "French", []string{"fra", "fre", "french", "français"}},
	{"de", "German", []string{"deu", "ger", "german", "deutsch"}},
	{"it", "Italian", []string{"ita", "italian", "italiano"}},
	{"pt", "Portuguese", []string{"por", "portuguese", "português"}},
	{"nl", "Dutch", []string{"nld", "dut", "dutch", "nederlands"}},
	{"tr", "Turkish", []string{"tur", "turkish", "türkçe"}},
	{"ru", "Russian", []string{"rus", "russian"}},
	{"pl", "Polish", []string{"pol", "polish", "polski"}},
	{"sv", "Swedish", []string{"swe", "swedish", "svenska"}},
	{"da", "Danish", []string{"dan", "danish", "dansk"}},
	{"no", "Norwegian", []string{"nor", "nob", "norwegian", "norsk"}},
	{"fi", "Finnish", []string{"fin", "finnish", "suomi"}},
	{"ja", "Japanese", []string{"jpn", "japanese"}},
	{"ko", "Korean", []string{"kor", "korean"}},
	{"zh", "Chinese", []string{"zho", "chi", "chinese", "mandarin"}},
	{"ar", "Arabic", []string{"ara", "arabic"}},
	{"hi", "Hindi", []string{"hin", "hindi"}},
	{"uk", "Ukrainian", []string{"ukr", "ukrainian"}},
}

// index maps every code and alias to its entry.
var index = buildIndex()

func buildIndex() map[string]*entry {
	m := make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		m[e.code2] = e
		for _, alias := range e.aliases {
			m[alias] = e
		}
	}
	return m
}

func lookup(code string) *entry {
	return index[strings.ToLower(strings.TrimSpace(code))]
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
// If the input is already a 2-letter code (even if unknown), it passes through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// Normalize maps a reported language to a lower-case code. Known codes and
// words become ISO 639-1; other valid BCP 47 tags reduce to their base
// language ("pt-BR" becomes "pt"). Blank or unparseable input returns
// fallback.
func Normalize(code, fallback string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return fallback
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	tag, err := language.Parse(code)
	if err != nil {
		return fallback
	}
	base, confidence := tag.Base()
	if confidence == language.No || base.String() == "und" {
		return fallback
	}
	return base.String()
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	if tag, err := language.Parse(code); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(code)
}
