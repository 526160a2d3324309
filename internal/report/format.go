package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"speakerline/internal/language"
)

// languageLabel renders "English (en)" for recognized codes and the bare
// code otherwise.
func languageLabel(code string) string {
	name := language.DisplayName(code)
	if strings.EqualFold(name, code) {
		return code
	}
	return name + " (" + code + ")"
}

// Clock formats seconds as m:ss, truncating fractions.
func Clock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const rule = "============================================================"
