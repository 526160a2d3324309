package timeline

import (
	"fmt"
	"strings"

	"speakerline/internal/services"
)

// UnknownSpeaker labels text spans aligned without any identity data.
const UnknownSpeaker = "UNKNOWN"

// TextSpan is a transcribed region of audio.
type TextSpan struct {
	Interval
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// IdentitySpan is a diarized region attributed to an opaque speaker label.
type IdentitySpan struct {
	Interval
	Speaker string `json:"speaker"`
}

// AlignedSpan is a text span with its resolved speaker.
type AlignedSpan struct {
	TextSpan
	Speaker string `json:"speaker"`
}

// NewTextSpan validates the interval, trims the text, and checks confidence
// is within [0, 1]. Blank text is rejected.
func NewTextSpan(start, end float64, text string, confidence float64) (TextSpan, error) {
	iv, err := NewInterval(start, end)
	if err != nil {
		return TextSpan{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return TextSpan{}, services.InvalidArgument("timeline", "text span", "blank text at [%.2f, %.2f]", start, end)
	}
	if !finite(confidence) || confidence < 0 || confidence > 1 {
		return TextSpan{}, services.InvalidArgument("timeline", "text span", "confidence %v outside [0, 1]", confidence)
	}
	return TextSpan{Interval: iv, Text: text, Confidence: confidence}, nil
}

// NewIdentitySpan validates the interval and requires a non-blank label.
func NewIdentitySpan(start, end float64, speaker string) (IdentitySpan, error) {
	iv, err := NewInterval(start, end)
	if err != nil {
		return IdentitySpan{}, err
	}
	speaker = strings.TrimSpace(speaker)
	if speaker == "" {
		return IdentitySpan{}, services.InvalidArgument("timeline", "identity span", "blank speaker at [%.2f, %.2f]", start, end)
	}
	return IdentitySpan{Interval: iv, Speaker: speaker}, nil
}

// ValidateTextSpans checks every span against the constructor invariants and
// reports the first offending index.
func ValidateTextSpans(spans []TextSpan) error {
	for i, span := range spans {
		if _, err := NewTextSpan(span.Start, span.End, span.Text, span.Confidence); err != nil {
			return fmt.Errorf("text span %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateIdentitySpans checks every span against the constructor invariants
// and reports the first offending index.
func ValidateIdentitySpans(spans []IdentitySpan) error {
	for i, span := range spans {
		if _, err := NewIdentitySpan(span.Start, span.End, span.Speaker); err != nil {
			return fmt.Errorf("identity span %d: %w", i+1, err)
		}
	}
	return nil
}

// IsOrdered reports whether spans have non-decreasing start times.
func IsOrdered(spans []AlignedSpan) bool {
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].Start {
			return false
		}
	}
	return true
}

// Texts returns the text of each span in order.
func Texts(spans []AlignedSpan) []string {
	out := make([]string, 0, len(spans))
	for _, span := range spans {
		out = append(out, span.Text)
	}
	return out
}
