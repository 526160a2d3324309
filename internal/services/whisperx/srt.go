package whisperx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"speakerline/internal/services"
	"speakerline/internal/timeline"
)

// LoadSRT reads SRT cues as text spans. SRT carries no confidence, so every
// span gets 0. Cues with blank text are skipped; a cue without a parseable
// timing line fails the whole file.
func LoadSRT(path, language string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Transcript{}, services.Wrap(services.ErrNotFound, "transcription", "load", fmt.Sprintf("subtitle file %q not found", path), nil)
		}
		return Transcript{}, services.Wrap(services.ErrValidation, "transcription", "load", path, err)
	}
	out, err := parseSRT(string(data))
	if err != nil {
		return Transcript{}, fmt.Errorf("%s: %w", path, err)
	}
	out.Language = strings.TrimSpace(language)
	return out, nil
}

func parseSRT(content string) (Transcript, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	var out Transcript
	if content == "" {
		return out, nil
	}

	var texts []string
	cue := 0
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		cue++
		lines := strings.Split(block, "\n")
		timing := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timing = i
				break
			}
		}
		if timing < 0 {
			return Transcript{}, invalidCue(cue, "missing timing line")
		}
		parts := strings.Split(lines[timing], "-->")
		if len(parts) != 2 {
			return Transcript{}, invalidCue(cue, fmt.Sprintf("malformed timing line %q", lines[timing]))
		}
		start, err := parseSRTTimestamp(parts[0])
		if err != nil {
			return Transcript{}, invalidCue(cue, "start "+err.Error())
		}
		end, err := parseSRTTimestamp(firstField(parts[1]))
		if err != nil {
			return Transcript{}, invalidCue(cue, "end "+err.Error())
		}
		text := strings.Join(strings.Fields(strings.Join(lines[timing+1:], " ")), " ")
		if text == "" {
			out.Skipped++
			continue
		}
		span, err := timeline.NewTextSpan(start, end, text, 0)
		if err != nil {
			return Transcript{}, fmt.Errorf("cue %d: %w", cue, err)
		}
		out.Spans = append(out.Spans, span)
		texts = append(texts, span.Text)
	}
	out.Text = strings.Join(texts, " ")
	return out, nil
}

func invalidCue(cue int, detail string) error {
	return services.Wrap(services.ErrValidation, "transcription", "parse srt", fmt.Sprintf("cue %d: %s", cue, detail), nil)
}

// firstField drops cue settings trailing the end timestamp.
func firstField(value string) string {
	if fields := strings.Fields(value); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func parseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// Normalize period to comma (SRT standard uses comma for milliseconds)
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
