package pyannote

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"speakerline/internal/services"
	"speakerline/internal/timeline"
)

// Record is one diarized turn in JSON or YAML input.
type Record struct {
	Speaker string  `json:"speaker" yaml:"speaker"`
	Start   float64 `json:"start" yaml:"start"`
	End     float64 `json:"end" yaml:"end"`
}

type envelope struct {
	Segments []Record `json:"segments" yaml:"segments"`
}

// Load reads identity spans from path, choosing the parser by extension.
func Load(path string) ([]timeline.IdentitySpan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "diarization", "load", fmt.Sprintf("diarization file %q not found", path), nil)
		}
		return nil, services.Wrap(services.ErrValidation, "diarization", "load", path, err)
	}

	var spans []timeline.IdentitySpan
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".rttm":
		spans, err = ParseRTTM(data)
	case ".json":
		spans, err = ParseJSON(data)
	case ".yaml", ".yml":
		spans, err = ParseYAML(data)
	default:
		return nil, services.InvalidArgument("diarization", "load", "unsupported diarization format %q (want .rttm, .json, or .yaml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spans, nil
}

// ParseRTTM reads SPEAKER lines:
//
//	SPEAKER <file> <channel> <onset> <duration> <NA> <NA> <label> <NA> <NA>
//
// Other record types and ;; comments are ignored.
func ParseRTTM(data []byte) ([]timeline.IdentitySpan, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	spans := make([]timeline.IdentitySpan, 0)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], ";;") || fields[0] != "SPEAKER" {
			continue
		}
		if len(fields) < 8 {
			return nil, services.Wrap(services.ErrValidation, "diarization", "parse rttm", fmt.Sprintf("line %d: expected at least 8 fields, got %d", line, len(fields)), nil)
		}
		onset, errOnset := strconv.ParseFloat(fields[3], 64)
		duration, errDuration := strconv.ParseFloat(fields[4], 64)
		if errOnset != nil || errDuration != nil {
			return nil, services.Wrap(services.ErrValidation, "diarization", "parse rttm", fmt.Sprintf("line %d: invalid onset or duration", line), nil)
		}
		span, err := timeline.NewIdentitySpan(onset, onset+duration, fields[7])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		spans = append(spans, span)
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrValidation, "diarization", "parse rttm", "scan failed", err)
	}
	return spans, nil
}

// ParseJSON reads a list of records, bare or under "segments".
func ParseJSON(data []byte) ([]timeline.IdentitySpan, error) {
	trimmed := bytes.TrimSpace(data)
	var records []Record
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, services.Wrap(services.ErrValidation, "diarization", "parse json", "", err)
		}
	} else {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, services.Wrap(services.ErrValidation, "diarization", "parse json", "", err)
		}
		records = env.Segments
	}
	return FromRecords(records)
}

// ParseYAML reads the same shapes as ParseJSON from YAML.
func ParseYAML(data []byte) ([]timeline.IdentitySpan, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, services.Wrap(services.ErrValidation, "diarization", "parse yaml", "", err)
	}
	if len(node.Content) == 0 {
		return []timeline.IdentitySpan{}, nil
	}
	root := node.Content[0]
	var records []Record
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&records); err != nil {
			return nil, services.Wrap(services.ErrValidation, "diarization", "parse yaml", "", err)
		}
	default:
		var env envelope
		if err := root.Decode(&env); err != nil {
			return nil, services.Wrap(services.ErrValidation, "diarization", "parse yaml", "", err)
		}
		records = env.Segments
	}
	return FromRecords(records)
}

// FromRecords validates records into identity spans.
func FromRecords(records []Record) ([]timeline.IdentitySpan, error) {
	spans := make([]timeline.IdentitySpan, 0, len(records))
	for i, rec := range records {
		span, err := timeline.NewIdentitySpan(rec.Start, rec.End, rec.Speaker)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		spans = append(spans, span)
	}
	return spans, nil
}

// FormatRTTM renders spans as RTTM lines for uri.
func FormatRTTM(uri string, spans []timeline.IdentitySpan) string {
	if uri = strings.TrimSpace(uri); uri == "" {
		uri = "audio"
	}
	var b strings.Builder
	for _, span := range spans {
		fmt.Fprintf(&b, "SPEAKER %s 1 %.3f %.3f <NA> <NA> %s <NA> <NA>\n", uri, span.Start, span.Duration(), span.Speaker)
	}
	return b.String()
}
