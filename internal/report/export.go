package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"speakerline/internal/services"
	"speakerline/internal/snapshot"
	"speakerline/internal/textutil"
)

// Format is an export format name.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported export format.
var Formats = []Format{FormatJSON, FormatYAML, FormatText, FormatMarkdown, FormatHTML}

// ParseFormat validates a format name.
func ParseFormat(value string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	}
	for _, f := range Formats {
		if f == normalized {
			return f, nil
		}
	}
	return "", services.InvalidArgument("report", "format", "unsupported format %q", value)
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatText:
		return ".txt"
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	default:
		return ".json"
	}
}

// YAML renders v as YAML. The value goes through its JSON encoding first so
// keys and ordering match the JSON snapshot.
func YAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("convert to yaml: %w", err)
	}
	clearStyle(&node)
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON documents parse as YAML flow mappings; reset styles to block form.
func clearStyle(node *yaml.Node) {
	node.Style &^= yaml.FlowStyle
	for _, child := range node.Content {
		clearStyle(child)
	}
}

// RenderTranscript renders a transcript snapshot in the requested format.
func RenderTranscript(t snapshot.Transcript, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		return snapshot.Encode(t, snapshot.WriteOptions{Pretty: pretty})
	case FormatYAML:
		return YAML(t)
	case FormatText:
		return []byte(TranscriptText(t)), nil
	case FormatMarkdown:
		return []byte(TranscriptMarkdown(t)), nil
	case FormatHTML:
		page, err := HTMLDocument(t.Metadata.VideoName, TranscriptMarkdown(t))
		return []byte(page), err
	default:
		return nil, services.InvalidArgument("report", "render", "unsupported format %q", format)
	}
}

// RenderQA renders a question/answer snapshot in the requested format.
func RenderQA(q snapshot.QA, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		return snapshot.Encode(q, snapshot.WriteOptions{Pretty: pretty})
	case FormatYAML:
		return YAML(q)
	case FormatText, FormatMarkdown:
		return []byte(QAMarkdown(q)), nil
	case FormatHTML:
		page, err := HTMLDocument(q.Metadata.VideoName, QAMarkdown(q))
		return []byte(page), err
	default:
		return nil, services.InvalidArgument("report", "render", "unsupported format %q", format)
	}
}

// TranscriptMarkdown renders the transcript timeline as Markdown.
func TranscriptMarkdown(t snapshot.Transcript) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Metadata.VideoName)
	fmt.Fprintf(&b, "**Duration:** %s | **Language:** %s | **Speakers:** %d\n\n", Clock(t.Metadata.DurationSeconds), t.Metadata.Language, t.Metadata.NumSpeakers)
	b.WriteString("## Speakers\n\n| Speaker | Duration (s) | Words | Segments | Share |\n|---|---:|---:|---:|---:|\n")
	for _, stats := range t.SortedSpeakers() {
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %s%% |\n", stats.Speaker, formatFloat(stats.TotalDuration), stats.WordCount, stats.SegmentCount, formatFloat(stats.Percentage))
	}
	b.WriteString("\n## Timeline\n\n")
	for _, entry := range t.Timeline {
		fmt.Fprintf(&b, "- `%s` **%s:** %s\n", Clock(entry.Start), entry.Speaker, entry.Text)
	}
	return b.String()
}

// Preview returns a single-line excerpt of text at most width cells wide.
func Preview(text string, width int) string {
	return textutil.Truncate(text, width)
}
