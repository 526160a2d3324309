package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"speakerline/internal/snapshot"
)

// NoSpeechPlaceholder stands in for an empty answer window.
const NoSpeechPlaceholder = "*(no speech in this window)*"

// QAMarkdown renders the question/answer snapshot as Markdown.
func QAMarkdown(q snapshot.QA) string {
	var b strings.Builder
	meta := q.Metadata

	b.WriteString("# Interview Q&A Report\n\n")
	fmt.Fprintf(&b, "**Video:** %s\n", meta.VideoName)
	fmt.Fprintf(&b, "**Duration:** %d seconds (%s)\n", int(meta.DurationSeconds), Clock(meta.DurationSeconds))
	fmt.Fprintf(&b, "**Questions:** %d\n", meta.TotalQuestions)
	b.WriteString("**Matching method:** Equal time segmentation\n")
	fmt.Fprintf(&b, "**Created:** %s\n\n---\n\n", meta.MatchedAt.Format("2006-01-02 15:04"))

	for _, pair := range q.QAPairs {
		fmt.Fprintf(&b, "## Question %d: %s\n\n", pair.Index, pair.QuestionText)
		fmt.Fprintf(&b, "**Time range:** %s - %s (%d seconds)\n", Clock(pair.Window.Start), Clock(pair.Window.End), int(pair.Window.Duration))
		if len(pair.PerSpeakerText) > 0 {
			fmt.Fprintf(&b, "**Speakers:** %s\n", strings.Join(pair.PerSpeakerText.Speakers(), ", "))
		}
		fmt.Fprintf(&b, "**Words:** %d\n\n", pair.WordCount)

		b.WriteString("### Answer\n\n")
		if pair.ConcatenatedText != "" {
			b.WriteString(pair.ConcatenatedText)
		} else {
			b.WriteString(NoSpeechPlaceholder)
		}
		b.WriteString("\n\n")

		if len(pair.PerSpeakerText) > 0 {
			b.WriteString("### By speaker\n\n")
			for _, entry := range pair.PerSpeakerText {
				fmt.Fprintf(&b, "**%s:**\n> %s\n\n", entry.Speaker, entry.Text)
			}
		}
		b.WriteString("---\n\n")
	}

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Total questions:** %d\n", meta.TotalQuestions)
	fmt.Fprintf(&b, "- **Average answer window:** %s seconds\n", formatFloat(meta.AvgSegmentDuration))
	if len(q.QAPairs) > 0 {
		fmt.Fprintf(&b, "- **Average words per answer:** %d\n", int(q.AverageWordCount()))
	}
	fmt.Fprintf(&b, "- **Transcript segments:** %d\n\n---\n\n", q.OriginalTranscriptMetadata.NumSegments)
	b.WriteString("*This report was generated automatically.*\n")
	return b.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts Markdown into an HTML fragment.
func HTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// HTMLDocument wraps the rendered Markdown in a minimal standalone page.
func HTMLDocument(title, source string) (string, error) {
	body, err := HTML(source)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", htmlEscaper.Replace(title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
