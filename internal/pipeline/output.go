package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"speakerline/internal/logging"
	"speakerline/internal/report"
	"speakerline/internal/services"
	"speakerline/internal/snapshot"
	"speakerline/internal/textutil"
)

// Output file suffixes appended to the sanitized video name.
const (
	TranscriptSuffix = "_transcript"
	QASuffix         = "_qa"
)

// Process runs the job and writes its snapshots and exports.
func (p *Pipeline) Process(ctx context.Context, job Job) (Result, error) {
	result, err := p.Run(ctx, job)
	if err != nil {
		return result, err
	}

	ctx = services.WithRunID(ctx, result.RunID)
	ctx = services.WithVideoName(ctx, job.Name())
	err = p.stage(ctx, StageOutput, func(_ context.Context, logger *slog.Logger) error {
		outputs, err := p.WriteOutputs(p.outputDir(job), result.Transcript, result.QA)
		result.Outputs = outputs
		if err != nil {
			return err
		}
		logger.Info("outputs written",
			logging.Int("files", len(outputs)),
			logging.String("output_dir", p.outputDir(job)),
		)
		return nil
	})
	return result, err
}

func (p *Pipeline) outputDir(job Job) string {
	if dir := strings.TrimSpace(job.OutputDir); dir != "" {
		return dir
	}
	return p.cfg.Paths.OutputDir
}

// SnapshotPath returns where the snapshot with suffix is written for video.
func (p *Pipeline) SnapshotPath(dir, video, suffix string) string {
	name := textutil.SanitizeFileName(video) + suffix + ".json"
	if p.cfg.Output.Gzip {
		name += ".gz"
	}
	return filepath.Join(dir, name)
}

// WriteOutputs writes the transcript snapshot, the QA snapshot when q is
// non-nil, and one export per configured format. The QA Markdown report is
// always written alongside a QA snapshot. Paths are returned in write order.
func (p *Pipeline) WriteOutputs(dir string, t snapshot.Transcript, q *snapshot.QA) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, StageOutput, "create output dir", dir, err)
	}
	opts := snapshot.WriteOptions{Pretty: p.cfg.Output.Pretty}
	video := t.Metadata.VideoName
	var written []string

	path := p.SnapshotPath(dir, video, TranscriptSuffix)
	if err := snapshot.Write(path, t, opts); err != nil {
		return written, err
	}
	written = append(written, path)

	if q != nil {
		path := p.SnapshotPath(dir, video, QASuffix)
		if err := snapshot.Write(path, *q, opts); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	formats, err := p.exportFormats()
	if err != nil {
		return written, err
	}
	base := filepath.Join(dir, textutil.SanitizeFileName(video))

	for _, format := range formats {
		data, err := report.RenderTranscript(t, format, p.cfg.Output.Pretty)
		if err != nil {
			return written, err
		}
		path := base + TranscriptSuffix + format.Extension()
		if err := writeFile(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if q != nil {
		if !slices.Contains(formats, report.FormatMarkdown) {
			formats = append(formats, report.FormatMarkdown)
		}
		for _, format := range formats {
			data, err := report.RenderQA(*q, format, p.cfg.Output.Pretty)
			if err != nil {
				return written, err
			}
			path := base + QASuffix + format.Extension()
			if err := writeFile(path, data); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	return written, nil
}

// exportFormats returns the configured formats other than the JSON snapshot.
func (p *Pipeline) exportFormats() ([]report.Format, error) {
	var formats []report.Format
	for _, name := range p.cfg.Output.Formats {
		format, err := report.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if format == report.FormatJSON || slices.Contains(formats, format) {
			continue
		}
		formats = append(formats, format)
	}
	return formats, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
