package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"speakerline/internal/alignment"
	"speakerline/internal/config"
	"speakerline/internal/diarization"
	"speakerline/internal/language"
	"speakerline/internal/logging"
	"speakerline/internal/qa"
	"speakerline/internal/services"
	"speakerline/internal/services/pyannote"
	"speakerline/internal/services/whisperx"
	"speakerline/internal/snapshot"
	"speakerline/internal/speakerstats"
	"speakerline/internal/textutil"
	"speakerline/internal/timeline"
)

// Stage names used in logs and error messages.
const (
	StageLoad   = "load"
	StageClean  = "clean"
	StageAlign  = "align"
	StageMatch  = "match"
	StageOutput = "output"
)

// Job describes one recording to process.
type Job struct {
	VideoName       string  `toml:"video_name" json:"video_name"`
	TranscriptPath  string  `toml:"transcript" json:"transcript"`
	DiarizationPath string  `toml:"diarization" json:"diarization"`
	QuestionsPath   string  `toml:"questions" json:"questions,omitempty"`
	OutputDir       string  `toml:"output_dir" json:"output_dir,omitempty"`
	Language        string  `toml:"language" json:"language,omitempty"`
	Duration        float64 `toml:"duration" json:"duration,omitempty"`
}

// Name returns the video name, falling back to the transcript file stem.
func (j Job) Name() string {
	if name := strings.TrimSpace(j.VideoName); name != "" {
		return name
	}
	if stem := textutil.Stem(j.TranscriptPath); stem != "" {
		return stem
	}
	return "untitled"
}

// Stats records what each stage did to the inputs.
type Stats struct {
	SkippedSegments      int               `json:"skipped_segments"`
	RawIdentitySpans     int               `json:"raw_identity_spans"`
	CleanedIdentitySpans int               `json:"cleaned_identity_spans"`
	Alignment            alignment.Summary `json:"alignment"`
}

// Result is the outcome of one job.
type Result struct {
	Job        Job                 `json:"job"`
	RunID      string              `json:"run_id"`
	Transcript snapshot.Transcript `json:"-"`
	QA         *snapshot.QA        `json:"-"`
	Stats      Stats               `json:"stats"`
	Outputs    []string            `json:"outputs,omitempty"`
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the timestamp source for snapshot metadata.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithRunIDs overrides run ID generation.
func WithRunIDs(next func() string) Option {
	return func(p *Pipeline) {
		if next != nil {
			p.newRunID = next
		}
	}
}

// Pipeline carries the configuration shared by every job. It holds no
// per-job state, so one Pipeline may run many jobs concurrently.
type Pipeline struct {
	cfg      *config.Config
	logger   *slog.Logger
	now      func() time.Time
	newRunID func() string
}

// New constructs a pipeline. A nil cfg uses defaults and a nil logger
// discards output.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	p := &Pipeline{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MergeInput is the in-memory form of a job's collaborator outputs.
type MergeInput struct {
	VideoName   string
	Language    string
	Transcript  whisperx.Transcript
	Diarization []timeline.IdentitySpan
}

// Run loads the job inputs and builds the snapshots without writing them.
func (p *Pipeline) Run(ctx context.Context, job Job) (Result, error) {
	result := Result{Job: job, RunID: p.newRunID()}
	ctx = services.WithRunID(ctx, result.RunID)
	ctx = services.WithVideoName(ctx, job.Name())

	var (
		transcript whisperx.Transcript
		raw        []timeline.IdentitySpan
		questions  []string
	)
	err := p.stage(ctx, StageLoad, func(ctx context.Context, logger *slog.Logger) error {
		var err error
		if transcript, err = whisperx.Load(job.TranscriptPath); err != nil {
			return err
		}
		if raw, err = pyannote.Load(job.DiarizationPath); err != nil {
			return err
		}
		if job.QuestionsPath != "" {
			if questions, err = qa.LoadQuestions(job.QuestionsPath); err != nil {
				return err
			}
		}
		if transcript.Skipped > 0 {
			logger.Info("skipped blank transcript segments", logging.Int("skipped", transcript.Skipped))
		}
		logger.Debug("inputs loaded",
			logging.Int("text_spans", len(transcript.Spans)),
			logging.Int("identity_spans", len(raw)),
			logging.Int("questions", len(questions)),
		)
		return nil
	})
	if err != nil {
		return result, err
	}

	t, stats, err := p.merge(ctx, MergeInput{
		VideoName:   job.Name(),
		Language:    job.Language,
		Transcript:  transcript,
		Diarization: raw,
	}, result.RunID)
	if err != nil {
		return result, err
	}
	result.Transcript = t
	result.Stats = stats

	if len(questions) > 0 {
		q, err := p.match(ctx, t, questions, filepath.Base(job.QuestionsPath), job.Duration)
		if err != nil {
			return result, err
		}
		result.QA = &q
	}
	return result, nil
}

// Merge aligns in-memory collaborator outputs into a transcript snapshot.
func (p *Pipeline) Merge(ctx context.Context, in MergeInput) (snapshot.Transcript, Stats, error) {
	runID := p.newRunID()
	ctx = services.WithRunID(ctx, runID)
	if in.VideoName != "" {
		ctx = services.WithVideoName(ctx, in.VideoName)
	}
	return p.merge(ctx, in, runID)
}

func (p *Pipeline) merge(ctx context.Context, in MergeInput, runID string) (snapshot.Transcript, Stats, error) {
	stats := Stats{
		SkippedSegments:  in.Transcript.Skipped,
		RawIdentitySpans: len(in.Diarization),
	}

	if err := timeline.ValidateTextSpans(in.Transcript.Spans); err != nil {
		return snapshot.Transcript{}, stats, err
	}
	if err := timeline.ValidateIdentitySpans(in.Diarization); err != nil {
		return snapshot.Transcript{}, stats, err
	}

	var cleaned []timeline.IdentitySpan
	err := p.stage(ctx, StageClean, func(_ context.Context, logger *slog.Logger) error {
		opts := p.cfg.DiarizationOptions()
		if err := opts.Validate(); err != nil {
			return err
		}
		cleaned = diarization.Clean(in.Diarization, opts)
		stats.CleanedIdentitySpans = len(cleaned)
		logger.Debug("identity spans cleaned",
			logging.Int("raw", len(in.Diarization)),
			logging.Int("cleaned", len(cleaned)),
			logging.Float64("min_duration", opts.MinDuration),
			logging.Float64("max_merge_gap", opts.MaxMergeGap),
		)
		return nil
	})
	if err != nil {
		return snapshot.Transcript{}, stats, err
	}

	var t snapshot.Transcript
	err = p.stage(ctx, StageAlign, func(_ context.Context, logger *slog.Logger) error {
		aligned, matches := alignment.AlignWithMatches(in.Transcript.Spans, cleaned)
		stats.Alignment = alignment.Report(matches)
		if stats.Alignment.Degraded() {
			logging.WarnWithContext(logger, "some text spans had no overlapping speaker",
				"alignment_fallback",
				logging.Int("nearest", stats.Alignment.Nearest),
				logging.Int("unknown", stats.Alignment.Unknown),
				logging.Int("total", stats.Alignment.Total),
				logging.String(logging.FieldErrorHint, "check that transcript and diarization come from the same audio"),
				logging.String(logging.FieldImpact, "speaker attribution for those spans is a guess"),
			)
		}

		if !timeline.IsOrdered(aligned) {
			attrs := logging.DecisionAttrs("timeline_order", "kept", "transcript segments are not sorted by start")
			logger.Warn("timeline out of order", logging.Args(attrs...)...)
		}

		speakers := speakerstats.Aggregate(aligned, speakerstats.KnownSpeakers(cleaned))
		lang := in.Language
		if strings.TrimSpace(lang) == "" {
			lang = in.Transcript.Language
		}
		t = snapshot.BuildTranscript(snapshot.TranscriptInput{
			VideoName:   in.VideoName,
			Language:    language.Normalize(lang, p.cfg.Pipeline.UnknownLanguage),
			Text:        in.Transcript.Text,
			Aligned:     aligned,
			Speakers:    speakers,
			ProcessedAt: p.now(),
			RunID:       runID,
			Models: snapshot.ModelInfo{
				Transcription: p.cfg.Models.Transcription,
				Diarization:   p.cfg.Models.Diarization,
			},
		})
		logger.Info("transcript aligned",
			logging.Int("segments", t.Metadata.NumSegments),
			logging.Int("speakers", t.Metadata.NumSpeakers),
			logging.Seconds("duration_seconds", t.Metadata.DurationSeconds),
		)
		return nil
	})
	return t, stats, err
}

// Match partitions a transcript snapshot into question windows. A positive
// duration overrides the transcript duration as the timeline length.
func (p *Pipeline) Match(ctx context.Context, t snapshot.Transcript, questions []string, source string, duration float64) (snapshot.QA, error) {
	if t.Metadata.RunID != "" {
		ctx = services.WithRunID(ctx, t.Metadata.RunID)
	}
	if t.Metadata.VideoName != "" {
		ctx = services.WithVideoName(ctx, t.Metadata.VideoName)
	}
	return p.match(ctx, t, questions, source, duration)
}

// MatchText partitions a transcript that was never merged with a
// diarization. Answers carry no speaker label and the source metadata
// reports zero speakers.
func (p *Pipeline) MatchText(ctx context.Context, videoName string, tr whisperx.Transcript, questions []string, source string, duration float64) (snapshot.QA, error) {
	if err := timeline.ValidateTextSpans(tr.Spans); err != nil {
		return snapshot.QA{}, err
	}
	if videoName != "" {
		ctx = services.WithVideoName(ctx, videoName)
	}
	t := snapshot.Transcript{Metadata: snapshot.TranscriptMetadata{
		VideoName:       videoName,
		DurationSeconds: timeline.Round2(tr.Duration()),
		Language:        language.Normalize(tr.Language, p.cfg.Pipeline.UnknownLanguage),
		NumSegments:     len(tr.Spans),
	}}
	return p.partition(ctx, t, duration, source, func(total float64) ([]qa.Window, error) {
		return qa.PartitionText(questions, tr.Spans, total)
	})
}

func (p *Pipeline) match(ctx context.Context, t snapshot.Transcript, questions []string, source string, duration float64) (snapshot.QA, error) {
	return p.partition(ctx, t, duration, source, func(total float64) ([]qa.Window, error) {
		return qa.Partition(questions, t.Aligned(), total)
	})
}

func (p *Pipeline) partition(ctx context.Context, t snapshot.Transcript, duration float64, source string, split func(total float64) ([]qa.Window, error)) (snapshot.QA, error) {
	var out snapshot.QA
	err := p.stage(ctx, StageMatch, func(_ context.Context, logger *slog.Logger) error {
		total := t.Metadata.DurationSeconds
		if duration > 0 {
			total = duration
		}
		windows, err := split(total)
		if err != nil {
			return err
		}
		out = snapshot.BuildQA(t, windows, source, p.now())
		empty := 0
		for _, w := range windows {
			if w.Empty() {
				empty++
			}
		}
		logger.Info("questions matched",
			logging.Int("questions", len(windows)),
			logging.Int("empty_windows", empty),
			logging.Seconds("segment_duration", out.Metadata.AvgSegmentDuration),
		)
		return nil
	})
	return out, err
}

// stage runs fn with a stage-tagged context and logs its outcome.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context, *slog.Logger) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stageCtx := services.WithStage(ctx, name)
	logger := logging.WithContext(stageCtx, p.logger)
	started := time.Now()
	logger.Debug("stage started", logging.String(logging.FieldEventType, "stage_start"))

	if err := fn(stageCtx, logger); err != nil {
		logging.ErrorWithContext(logger, "stage failed", "stage_failure",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, errorHint(err)),
		)
		return fmt.Errorf("%s: %w", name, err)
	}

	logger.Debug("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func errorHint(err error) string {
	switch services.ExitCode(err) {
	case services.ExitNotFound:
		return "check the input paths"
	case services.ExitInvalidArgument:
		return "check the input values and configuration"
	default:
		return "inspect the input files with speakerline validate or inspect"
	}
}
