package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"

	"speakerline/internal/logging"
	"speakerline/internal/services"
)

// Manifest lists the jobs for a batch run.
type Manifest struct {
	Jobs []Job `toml:"jobs"`
}

// LoadManifest reads a TOML manifest of [[jobs]] tables. Relative paths are
// resolved against the manifest's directory.
func LoadManifest(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "batch", "manifest", fmt.Sprintf("manifest %q not found", path), nil)
		}
		return nil, services.Wrap(services.ErrInvalidArgument, "batch", "manifest", path, err)
	}
	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, services.Wrap(services.ErrInvalidArgument, "batch", "parse manifest", path, err)
	}
	if len(manifest.Jobs) == 0 {
		return nil, services.InvalidArgument("batch", "manifest", "%s lists no jobs", path)
	}

	base := filepath.Dir(path)
	for i := range manifest.Jobs {
		job := &manifest.Jobs[i]
		if job.TranscriptPath == "" || job.DiarizationPath == "" {
			return nil, services.InvalidArgument("batch", "manifest", "job %d needs transcript and diarization", i+1)
		}
		job.TranscriptPath = resolve(base, job.TranscriptPath)
		job.DiarizationPath = resolve(base, job.DiarizationPath)
		job.QuestionsPath = resolve(base, job.QuestionsPath)
		job.OutputDir = resolve(base, job.OutputDir)
	}
	return manifest.Jobs, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// RunBatch processes jobs concurrently, bounded by the configured
// concurrency. Results are indexed like jobs. The first failure cancels the
// jobs that have not started yet and is returned.
func (p *Pipeline) RunBatch(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(1, p.cfg.Pipeline.Concurrency))

	var (
		mu        sync.Mutex
		completed int
		sampler   = logging.NewProgressSampler(25)
	)

	for i, job := range jobs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := p.Process(groupCtx, job)
			results[i] = result
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i+1, job.Name(), err)
			}

			mu.Lock()
			completed++
			if sampler.ShouldLog(completed, len(jobs)) {
				p.logger.Info("batch progress",
					logging.Int("completed", completed),
					logging.Int("total", len(jobs)),
				)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
