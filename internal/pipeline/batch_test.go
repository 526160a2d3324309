package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"speakerline/internal/pipeline"
	"speakerline/internal/services"
	"speakerline/internal/testsupport"
)

func TestRunBatchPreservesJobOrder(t *testing.T) {
	dir := t.TempDir()
	p, _ := newPipeline(t, testsupport.WithConcurrency(3))

	var jobs []pipeline.Job
	for i := range 5 {
		name := fmt.Sprintf("video-%d", i)
		jobs = append(jobs, pipeline.Job{
			VideoName:       name,
			TranscriptPath:  testsupport.WriteWhisperX(t, dir, name+".json", "en", []testsupport.Segment{{Start: 0, End: float64(i + 1), Text: "words here"}}),
			DiarizationPath: testsupport.WriteRTTM(t, dir, name+".rttm", []testsupport.Turn{{Start: 0, End: float64(i + 1), Speaker: "S"}}),
		})
	}

	results, err := p.RunBatch(context.Background(), jobs)
	if err != nil {
		t.Fatalf("RunBatch returned error: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}
	for i, result := range results {
		if result.Transcript.Metadata.VideoName != jobs[i].VideoName {
			t.Fatalf("result %d out of order: %q", i, result.Transcript.Metadata.VideoName)
		}
		if result.Transcript.Metadata.DurationSeconds != float64(i+1) {
			t.Fatalf("result %d: unexpected duration %v", i, result.Transcript.Metadata.DurationSeconds)
		}
	}
}

func TestRunBatchReportsFailure(t *testing.T) {
	dir := t.TempDir()
	p, _ := newPipeline(t, testsupport.WithConcurrency(1))
	jobs := []pipeline.Job{
		{
			VideoName:       "bad",
			TranscriptPath:  filepath.Join(dir, "missing.json"),
			DiarizationPath: filepath.Join(dir, "missing.rttm"),
		},
	}
	_, err := p.RunBatch(context.Background(), jobs)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLoadManifestResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, dir, "jobs.toml", `
[[jobs]]
video_name = "one"
transcript = "inputs/one.json"
diarization = "/abs/one.rttm"
questions = "q.txt"
duration = 90.0

[[jobs]]
transcript = "two.json"
diarization = "two.rttm"
`)

	jobs, err := pipeline.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].TranscriptPath != filepath.Join(dir, "inputs", "one.json") {
		t.Fatalf("unexpected transcript path: %q", jobs[0].TranscriptPath)
	}
	if jobs[0].DiarizationPath != "/abs/one.rttm" {
		t.Fatalf("absolute path changed: %q", jobs[0].DiarizationPath)
	}
	if jobs[0].QuestionsPath != filepath.Join(dir, "q.txt") || jobs[0].Duration != 90 {
		t.Fatalf("unexpected first job: %+v", jobs[0])
	}
	if jobs[1].QuestionsPath != "" || jobs[1].OutputDir != "" {
		t.Fatalf("empty paths should stay empty: %+v", jobs[1])
	}
	if jobs[1].Name() != "two" {
		t.Fatalf("expected name from transcript stem, got %q", jobs[1].Name())
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := pipeline.LoadManifest(filepath.Join(dir, "missing.toml")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	empty := testsupport.WriteFile(t, dir, "empty.toml", "")
	if _, err := pipeline.LoadManifest(empty); !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for empty manifest, got %v", err)
	}
	partial := testsupport.WriteFile(t, dir, "partial.toml", "[[jobs]]\ntranscript = \"a.json\"\n")
	if _, err := pipeline.LoadManifest(partial); !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for partial job, got %v", err)
	}
}
