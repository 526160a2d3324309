package preflight

import (
	"strings"

	"speakerline/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail"`
}

// Inputs names the files a job will read. Empty paths are skipped.
type Inputs struct {
	TranscriptPath  string
	DiarizationPath string
	QuestionsPath   string
}

// RunAll executes the directory, input, and tool checks for cfg.
func RunAll(cfg *config.Config, inputs Inputs) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckWritableDirectory("Output directory", cfg.Paths.OutputDir),
	}
	if strings.TrimSpace(cfg.Paths.LogDir) != "" {
		results = append(results, CheckWritableDirectory("Log directory", cfg.Paths.LogDir))
	}

	if inputs.TranscriptPath != "" {
		results = append(results, CheckInputFile("Transcript", inputs.TranscriptPath))
	}
	if inputs.DiarizationPath != "" {
		results = append(results, CheckInputFile("Diarization", inputs.DiarizationPath))
	}
	if inputs.QuestionsPath != "" {
		results = append(results, CheckInputFile("Questions", inputs.QuestionsPath))
	}

	results = append(results, CheckBinaries(ToolRequirements(cfg))...)
	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}

// FailureDetails lists "name: detail" for every required failure.
func FailureDetails(results []Result) []string {
	var out []string
	for _, r := range results {
		if !r.Passed && !r.Optional {
			out = append(out, r.Name+": "+r.Detail)
		}
	}
	return out
}
