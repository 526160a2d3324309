package preflight

import (
	"fmt"
	"os/exec"
	"strings"

	"speakerline/internal/config"
	"speakerline/internal/services/whisperx"
)

// Requirement defines an external tool speakerline can drive.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// ToolRequirements lists the collaborator tools used by the plan command.
// None are needed to merge existing outputs.
func ToolRequirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{
		{
			Name:        "FFmpeg",
			Command:     whisperx.FFmpegCommand,
			Description: "Extracts audio before transcription",
			Optional:    true,
		},
		{
			Name:        "uvx",
			Command:     whisperx.UVXCommand,
			Description: "Runs WhisperX transcription",
			Optional:    true,
		},
	}
	if cfg != nil && cfg.WhisperX.Diarize && strings.TrimSpace(cfg.WhisperX.HFToken) == "" {
		reqs = append(reqs, Requirement{
			Name:        "Hugging Face token",
			Description: "Required by pyannote diarization models",
			Optional:    true,
		})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements.
func CheckBinaries(requirements []Requirement) []Result {
	results := make([]Result, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		result := Result{Name: req.Name, Optional: req.Optional}
		switch {
		case cmd == "":
			result.Detail = "not configured"
		default:
			path, err := exec.LookPath(cmd)
			if err != nil {
				result.Detail = fmt.Sprintf("binary %q not found", cmd)
				break
			}
			result.Passed = true
			result.Detail = path
		}
		if desc := strings.TrimSpace(req.Description); desc != "" && !result.Passed {
			result.Detail += " (" + desc + ")"
		}
		results = append(results, result)
	}
	return results
}
