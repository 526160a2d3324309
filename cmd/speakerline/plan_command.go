package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"speakerline/internal/language"
	"speakerline/internal/services/whisperx"
	"speakerline/internal/textutil"
)

const redacted = "<redacted>"

type planStep struct {
	Name    string   `json:"name"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Output  string   `json:"output"`
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var videoPath string
	var languageCode string
	var outputDir string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the commands that produce merge inputs for a recording",
		Long: "Print the ffmpeg and WhisperX commands that turn a recording into the\n" +
			"transcript consumed by merge. Nothing is executed. Hugging Face tokens\n" +
			"are redacted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := strings.TrimSpace(outputDir)
			if dir == "" {
				dir = cfg.Paths.OutputDir
			}
			stem := textutil.Stem(videoPath)
			audio := filepath.Join(dir, stem+".wav")
			lang := language.Normalize(languageCode, "")

			extract := whisperx.ExtractAudioCommand("", videoPath, audio)
			transcribe := whisperx.TranscribeCommand(cfg.WhisperXConfig(), audio, dir, lang, cfg.SpeakerHints())
			transcribe.Args = redactToken(transcribe.Args)

			transcript := whisperx.OutputPath(audio, dir)
			steps := []planStep{
				{Name: "extract audio", Command: extract.Name, Args: extract.Args, Output: audio},
				{Name: "transcribe", Command: transcribe.Name, Args: transcribe.Args, Output: transcript},
			}

			if wantJSON(cmd, jsonOut) {
				return writeJSON(cmd, steps)
			}
			out := cmd.OutOrStdout()
			commands := []string{extract.String(), transcribe.String()}
			for i, step := range steps {
				fmt.Fprintf(out, "# %d. %s -> %s\n%s\n\n", i+1, step.Name, step.Output, commands[i])
			}
			fmt.Fprintf(out, "# then: speakerline process --transcript %s --diarization <diarization.rttm> --video-name %s\n", transcript, stem)
			return nil
		},
	}

	cmd.Flags().StringVar(&videoPath, "video", "", "Source recording")
	cmd.Flags().StringVar(&languageCode, "language", "", "Transcription language (auto-detect when empty)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Working directory (defaults to paths.output_dir)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the plan as JSON")
	_ = cmd.MarkFlagRequired("video")
	return cmd
}

func redactToken(args []string) []string {
	out := append([]string(nil), args...)
	for i := 0; i+1 < len(out); i++ {
		if out[i] == "--hf_token" {
			out[i+1] = redacted
		}
	}
	return out
}
