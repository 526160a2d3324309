package whisperx

import (
	"path/filepath"
	"strconv"
	"strings"

	"speakerline/internal/diarization"
	langpkg "speakerline/internal/language"
)

// Command is an external program invocation.
type Command struct {
	Name string
	Args []string
}

// String renders the command for display, quoting arguments with spaces.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		if strings.ContainsAny(arg, " \t\"'") {
			arg = strconv.Quote(arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// ExtractAudioCommand returns the ffmpeg invocation that converts a video
// into the mono 16kHz WAV both collaborators expect.
func ExtractAudioCommand(ffmpegBinary, source, dest string) Command {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	return Command{Name: ffmpegBinary, Args: []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}}
}

// TranscribeCommand returns the uvx invocation for WhisperX.
func TranscribeCommand(cfg Config, source, outputDir, language string, hints diarization.Hints) Command {
	return Command{Name: UVXCommand, Args: BuildArgs(cfg, source, outputDir, language, hints)}
}

// OutputPath is where WhisperX writes the JSON transcript for source.
func OutputPath(source, outputDir string) string {
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(outputDir, base+".json")
}

// BuildArgs constructs the uvx command arguments for WhisperX. Speaker hints
// only apply when Diarize is set; an exact count is expressed as equal
// minimum and maximum.
func BuildArgs(cfg Config, source, outputDir, language string, hints diarization.Hints) []string {
	args := []string{"--index-url", pypiIndex}
	device := []string{"--device", "cpu", "--compute_type", "float32"}
	if cfg.CUDAEnabled {
		args = []string{"--index-url", cudaIndex, "--extra-index-url", pypiIndex}
		device = []string{"--device", "cuda"}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	args = append(args, "whisperx", source, "--model", model, "--output_dir", outputDir)
	args = append(args, decodingFlags...)

	vad := cfg.VADMethod
	if vad == "" {
		vad = VADMethodSilero
	}
	args = append(args, "--vad_method", vad)

	if cfg.Diarize {
		args = append(args, "--diarize")
		lo, hi := hints.MinSpeakers, hints.MaxSpeakers
		if hints.NumSpeakers > 0 {
			lo, hi = hints.NumSpeakers, hints.NumSpeakers
		}
		if lo > 0 {
			args = append(args, "--min_speakers", strconv.Itoa(lo))
		}
		if hi > 0 {
			args = append(args, "--max_speakers", strconv.Itoa(hi))
		}
	}
	if cfg.HFToken != "" && (cfg.Diarize || vad == VADMethodPyannote) {
		args = append(args, "--hf_token", cfg.HFToken)
	}
	if lang := langpkg.ToISO2(language); lang != "" {
		args = append(args, "--language", lang)
	}
	return append(args, device...)
}
