package qa

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"speakerline/internal/services"
)

// DefaultQuestionsSource labels snapshots when the question file name is unknown.
const DefaultQuestionsSource = "questions.txt"

// ParseQuestions reads one question per non-blank line.
func ParseQuestions(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var questions []string
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		questions = append(questions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrValidation, "qa", "read questions", "scan failed", err)
	}
	if len(questions) == 0 {
		return nil, services.InvalidArgument("qa", "read questions", "question list is empty")
	}
	return questions, nil
}

// LoadQuestions reads the question file at path.
func LoadQuestions(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "qa", "load questions", fmt.Sprintf("questions file %q not found", path), nil)
		}
		return nil, services.Wrap(services.ErrValidation, "qa", "load questions", "open questions file", err)
	}
	defer file.Close()
	questions, err := ParseQuestions(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return questions, nil
}
