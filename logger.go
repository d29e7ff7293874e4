package nutriplan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GenerationLogger records each model round trip made by the planner.
type GenerationLogger interface {
	LogAttempt(attempt AttemptLog) error
}

// NewGenerationLogFilePath returns a file path under dir named after the
// model so logs produced with different models are easy to tell apart.
func NewGenerationLogFilePath(dir, model string) string {
	name := strings.NewReplacer(":", "_", "/", "_").Replace(strings.ToLower(model))
	return filepath.Join(dir, fmt.Sprintf("%d.%s.json", time.Now().Unix(), name))
}

// AttemptLog is one generation attempt.
type AttemptLog struct {
	Kind       string    `json:"kind"`
	Timestamp  time.Time `json:"timestamp"`
	Model      string    `json:"model,omitempty"`
	Prompt     string    `json:"prompt,omitempty"`
	Response   string    `json:"response,omitempty"`
	State      string    `json:"state,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}

// FileGenerationLogger buffers attempts and writes them on Flush.
type FileGenerationLogger struct {
	attempts []AttemptLog
	writer   io.Writer
}

func NewFileGenerationLogger(writer io.Writer) *FileGenerationLogger {
	return &FileGenerationLogger{
		attempts: make([]AttemptLog, 0),
		writer:   writer,
	}
}

func (l *FileGenerationLogger) LogAttempt(attempt AttemptLog) error {
	l.attempts = append(l.attempts, attempt)
	return nil
}

// Flush writes all buffered attempts as one indented document and clears the buffer.
func (l *FileGenerationLogger) Flush() error {
	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"generation_session": map[string]any{
			"timestamp": time.Now(),
			"attempts":  l.attempts,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal generation log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write generation log: %w", err)
	}

	l.attempts = l.attempts[:0]
	return nil
}

type NoOpGenerationLogger struct{}

func NewNoOpGenerationLogger() *NoOpGenerationLogger {
	return &NoOpGenerationLogger{}
}

func (NoOpGenerationLogger) LogAttempt(AttemptLog) error {
	return nil
}

// StdoutGenerationLogger writes each attempt as a JSON line (for Lambda/CloudWatch).
type StdoutGenerationLogger struct {
	out io.Writer
}

func NewStdoutGenerationLogger() *StdoutGenerationLogger {
	return &StdoutGenerationLogger{out: os.Stdout}
}

func (l *StdoutGenerationLogger) LogAttempt(attempt AttemptLog) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
