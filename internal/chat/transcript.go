package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"urban/internal/project"
)

// Transcript is the append-only session log. Writes go straight to the file
// handle with no userspace buffering, so a crash mid-session leaves every
// completed turn readable.
type Transcript struct {
	file *os.File
	path string
}

// OpenTranscript creates <root>/logs/chat_YYYYMMDD_HHMMSS.md and writes the
// session header. Two sessions started in the same wall-clock second share a
// name; the later one truncates the earlier (last writer wins).
func OpenTranscript(root, model, systemPrompt string) (*Transcript, error) {
	logs := project.LogsDir(root)
	if err := os.MkdirAll(logs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	name := fmt.Sprintf("chat_%s.md", time.Now().Format("20060102_150405"))
	path := filepath.Join(logs, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}

	t := &Transcript{file: f, path: path}
	if _, err := fmt.Fprintf(f, "# Chat Session — %s\n\nSystem: %s\n\n", model, systemPrompt); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write transcript header: %w", err)
	}
	return t, nil
}

// Path returns the transcript file path.
func (t *Transcript) Path() string {
	return t.path
}

// AppendUser records one user message.
func (t *Transcript) AppendUser(text string) error {
	return t.append("You", text)
}

// AppendAssistant records one model reply.
func (t *Transcript) AppendAssistant(text string) error {
	return t.append("AI", text)
}

func (t *Transcript) append(role, text string) error {
	if _, err := fmt.Fprintf(t.file, "## %s\n%s\n\n", role, text); err != nil {
		return fmt.Errorf("failed to append to transcript: %w", err)
	}
	return nil
}

// Close releases the file handle. Safe to call exactly once; the REPL's
// caller defers this so every exit path releases the handle.
func (t *Transcript) Close() error {
	return t.file.Close()
}
