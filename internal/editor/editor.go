// Package editor runs the user's editor on a temporary file and returns what
// was saved.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/aidanlsb/rtend/internal/shellquote"
)

// ErrNoEditor indicates no editor command is configured.
var ErrNoEditor = errors.New("no editor configured")

// External edits text with an external command. Command may hold arguments
// ("code --wait"); it is then run through sh -c.
type External struct {
	Command string
	Stdin   *os.File
	Stdout  *os.File
	Stderr  *os.File
}

// Edit writes current to a temporary file, waits for the editor to exit and
// returns the file's contents. A non-zero editor exit is an error.
func (e External) Edit(current string) (string, error) {
	command := strings.TrimSpace(e.Command)
	if command == "" {
		return "", ErrNoEditor
	}

	f, err := os.CreateTemp("", "rtend-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(current); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	var cmd *exec.Cmd
	if strings.ContainsAny(command, " \t") {
		cmd = exec.Command("sh", "-c", command+" "+shellquote.Quote(path))
	} else {
		cmd = exec.Command(command, path)
	}
	cmd.Stdin = orFile(e.Stdin, os.Stdin)
	cmd.Stdout = orFile(e.Stdout, os.Stdout)
	cmd.Stderr = orFile(e.Stderr, os.Stderr)

	slog.Debug("running editor", "command", command, "file", path)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run editor %q: %w", command, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return string(data), nil
}

func orFile(f, fallback *os.File) *os.File {
	if f != nil {
		return f
	}
	return fallback
}
