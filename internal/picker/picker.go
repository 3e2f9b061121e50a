// Package picker drives an external fzf-compatible selector over the
// tier-1 entity listing and recovers the chosen entity id.
package picker

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/aidanlsb/rtend/internal/model"
	"github.com/aidanlsb/rtend/internal/shellquote"
)

var (
	// ErrNoSelection indicates the picker exited without a chosen line.
	ErrNoSelection = errors.New("nothing selected")
	// ErrNoEntityID indicates the chosen line does not start with an id.
	ErrNoEntityID = errors.New("selected line has no entity id")
	// ErrPickerNotInstalled indicates the picker binary is not on PATH.
	ErrPickerNotInstalled = errors.New("picker is not installed")
)

// DefaultBinary is the picker used when none is configured.
const DefaultBinary = "fzf"

var pickerLookPath = exec.LookPath

// entityIDPattern matches the leading id of a listing line. The id must end
// at whitespace or end of line, so a longer number is no id at all.
var entityIDPattern = regexp.MustCompile(`^\s*(\d{1,5})(?:\s|$)`)

// Options configures one picker run.
type Options struct {
	Binary      string
	Prompt      string
	Header      string
	HeaderLines int
	Delimiter   string
	Preview     string
	Stderr      *os.File
}

// Installed reports whether the picker binary resolves on PATH.
func Installed(binary string) bool {
	_, err := pickerLookPath(orDefault(binary))
	return err == nil
}

// Run sends lines to the picker and returns the chosen line. Exit codes 1
// (no match) and 130 (interrupted) and an empty selection are ErrNoSelection.
func Run(lines []string, opts Options) (string, error) {
	if len(lines) <= opts.HeaderLines {
		return "", ErrNoSelection
	}
	path, err := pickerLookPath(orDefault(opts.Binary))
	if err != nil {
		return "", fmt.Errorf("%s: %w", orDefault(opts.Binary), ErrPickerNotInstalled)
	}

	args := []string{
		"--layout=reverse",
		"--height=80%",
		"--border",
	}
	if strings.TrimSpace(opts.Prompt) != "" {
		args = append(args, "--prompt", opts.Prompt)
	}
	if strings.TrimSpace(opts.Header) != "" {
		args = append(args, "--header", opts.Header)
	}
	if opts.HeaderLines > 0 {
		args = append(args, "--header-lines", strconv.Itoa(opts.HeaderLines))
	}
	if opts.Delimiter != "" {
		args = append(args, "--delimiter", opts.Delimiter)
	}
	if strings.TrimSpace(opts.Preview) != "" {
		args = append(args, "--preview", opts.Preview)
	}

	cmd := exec.Command(path, args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if opts.Stderr != nil {
		cmd.Stderr = opts.Stderr
	}

	slog.Debug("running picker", "path", path, "candidates", len(lines)-opts.HeaderLines)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code == 1 || code == 130 {
				return "", ErrNoSelection
			}
		}
		return "", fmt.Errorf("run picker: %w", err)
	}

	selection := strings.TrimRight(stdout.String(), "\r\n")
	if strings.TrimSpace(selection) == "" {
		return "", ErrNoSelection
	}
	return selection, nil
}

// ParseEntityID extracts the id at the start of a listing line. Leading
// whitespace is allowed; ids longer than five digits are rejected.
func ParseEntityID(line string) (int64, error) {
	m := entityIDPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", line, ErrNoEntityID)
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", line, ErrNoEntityID)
	}
	return id, nil
}

// Header is the column header line of Lines.
const Header = "   id\taliases\t#aliases\t#snippets\tcreated"

// Lines renders tier-1 rows as tab-separated picker candidates, id first and
// right-aligned, preceded by the header line.
func Lines(entities []model.EntityLong) []string {
	lines := make([]string, 0, len(entities)+1)
	lines = append(lines, Header)
	for _, e := range entities {
		lines = append(lines, fmt.Sprintf("%5d\t%s\t%d\t%d\t%s",
			e.ID, e.Aliases, e.AliasCount, e.SnippetCount, e.Created))
	}
	return lines
}

// Field is the picker placeholder for the id column of the selected line.
const Field = "{1}"

// PreviewCommand builds the preview instruction that re-invokes exe with
// args. Field is passed through unquoted for the picker to substitute.
func PreviewCommand(exe string, args ...string) string {
	return shellquote.Join(append([]string{exe}, args...), Field)
}

func orDefault(binary string) string {
	if strings.TrimSpace(binary) == "" {
		return DefaultBinary
	}
	return binary
}
