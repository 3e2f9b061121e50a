package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/rtend/internal/mutation"
	"github.com/aidanlsb/rtend/internal/ui"
)

// Swapped by tests.
var (
	stdin io.Reader = os.Stdin

	stdinIsTerminal = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

// promptYesNo asks message and reads one answer from stdin. "y"/"yes" go
// ahead; "n"/"no", end of input and anything else abort with
// mutation.ErrAborted.
func promptYesNo(message string) error {
	if message == "" {
		message = "Proceed?"
	}
	fmt.Printf("%s %s ", message, ui.Hint("[y/n]"))

	reader := bufio.NewReader(stdin)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		fmt.Println()
		return fmt.Errorf("no answer: %w", mutation.ErrAborted)
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return nil
	case "n", "no":
		return fmt.Errorf("declined: %w", mutation.ErrAborted)
	default:
		return fmt.Errorf("invalid answer %q, expected y or n: %w", strings.TrimSpace(response), mutation.ErrAborted)
	}
}

// readSnippetData reads snippet text from stdin until end of input.
func readSnippetData() (string, error) {
	if stdinIsTerminal() && !isJSONOutput() {
		fmt.Fprintln(os.Stderr, ui.Hint("[Type in data for snippet - Terminate by Return (Enter) and Ctrl-D]"))
	}
	data, err := mutation.ReadContent(stdin)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(data) == "" {
		return "", fmt.Errorf("snippet data is empty: %w", errInvalidInput)
	}
	return data, nil
}
