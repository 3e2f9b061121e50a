package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// CLIResult is the decoded JSON envelope of one rtend invocation plus what
// the process left behind.
type CLIResult struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    *CLIError       `json:"error,omitempty"`
	Warnings []CLIWarning    `json:"warnings,omitempty"`
	Meta     *CLIMeta        `json:"meta,omitempty"`

	RawJSON  string `json:"-"`
	Stderr   string `json:"-"`
	ExitCode int    `json:"-"`
}

type CLIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CLIMeta struct {
	Count   int    `json:"count,omitempty"`
	Profile string `json:"profile,omitempty"`
}

// buildBinary compiles ./cmd/rtend once per test process.
var buildBinary = sync.OnceValues(func() (string, error) {
	root, err := moduleRoot()
	if err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp("", "rtend-cli-bin-*")
	if err != nil {
		return "", err
	}
	name := "rtend"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	bin := filepath.Join(dir, name)

	cmd := exec.Command("go", "build", "-o", bin, "./cmd/rtend")
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %w\n%s", err, out)
	}
	return bin, nil
})

// BuildCLI returns the path of the rtend binary, building it on first use.
func BuildCLI(t *testing.T) string {
	t.Helper()
	bin, err := buildBinary()
	if err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}
	return bin
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above " + dir)
		}
		dir = parent
	}
}

// RunCLI runs rtend with --json against the profile.
func (p *TestProfile) RunCLI(args ...string) *CLIResult {
	p.t.Helper()
	return p.run(nil, args)
}

// RunCLIWithStdin is RunCLI with stdin fed from input.
func (p *TestProfile) RunCLIWithStdin(input string, args ...string) *CLIResult {
	p.t.Helper()
	return p.run(strings.NewReader(input), args)
}

func (p *TestProfile) run(stdin io.Reader, args []string) *CLIResult {
	p.t.Helper()

	argv := append([]string{"--profile", p.Name, "--config", p.ConfigPath, "--json"}, args...)
	cmd := exec.Command(BuildCLI(p.t), argv...)
	cmd.Env = append(os.Environ(), "RTEND_DATA_DIR="+p.DataDir, "RTEND_PROFILE=", "RTEND_DEBUG=")
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	runErr := cmd.Run()
	result := &CLIResult{}
	if err := json.Unmarshal(stdout.Bytes(), result); err != nil {
		result.OK = false
		result.Error = &CLIError{
			Code:    "PARSE_ERROR",
			Message: "failed to parse JSON output: " + err.Error(),
		}
	}
	result.RawJSON, result.Stderr = stdout.String(), stderr.String()

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
	}
	return result
}

// MustSucceed fails the test if the CLI command did not succeed.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK || r.ExitCode != 0 {
		errMsg := "unknown error"
		if r.Error != nil {
			errMsg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("expected command to succeed (exit %d), got error: %s\nRaw output: %s", r.ExitCode, errMsg, r.RawJSON)
	}
	return r
}

// MustFail fails the test if the CLI command did not fail with the expected
// code and a non-zero exit status.
func (r *CLIResult) MustFail(t *testing.T, expectedCode string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected command to fail with code %s, but it succeeded\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error == nil {
		t.Fatalf("expected error with code %s, but error is nil\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error.Code != expectedCode {
		t.Fatalf("expected error code %s, got %s: %s\nRaw output: %s", expectedCode, r.Error.Code, r.Error.Message, r.RawJSON)
	}
	if r.ExitCode == 0 {
		t.Fatalf("expected non-zero exit for %s\nRaw output: %s", expectedCode, r.RawJSON)
	}
	return r
}

// Decode unmarshals the Data field into v.
func (r *CLIResult) Decode(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Data, v); err != nil {
		t.Fatalf("failed to decode data: %v\nRaw output: %s", err, r.RawJSON)
	}
}

// DataMap returns the Data field as an object.
func (r *CLIResult) DataMap(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	r.Decode(t, &m)
	return m
}

// DataList returns the Data field as an array.
func (r *CLIResult) DataList(t *testing.T) []map[string]any {
	t.Helper()
	var l []map[string]any
	r.Decode(t, &l)
	return l
}
