package picker

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/rtend/internal/model"
)

func TestParseEntityID(t *testing.T) {
	tests := []struct {
		line    string
		want    int64
		wantErr bool
	}{
		{"42\tAlice", 42, false},
		{"    7\tBob; Bobby\t2\t0", 7, false},
		{"\t3", 3, false},
		{"12345\tmax width", 12345, false},
		{"123456\ttoo long", 0, true},
		{"42abc", 0, true},
		{"Alice 42", 0, true},
		{"", 0, true},
		{"   ", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseEntityID(tt.line)
		if tt.wantErr {
			if !errors.Is(err, ErrNoEntityID) {
				t.Errorf("ParseEntityID(%q) error = %v, want ErrNoEntityID", tt.line, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEntityID(%q) unexpected error: %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEntityID(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestLinesRoundTripIDs(t *testing.T) {
	created := model.Timestamp{Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	lines := Lines([]model.EntityLong{
		{ID: 1, Aliases: "Alice; Al", AliasCount: 2, SnippetCount: 1, Created: created},
		{ID: 1234, Aliases: "", Created: created},
	})
	if len(lines) != 3 || lines[0] != Header {
		t.Fatalf("unexpected lines: %q", lines)
	}
	for i, want := range []int64{1, 1234} {
		got, err := ParseEntityID(lines[i+1])
		if err != nil || got != want {
			t.Fatalf("line %q parsed to %d, %v", lines[i+1], got, err)
		}
	}
	if !strings.Contains(lines[1], "2024-03-01T12:00:00Z") {
		t.Fatalf("expected RFC 3339 timestamp in %q", lines[1])
	}
}

func TestPreviewCommand(t *testing.T) {
	got := PreviewCommand("/opt/my tools/rtend", "--profile", "work", "list", "entity", Field, "-vv")
	want := "'/opt/my tools/rtend' --profile work list entity {1} -vv"
	if got != want {
		t.Fatalf("PreviewCommand = %q, want %q", got, want)
	}
}

func writeFakePicker(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake picker is a shell script")
	}
	path := filepath.Join(t.TempDir(), "fake-fzf")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write fake picker: %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	lines := []string{Header, "    1\tAlice", "    2\tBob"}

	t.Run("returns selected line", func(t *testing.T) {
		bin := writeFakePicker(t, `sed -n 3p`)
		got, err := Run(lines, Options{Binary: bin, HeaderLines: 1})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if got != "    2\tBob" {
			t.Fatalf("Run = %q", got)
		}
	})

	t.Run("exit 130 is no selection", func(t *testing.T) {
		bin := writeFakePicker(t, `cat >/dev/null; exit 130`)
		_, err := Run(lines, Options{Binary: bin})
		if !errors.Is(err, ErrNoSelection) {
			t.Fatalf("err = %v, want ErrNoSelection", err)
		}
	})

	t.Run("empty output is no selection", func(t *testing.T) {
		bin := writeFakePicker(t, `cat >/dev/null`)
		_, err := Run(lines, Options{Binary: bin})
		if !errors.Is(err, ErrNoSelection) {
			t.Fatalf("err = %v, want ErrNoSelection", err)
		}
	})

	t.Run("other failures are errors", func(t *testing.T) {
		bin := writeFakePicker(t, `cat >/dev/null; exit 2`)
		_, err := Run(lines, Options{Binary: bin})
		if err == nil || errors.Is(err, ErrNoSelection) {
			t.Fatalf("err = %v, want launch failure", err)
		}
	})

	t.Run("only header lines", func(t *testing.T) {
		_, err := Run([]string{Header}, Options{HeaderLines: 1})
		if !errors.Is(err, ErrNoSelection) {
			t.Fatalf("err = %v, want ErrNoSelection", err)
		}
	})
}

func TestRunNotInstalled(t *testing.T) {
	prev := pickerLookPath
	t.Cleanup(func() { pickerLookPath = prev })
	pickerLookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	_, err := Run([]string{"1\tAlice"}, Options{})
	if !errors.Is(err, ErrPickerNotInstalled) {
		t.Fatalf("err = %v, want ErrPickerNotInstalled", err)
	}
	if Installed("") {
		t.Fatal("Installed should be false")
	}
}
