package ui

import "testing"

func resetTheme(t *testing.T) {
	t.Helper()
	prevStyle, prevColor := Accent, accentColor
	t.Cleanup(func() {
		Accent, accentColor = prevStyle, prevColor
	})
}

func TestConfigureTheme(t *testing.T) {
	tests := []struct {
		accent  string
		want    string
		enabled bool
	}{
		{"", defaultAccent, true},
		{"39", "39", true},
		{" 244 ", "244", true},
		{"#7AA2F7", "#7aa2f7", true},
		{"#abc", "#aabbcc", true},
		{"none", "", false},
		{"OFF", "", false},
		{"default", "", false},
		{"256", defaultAccent, true},
		{"-1", defaultAccent, true},
		{"#12345", defaultAccent, true},
		{"#zzzzzz", defaultAccent, true},
		{"purple", defaultAccent, true},
	}
	for _, tt := range tests {
		t.Run(tt.accent, func(t *testing.T) {
			resetTheme(t)
			ConfigureTheme(tt.accent)
			got, enabled := AccentColor()
			if got != tt.want || enabled != tt.enabled {
				t.Errorf("ConfigureTheme(%q): AccentColor() = %q, %v; want %q, %v",
					tt.accent, got, enabled, tt.want, tt.enabled)
			}
		})
	}
}

func TestDisabledAccentRendersPlain(t *testing.T) {
	resetTheme(t)
	ConfigureTheme("none")
	if got := ID(42); got != "42" {
		t.Errorf("ID(42) = %q", got)
	}
}

func TestStatusLines(t *testing.T) {
	if got := Successf("%s id `%d` added", "alias", 3); got != "✓ alias id `3` added" {
		t.Errorf("Successf = %q", got)
	}
	if got := Infof("nothing to do"); got != "ℹ nothing to do" {
		t.Errorf("Infof = %q", got)
	}
	for n, want := range map[int64]string{0: "0 rows", 1: "1 row", 5: "5 rows"} {
		if got := Rows(n); got != want {
			t.Errorf("Rows(%d) = %q, want %q", n, got, want)
		}
	}
}
