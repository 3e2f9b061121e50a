package markdown

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{"heading wins", "intro line\n\n# Met at *GopherCon*\n\nbody", 0, "Met at GopherCon"},
		{"first paragraph", "Likes **green** tea\nand `go` code\n\nsecond", 0, "Likes green tea and go code"},
		{"truncated", "a fairly long first paragraph", 10, "a fairl..."},
		{"short limit", "abcdef", 2, "ab"},
		{"code block only", "```\nfmt.Println()\n```", 0, "```"},
		{"empty", "", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.content, tt.max); got != tt.want {
				t.Errorf("Title(%q, %d) = %q, want %q", tt.content, tt.max, got, tt.want)
			}
		})
	}
}
