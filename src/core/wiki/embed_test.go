package wiki_test

import (
	"testing"

	"wikiicp/src/core/wiki"
)

func TestEmbedSourceURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "iframe snippet passes through",
			input: `<iframe src="https://player.example/v/1"></iframe>`,
			want:  `<iframe src="https://player.example/v/1"></iframe>`,
		},
		{
			name:  "youtube watch link rewritten",
			input: "https://www.youtube.com/watch?v=abc123",
			want:  "https://www.youtube.com/embed/abc123",
		},
		{
			name:  "youtube short link rewritten",
			input: "https://youtu.be/abc123",
			want:  "https://www.youtube.com/embed/abc123",
		},
		{
			name:  "vimeo link rewritten",
			input: "https://vimeo.com/987654",
			want:  "https://player.vimeo.com/video/987654",
		},
		{
			name:  "other urls pass through",
			input: "https://cdn.example/videos/clip.mp4",
			want:  "https://cdn.example/videos/clip.mp4",
		},
		{
			name:  "not a url",
			input: "just words",
			want:  "",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  https://youtu.be/xyz  ",
			want:  "https://www.youtube.com/embed/xyz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wiki.EmbedSourceURL(tt.input); got != tt.want {
				t.Errorf("EmbedSourceURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
