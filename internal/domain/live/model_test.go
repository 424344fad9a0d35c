package live

import "testing"

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://youtu.be/abc-DEF_123", "abc-DEF_123"},
		{"https://www.youtube.com/embed/xyz987", "xyz987"},
		{"https://m.youtube.com/watch?feature=share&v=q1w2e3&list=PL1", "q1w2e3"},
		{"https://example.com/videos/lesson-4", "lesson-4"},
		{"plainid", "plainid"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := ExtractYouTubeID(tt.url); got != tt.want {
				t.Errorf("ExtractYouTubeID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestEmbedURL(t *testing.T) {
	if got := EmbedURL("https://youtu.be/abc"); got != "https://www.youtube.com/embed/abc" {
		t.Errorf("EmbedURL = %q", got)
	}
	if got := EmbedURL("https://meet.example.com/room"); got != "" {
		t.Errorf("EmbedURL(non-youtube) = %q, want empty", got)
	}
}

func TestClass_Validate(t *testing.T) {
	c := Class{Grade: "10"}
	if err := c.Validate(); err != ErrEmptyLink {
		t.Errorf("expected ErrEmptyLink, got %v", err)
	}
	c.Link = "https://youtu.be/abc"
	if err := c.Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
