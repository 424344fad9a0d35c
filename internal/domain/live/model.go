package live

import (
	"regexp"
	"strings"

	"usdh/internal/domain/apperr"
)

// Domain errors
var (
	ErrEmptyGrade = apperr.Validation("grade is required")
	ErrEmptyLink  = apperr.Validation("class link is required")
	ErrNotFound   = apperr.NotFound("live class not found")
)

// Class is a scheduled live class for one grade.
type Class struct {
	ID       int64
	Grade    string
	Link     string
	Schedule string
}

// Validate checks if the Class has valid data.
// PRE: Class struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Class) Validate() error {
	if strings.TrimSpace(c.Grade) == "" {
		return ErrEmptyGrade
	}
	if strings.TrimSpace(c.Link) == "" {
		return ErrEmptyLink
	}
	return nil
}

// EmbedURL returns the player URL for the class video, or "" if the link
// does not look like a YouTube link.
func (c *Class) EmbedURL() string {
	return EmbedURL(c.Link)
}

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([\w-]+)`),
	regexp.MustCompile(`youtu\.be/([\w-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([\w-]+)`),
}

// ExtractYouTubeID pulls the video id out of watch, short and embed URLs.
// Falls back to the v= parameter, then to the last path segment.
// INVARIANT: pure function
func ExtractYouTubeID(url string) string {
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	if _, after, ok := strings.Cut(url, "v="); ok {
		id, _, _ := strings.Cut(after, "&")
		return id
	}
	return url[strings.LastIndex(url, "/")+1:]
}

// EmbedURL converts a YouTube link into its embeddable form.
func EmbedURL(url string) string {
	if !strings.Contains(url, "youtube.com") && !strings.Contains(url, "youtu.be") {
		return ""
	}
	id := ExtractYouTubeID(url)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}
