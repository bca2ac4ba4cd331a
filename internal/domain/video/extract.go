package video

import (
	"regexp"
	"strings"
)

// URL patterns checked in priority order. The first match wins.
var idPatterns = []*regexp.Regexp{
	// Standard watch URL (v= first or after other query params)
	regexp.MustCompile(`youtube\.com/watch\?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.+&v=([A-Za-z0-9_-]{11})`),
	// Short URL
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	// Embed URL
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	// Shorts URL
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
	// Live URL
	regexp.MustCompile(`youtube\.com/live/([A-Za-z0-9_-]{11})`),
}

var (
	bareIDPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	playlistIDPattern = regexp.MustCompile(`[?&]list=([A-Za-z0-9_-]+)`)
)

// ExtractVideoID extracts a video ID from pasted text. It accepts watch,
// youtu.be, embed, shorts and live URLs, or a bare 11-char ID. Returns false
// when no pattern matches; callers treat that as a validation failure.
func ExtractVideoID(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}

	if trimmed := strings.TrimSpace(text); bareIDPattern.MatchString(trimmed) {
		return trimmed, true
	}

	return "", false
}

// ExtractPlaylistID scans for a list= query parameter anywhere in the input.
// Independent of video ID extraction: the same input may yield both, either,
// or neither.
func ExtractPlaylistID(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	if m := playlistIDPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// IsValidID reports whether s is a well-formed 11-char video ID.
func IsValidID(s string) bool {
	return bareIDPattern.MatchString(s)
}
