package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "standard watch URL",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
			ok:       true,
		},
		{
			name:     "watch URL with params before v",
			input:    "https://www.youtube.com/watch?t=30&v=dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
			ok:       true,
		},
		{
			name:     "short URL",
			input:    "https://youtu.be/dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
			ok:       true,
		},
		{
			name:     "embed URL",
			input:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
			ok:       true,
		},
		{
			name:     "shorts URL",
			input:    "https://youtube.com/shorts/abc12345678",
			expected: "abc12345678",
			ok:       true,
		},
		{
			name:     "live URL",
			input:    "https://www.youtube.com/live/abc12345678",
			expected: "abc12345678",
			ok:       true,
		},
		{
			name:     "bare 11-char ID",
			input:    "dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
			ok:       true,
		},
		{
			name:     "bare ID with surrounding whitespace",
			input:    "  dQw4w9WgXcQ  ",
			expected: "dQw4w9WgXcQ",
			ok:       true,
		},
		{
			name:     "watch URL with trailing list param",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc123",
			expected: "dQw4w9WgXcQ",
			ok:       true,
		},
		{
			name:  "empty input",
			input: "",
			ok:    false,
		},
		{
			name:  "not a URL and not an ID",
			input: "hello world",
			ok:    false,
		},
		{
			name:  "ID too short",
			input: "abc123",
			ok:    false,
		},
		{
			name:  "ID too long",
			input: "abc123456789",
			ok:    false,
		},
		{
			name:  "ID with invalid characters",
			input: "abc12345!78",
			ok:    false,
		},
		{
			name:  "unrelated URL",
			input: "https://example.com/watch?v=short",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, id)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "watch URL with list",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf",
			expected: "PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf",
			ok:       true,
		},
		{
			name:     "playlist-only URL",
			input:    "https://www.youtube.com/playlist?list=PLabc123",
			expected: "PLabc123",
			ok:       true,
		},
		{
			name:  "no list param",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			ok:    false,
		},
		{
			name:  "empty input",
			input: "",
			ok:    false,
		},
		{
			name:  "list not a query param",
			input: "https://example.com/list/abc",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractPlaylistID(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, id)
			}
		})
	}
}

func TestExtractionOrthogonal(t *testing.T) {
	// A URL may yield both, either, or neither.
	input := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc123"

	vid, vok := ExtractVideoID(input)
	pid, pok := ExtractPlaylistID(input)

	assert.True(t, vok)
	assert.True(t, pok)
	assert.Equal(t, "dQw4w9WgXcQ", vid)
	assert.Equal(t, "PLabc123", pid)
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("dQw4w9WgXcQ"))
	assert.True(t, IsValidID("abc_-345678"))
	assert.False(t, IsValidID("short"))
	assert.False(t, IsValidID("waytoolongid"))
	assert.False(t, IsValidID(""))
}

func TestThumbnailURL(t *testing.T) {
	assert.Equal(t,
		"https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		ThumbnailURL("dQw4w9WgXcQ", ThumbnailHigh))
	// Empty quality falls back to high.
	assert.Equal(t,
		"https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		ThumbnailURL("dQw4w9WgXcQ", ""))
	assert.Equal(t,
		"https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		ThumbnailURL("dQw4w9WgXcQ", ThumbnailMaxRes))
}

func TestEmbedURL(t *testing.T) {
	plain := EmbedURL("dQw4w9WgXcQ", "")
	assert.Contains(t, plain, "https://www.youtube.com/embed/dQw4w9WgXcQ?")
	assert.Contains(t, plain, "autoplay=1")
	assert.NotContains(t, plain, "list=")

	withList := EmbedURL("dQw4w9WgXcQ", "PLabc123")
	assert.Contains(t, withList, "list=PLabc123")
	assert.Contains(t, withList, "listType=playlist")
}

func TestPlaceholderTitle(t *testing.T) {
	assert.Equal(t, "Video dQw4w9...", PlaceholderTitle("dQw4w9WgXcQ"))
	assert.Equal(t, "Video abc...", PlaceholderTitle("abc"))
}
