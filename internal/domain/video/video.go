// Package video provides the VideoRef domain entity and YouTube URL helpers.
package video

import (
	"net/url"
	"time"
)

// Ref identifies a playable video and its optional playlist context.
// This is the shape persisted in the history and queue stores.
type Ref struct {
	ID         string    `json:"id"`                   // 11-char opaque video ID
	Title      string    `json:"title,omitempty"`      // Best-effort title, may be empty
	PlaylistID string    `json:"playlistId,omitempty"` // Playlist context, empty if none
	AddedAt    time.Time `json:"addedAt"`              // Time the ref was created
}

// ThumbnailQuality selects one of the thumbnail sizes YouTube serves.
type ThumbnailQuality string

const (
	ThumbnailDefault ThumbnailQuality = "default"
	ThumbnailMedium  ThumbnailQuality = "mqdefault"
	ThumbnailHigh    ThumbnailQuality = "hqdefault"
	ThumbnailMaxRes  ThumbnailQuality = "maxresdefault"
)

// ThumbnailURL returns the thumbnail image URL for a video ID.
func ThumbnailURL(id string, quality ThumbnailQuality) string {
	if quality == "" {
		quality = ThumbnailHigh
	}
	return "https://img.youtube.com/vi/" + id + "/" + string(quality) + ".jpg"
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(id string) string {
	return "https://youtube.com/watch?v=" + id
}

// EmbedURL returns the embedded-player URL for a video, optionally within a
// playlist context.
func EmbedURL(id, playlistID string) string {
	params := url.Values{}
	params.Set("autoplay", "1")
	params.Set("rel", "0")
	params.Set("modestbranding", "1")
	if playlistID != "" {
		params.Set("listType", "playlist")
		params.Set("list", playlistID)
	}
	return "https://www.youtube.com/embed/" + id + "?" + params.Encode()
}

// PlaceholderTitle returns a generated title for a video whose metadata has
// not been fetched yet.
func PlaceholderTitle(id string) string {
	if len(id) > 6 {
		id = id[:6]
	}
	return "Video " + id + "..."
}
