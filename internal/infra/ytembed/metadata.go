package ytembed

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"

	"github.com/tongbarn/tube/internal/domain/video"
)

// Errors
var (
	ErrVideoNotFound      = errors.New("video not found")
	ErrVideoNotEmbeddable = errors.New("video is not embeddable")
)

// VideoMeta is best-effort video metadata.
type VideoMeta struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// MetadataClient fetches video metadata. The zero value uses
// http.DefaultClient and the public endpoints.
type MetadataClient struct {
	HTTPClient *http.Client
	// BaseURL overrides the endpoint host in tests.
	BaseURL string
}

func (c *MetadataClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *MetadataClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return "https://www.youtube.com"
}

// Metadata returns the title and author of a video, trying the oEmbed
// endpoint first and falling back to scraping the watch page for videos
// that are not embeddable.
func (c *MetadataClient) Metadata(ctx context.Context, videoID string) (*VideoMeta, error) {
	meta, err := c.fromOEmbed(ctx, videoID)
	if err != nil {
		if !errors.Is(err, ErrVideoNotEmbeddable) {
			return nil, errors.Wrap(err, "failed to get video metadata via oembed")
		}
		meta, err = c.fromWatchPage(ctx, videoID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get video metadata from page")
		}
	}
	return meta, nil
}

func (c *MetadataClient) fromOEmbed(ctx context.Context, videoID string) (*VideoMeta, error) {
	url := c.baseURL() + "/oembed?url=" + video.WatchURL(videoID) + "&format=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusNotFound:
		return nil, ErrVideoNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrVideoNotEmbeddable
	default:
		return nil, errors.Newf("unexpected status code: %d", resp.StatusCode)
	}

	var meta VideoMeta
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *MetadataClient) fromWatchPage(ctx context.Context, videoID string) (*VideoMeta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/watch?v="+videoID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	return &VideoMeta{
		Title:      findTitle(doc),
		AuthorName: findAuthorName(doc),
	}, nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
		return n.FirstChild.Data
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// findAuthorName looks for <link itemprop="name" content="...">.
func findAuthorName(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "link" {
		var isName bool
		var content string
		for _, attr := range n.Attr {
			if attr.Key == "itemprop" && attr.Val == "name" {
				isName = true
			}
			if attr.Key == "content" {
				content = attr.Val
			}
		}
		if isName {
			return content
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if name := findAuthorName(c); name != "" {
			return name
		}
	}
	return ""
}
