// Package news fetches the dashboard's weather news feed: a Google
// News RSS search proxied through rss2json. Any failure falls back to
// a fixed list of reference links, never an error.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

const rssQuery = "https://news.google.com/rss/search?q=india+weather+OR+monsoon+OR+cyclone+OR+IMD&hl=en-IN&gl=IN&ceid=IN:en"

const maxItems = 15

// Item is one news article, annotated for display.
type Item struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	PubDate   string `json:"pubDate"`
	Thumbnail string `json:"thumbnail,omitempty"`

	// DateKey groups items by publish date; DateLabel and TimeAgo are
	// the display strings for that grouping.
	DateKey   string `json:"dateKey"`
	DateLabel string `json:"dateLabel"`
	TimeAgo   string `json:"timeAgo"`
}

// FallbackLink is one of the static sources shown when the feed cannot
// be loaded.
type FallbackLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Feed is the news response: either live items or the fallback links.
type Feed struct {
	Items    []Item         `json:"items,omitempty"`
	Fallback []FallbackLink `json:"fallback,omitempty"`
}

// FallbackLinks returns the fixed reference sources.
func FallbackLinks() []FallbackLink {
	return []FallbackLink{
		{Title: "IMD — India Meteorological Dept", URL: "https://mausam.imd.gov.in/"},
		{Title: "Skymet Weather", URL: "https://www.skymetweather.com/"},
		{Title: "Weather.com India", URL: "https://weather.com/en-IN"},
	}
}

// Fetcher loads the news feed.
type Fetcher struct {
	client *http.Client
	apiURL string
}

// NewFetcher creates a Fetcher using the given HTTP client and the
// production rss2json proxy.
func NewFetcher(client *http.Client) *Fetcher {
	return &Fetcher{
		client: client,
		apiURL: "https://api.rss2json.com/v1/api.json?rss_url=" + url.QueryEscape(rssQuery),
	}
}

// Fetch returns the latest articles, or the fallback links on any
// failure: transport error, non-success status, or an empty item list.
func (f *Fetcher) Fetch(ctx context.Context) Feed {
	items, err := f.fetchItems(ctx)
	if err != nil {
		log.Printf("news load failed: %v", err)
		return Feed{Fallback: FallbackLinks()}
	}
	return Feed{Items: items}
}

func (f *Fetcher) fetchItems(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.apiURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rss fetch failed: %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			Title     string `json:"title"`
			Link      string `json:"link"`
			PubDate   string `json:"pubDate"`
			Author    string `json:"author"`
			Thumbnail string `json:"thumbnail"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("no articles")
	}

	now := time.Now()
	raw := payload.Items
	if len(raw) > maxItems {
		raw = raw[:maxItems]
	}

	items := make([]Item, 0, len(raw))
	for _, it := range raw {
		item := Item{
			Title:     cleanTitle(it.Title),
			Link:      it.Link,
			Source:    sourceOf(it.Title, it.Author),
			PubDate:   it.PubDate,
			Thumbnail: it.Thumbnail,
		}
		if ts, err := parsePubDate(it.PubDate); err == nil {
			item.DateKey = ts.UTC().Format("2006-01-02")
			item.DateLabel = weather.FormatNewsDate(item.DateKey, now)
			item.TimeAgo = weather.TimeAgo(ts, now)
		}
		items = append(items, item)
	}
	return items, nil
}

// parsePubDate handles the rss2json timestamp format with an RFC1123
// fallback.
func parsePubDate(s string) (time.Time, error) {
	if ts, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC1123Z, s)
}

// sourceOf extracts the publication: the feed's author field when set,
// else the "Title - Source" suffix Google News appends.
func sourceOf(title, author string) string {
	if author != "" {
		return author
	}
	if i := strings.LastIndex(title, " - "); i >= 0 && i+3 < len(title) {
		return title[i+3:]
	}
	return "News"
}

// cleanTitle strips the trailing " - Source" suffix.
func cleanTitle(title string) string {
	if i := strings.LastIndex(title, " - "); i > 0 {
		return title[:i]
	}
	return title
}
