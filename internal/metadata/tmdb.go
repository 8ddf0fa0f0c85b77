// Package metadata looks up poster art on TMDB. Every lookup is best
// effort: a missing API key, a network failure, or an empty result set all
// degrade to "no poster" and never fail the enclosing scan.
package metadata

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultImageURL = "https://image.tmdb.org/t/p/w500"
)

type Client struct {
	apiKey   string
	baseURL  string
	imageURL string
	client   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		imageURL: defaultImageURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

var (
	yearToken = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	qualityTags = regexp.MustCompile(
		`(?i)\b(1080p|720p|480p|2160p|BluRay|WEB-DL|WEBRip|HDRip|BRRip|DVDRip|x264|x265|HEVC)\b`)
	seasonMarker = regexp.MustCompile(`(?i)\b(S\d{2}|Season\s*\d+)\b`)
	nameSeps     = strings.NewReplacer(".", " ", "_", " ", "-", " ")
)

// CleanMovieTitle strips year tokens and release-quality tags so the search
// query matches what TMDB indexes. Display titles are left alone; only the
// query is cleaned.
func CleanMovieTitle(title string) string {
	t := yearToken.ReplaceAllString(title, "")
	t = qualityTags.ReplaceAllString(t, "")
	return strings.Join(strings.Fields(nameSeps.Replace(t)), " ")
}

// CleanSeriesTitle strips season markers like "S01" or "Season 2".
func CleanSeriesTitle(title string) string {
	t := seasonMarker.ReplaceAllString(title, "")
	return strings.Join(strings.Fields(nameSeps.Replace(t)), " ")
}

// MoviePoster returns the poster URL for the first TMDB movie match, or ""
// when nothing usable comes back.
func (c *Client) MoviePoster(title string) string {
	return c.searchPoster("movie", CleanMovieTitle(title))
}

// SeriesPoster is MoviePoster for TV titles.
func (c *Client) SeriesPoster(title string) string {
	return c.searchPoster("tv", CleanSeriesTitle(title))
}

type searchResult struct {
	Results []struct {
		ID         int    `json:"id"`
		Title      string `json:"title"`
		Name       string `json:"name"`
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

func (c *Client) searchPoster(searchType, query string) string {
	if c.apiKey == "" || query == "" {
		return ""
	}

	reqURL := fmt.Sprintf("%s/search/%s?api_key=%s&query=%s&language=en-US",
		c.baseURL, searchType, c.apiKey, url.QueryEscape(query))

	resp, err := c.client.Get(reqURL)
	if err != nil {
		log.Printf("tmdb: search %s %q failed: %v", searchType, query, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("tmdb: search %s %q returned %d", searchType, query, resp.StatusCode)
		return ""
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("tmdb: decode failed for %q: %v", query, err)
		return ""
	}

	if len(result.Results) == 0 || result.Results[0].PosterPath == "" {
		return ""
	}
	return c.imageURL + result.Results[0].PosterPath
}
