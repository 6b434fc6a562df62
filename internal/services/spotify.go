// Spotify Web API implementation of [Fetcher]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL    = "https://api.spotify.com/v1"
	DefaultSearchType = "artist"

	// limiterBurst lets the three browse calls leave together.
	limiterBurst = 4
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyItem is the subset of album, playlist, category and artist objects the catalog reads.
type SpotifyItem struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
	Icons  []SpotifyImage `json:"icons"`
}

// SpotifyPage is the paging object wrapping each collection.
type SpotifyPage struct {
	Items *[]SpotifyItem `json:"items"`
	Total int            `json:"total"`
}

type endpoint struct {
	path       string
	collection string
	imageKey   models.ImageKey
}

// CatalogOpts configures a [CatalogClient].
type CatalogOpts struct {
	BaseURL           string
	HTTPClient        *http.Client
	Country           string
	Locale            string
	Limit             int
	RequestsPerSecond float64
	SearchType        string
	Logger            *log.Logger
}

// CatalogClient implements [Fetcher] for the Spotify Web API.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
	country    string
	locale     string
	limit      int
	searchType string
	limiter    *rate.Limiter
	logger     *log.Logger
	endpoints  map[models.SectionKind]endpoint
}

// NewCatalogClient creates a catalog client, filling unset options with defaults.
func NewCatalogClient(opts CatalogOpts) *CatalogClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.SearchType == "" {
		opts.SearchType = DefaultSearchType
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &CatalogClient{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		country:    opts.Country,
		locale:     opts.Locale,
		limit:      opts.Limit,
		searchType: opts.SearchType,
		limiter:    rate.NewLimiter(limit, limiterBurst),
		logger:     shared.WithLogger(opts.Logger, "component", "catalog_client"),
		endpoints: map[models.SectionKind]endpoint{
			models.NewReleases:       {path: "/browse/new-releases", collection: "albums", imageKey: models.ImagesKey},
			models.FeaturedPlaylists: {path: "/browse/featured-playlists", collection: "playlists", imageKey: models.ImagesKey},
			models.Categories:        {path: "/browse/categories", collection: "categories", imageKey: models.IconsKey},
			models.SearchResults:     {path: "/search", collection: opts.SearchType + "s", imageKey: models.ImagesKey},
		},
	}
}

// NewReleases retrieves the albums released this week.
func (c *CatalogClient) NewReleases(ctx context.Context, token string) ([]models.CatalogItem, error) {
	return c.Fetch(ctx, models.NewReleases, token, "")
}

// FeaturedPlaylists retrieves the editorially featured playlists.
func (c *CatalogClient) FeaturedPlaylists(ctx context.Context, token string) ([]models.CatalogItem, error) {
	return c.Fetch(ctx, models.FeaturedPlaylists, token, "")
}

// Categories retrieves the browse categories.
func (c *CatalogClient) Categories(ctx context.Context, token string) ([]models.CatalogItem, error) {
	return c.Fetch(ctx, models.Categories, token, "")
}

// SearchArtists searches the catalog for term.
func (c *CatalogClient) SearchArtists(ctx context.Context, token, term string) ([]models.CatalogItem, error) {
	return c.Fetch(ctx, models.SearchResults, token, term)
}

// Fetch performs a single GET for kind and decodes its collection.
func (c *CatalogClient) Fetch(ctx context.Context, kind models.SectionKind, token, term string) ([]models.CatalogItem, error) {
	ep, ok := c.endpoints[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown section %d", shared.ErrInvalidArgument, kind)
	}
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}
	if kind == models.SearchResults && term == "" {
		return nil, fmt.Errorf("%w: empty search term", shared.ErrInvalidArgument)
	}

	logger := shared.WithLogger(c.logger, "section", kind, "request_id", shared.GenerateID())
	started := time.Now()

	body, err := c.doRequest(ctx, ep.path, c.query(kind, term), token)
	if err != nil {
		logger.Debug("request failed", "error", err, "elapsed", time.Since(started))
		return nil, err
	}

	items, err := decodeItems(body, ep)
	if err != nil {
		logger.Debug("decode failed", "error", err)
		return nil, &models.MalformedResponseError{Section: kind, Err: err}
	}

	logger.Debug("fetched section", "items", len(items), "elapsed", time.Since(started))
	return items, nil
}

func (c *CatalogClient) query(kind models.SectionKind, term string) url.Values {
	q := url.Values{}
	switch kind {
	case models.SearchResults:
		q.Set("q", term)
		q.Set("type", c.searchType)
	case models.FeaturedPlaylists, models.Categories:
		if c.locale != "" {
			q.Set("locale", c.locale)
		}
		fallthrough
	case models.NewReleases:
		if c.country != "" {
			q.Set("country", c.country)
		}
	}
	if c.limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", c.limit))
	}
	return q
}

// doRequest performs an authenticated GET against the Web API and returns the response body.
func (c *CatalogClient) doRequest(ctx context.Context, path string, query url.Values, token string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}

	apiURL := c.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: spotify API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}
	return body, nil
}

func decodeItems(body []byte, ep endpoint) ([]models.CatalogItem, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	raw, ok := envelope[ep.collection]
	if !ok {
		return nil, fmt.Errorf("missing %q collection", ep.collection)
	}

	var page SpotifyPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ep.collection, err)
	}
	if page.Items == nil {
		return nil, fmt.Errorf("missing %s.items", ep.collection)
	}

	items := make([]models.CatalogItem, 0, len(*page.Items))
	for _, si := range *page.Items {
		items = append(items, toCatalogItem(si, ep.imageKey))
	}
	return items, nil
}

func toCatalogItem(si SpotifyItem, key models.ImageKey) models.CatalogItem {
	src := si.Images
	if key == models.IconsKey {
		src = si.Icons
	}

	images := make([]models.Image, 0, len(src))
	for _, img := range src {
		images = append(images, models.Image{URL: img.URL, Height: img.Height, Width: img.Width})
	}

	return models.CatalogItem{ID: si.ID, Name: si.Name, ImageKey: key, Images: images}
}
