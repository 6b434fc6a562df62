package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

const (
	FakeClientID     = "fake-client-id"
	FakeClientSecret = "fake-client-secret"
	FakeToken        = "fake-access-token"

	TokenPath             = "/api/token"
	NewReleasesPath       = "/v1/browse/new-releases"
	FeaturedPlaylistsPath = "/v1/browse/featured-playlists"
	CategoriesPath        = "/v1/browse/categories"
	SearchPath            = "/v1/search"
)

// Override replaces the default response for a path or search term.
//
// A zero Status keeps 200; an empty Body keeps the fixture.
type Override struct {
	Status int
	Body   string
	Delay  time.Duration
}

// FakeSpotify is an [httptest.Server] speaking the subset of the Spotify accounts and Web API used by the catalog.
//
// It checks client credentials on the token endpoint and the bearer token on catalog paths,
// and counts every request by path.
type FakeSpotify struct {
	*httptest.Server

	mu        sync.Mutex
	hits      map[string]int
	queries   map[string][]string
	overrides map[string]Override
	searches  map[string]Override
}

// NewFakeSpotify starts a fake server; callers must Close it.
func NewFakeSpotify() *FakeSpotify {
	f := &FakeSpotify{
		hits:      make(map[string]int),
		queries:   make(map[string][]string),
		overrides: make(map[string]Override),
		searches:  make(map[string]Override),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

// TokenURL is the client_credentials endpoint.
func (f *FakeSpotify) TokenURL() string { return f.URL + TokenPath }

// BaseURL is the Web API root.
func (f *FakeSpotify) BaseURL() string { return f.URL + "/v1" }

// Handle overrides the response for path.
func (f *FakeSpotify) Handle(path string, o Override) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides[path] = o
}

// HandleSearch overrides the search response for term.
func (f *FakeSpotify) HandleSearch(term string, o Override) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches[term] = o
}

// Hits returns the number of requests received for path.
func (f *FakeSpotify) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// Queries returns the raw query strings received for path, in arrival order.
func (f *FakeSpotify) Queries(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries[path]...)
}

// SearchHits returns the number of search requests received for term.
func (f *FakeSpotify) SearchHits(term string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits["search:"+term]
}

func (f *FakeSpotify) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.queries[r.URL.Path] = append(f.queries[r.URL.Path], r.URL.RawQuery)
	o, overridden := f.overrides[r.URL.Path]
	if r.URL.Path == SearchPath {
		term := r.URL.Query().Get("q")
		f.hits["search:"+term]++
		if so, ok := f.searches[term]; ok {
			o, overridden = so, true
		}
	}
	f.mu.Unlock()

	if overridden && o.Delay > 0 {
		select {
		case <-time.After(o.Delay):
		case <-r.Context().Done():
			return
		}
	}

	if r.URL.Path == TokenPath {
		f.serveToken(w, r, o, overridden)
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+FakeToken {
		writeFake(w, http.StatusUnauthorized, `{"error":{"status":401,"message":"Invalid access token"}}`)
		return
	}

	body, ok := fixture(r)
	if !ok {
		writeFake(w, http.StatusNotFound, `{"error":{"status":404,"message":"Service not found"}}`)
		return
	}

	status := http.StatusOK
	if overridden {
		if o.Status != 0 {
			status = o.Status
		}
		if o.Body != "" {
			body = o.Body
		}
	}
	writeFake(w, status, body)
}

func (f *FakeSpotify) serveToken(w http.ResponseWriter, r *http.Request, o Override, overridden bool) {
	if overridden && o.Status != 0 {
		writeFake(w, o.Status, o.Body)
		return
	}
	if r.Method != http.MethodPost {
		writeFake(w, http.StatusMethodNotAllowed, `{"error":"invalid_request"}`)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeFake(w, http.StatusBadRequest, `{"error":"invalid_request"}`)
		return
	}
	if r.PostForm.Get("grant_type") != "client_credentials" {
		writeFake(w, http.StatusBadRequest, `{"error":"unsupported_grant_type"}`)
		return
	}
	if r.PostForm.Get("client_id") != FakeClientID || r.PostForm.Get("client_secret") != FakeClientSecret {
		writeFake(w, http.StatusUnauthorized, `{"error":"invalid_client"}`)
		return
	}
	writeFake(w, http.StatusOK, fmt.Sprintf(`{"access_token":%q,"token_type":"Bearer","expires_in":3600}`, FakeToken))
}

func writeFake(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func fixture(r *http.Request) (string, bool) {
	switch r.URL.Path {
	case NewReleasesPath:
		return NewReleasesFixture, true
	case FeaturedPlaylistsPath:
		return FeaturedPlaylistsFixture, true
	case CategoriesPath:
		return CategoriesFixture, true
	case SearchPath:
		return SearchFixture(r.URL.Query().Get("q")), true
	default:
		return "", false
	}
}

// NewReleasesFixture has three albums; the last one has no images.
const NewReleasesFixture = `{
  "albums": {
    "href": "https://api.spotify.com/v1/browse/new-releases",
    "items": [
      {"id": "alb1", "name": "Midnights", "images": [{"url": "https://i.scdn.co/image/alb1", "height": 640, "width": 640}]},
      {"id": "alb2", "name": "Renaissance", "images": [{"url": "https://i.scdn.co/image/alb2", "height": 640, "width": 640}]},
      {"id": "alb3", "name": "Untitled Demo"}
    ],
    "limit": 20,
    "total": 3
  }
}`

// FeaturedPlaylistsFixture has two playlists.
const FeaturedPlaylistsFixture = `{
  "message": "Monday morning music",
  "playlists": {
    "items": [
      {"id": "pl1", "name": "Today's Top Hits", "images": [{"url": "https://i.scdn.co/image/pl1"}]},
      {"id": "pl2", "name": "RapCaviar", "images": [{"url": "https://i.scdn.co/image/pl2"}]}
    ],
    "total": 2
  }
}`

// CategoriesFixture has two categories whose artwork lives under icons.
const CategoriesFixture = `{
  "categories": {
    "items": [
      {"id": "pop", "name": "Pop", "icons": [{"url": "https://t.scdn.co/pop.jpg", "height": 274, "width": 274}]},
      {"id": "rock", "name": "Rock", "icons": [{"url": "https://t.scdn.co/rock.jpg", "height": 274, "width": 274}]}
    ],
    "total": 2
  }
}`

// SearchFixture returns two artists named after term.
func SearchFixture(term string) string {
	items := []map[string]any{
		{"id": "ar1", "name": term + " 1", "images": []map[string]string{{"url": "https://i.scdn.co/image/ar1"}}},
		{"id": "ar2", "name": term + " 2", "images": []map[string]string{{"url": "https://i.scdn.co/image/ar2"}}},
	}
	data, _ := json.Marshal(map[string]any{"artists": map[string]any{"items": items, "total": len(items)}})
	return string(data)
}

// SearchName returns the name of the i-th (1-based) artist SearchFixture produces for term.
func SearchName(term string, i int) string {
	return fmt.Sprintf("%s %d", term, i)
}
