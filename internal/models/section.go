package models

// SectionKind identifies one of the four catalog sections.
type SectionKind int

const (
	NewReleases SectionKind = iota
	FeaturedPlaylists
	Categories
	SearchResults
)

// BaseSections lists the sections fetched on credential readiness, in display order.
var BaseSections = []SectionKind{NewReleases, FeaturedPlaylists, Categories}

func (k SectionKind) String() string {
	switch k {
	case NewReleases:
		return "new_releases"
	case FeaturedPlaylists:
		return "featured_playlists"
	case Categories:
		return "categories"
	case SearchResults:
		return "search_results"
	default:
		return ""
	}
}

// MarshalText encodes the kind by name.
func (k SectionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Title is the heading shown above the section.
func (k SectionKind) Title() string {
	switch k {
	case NewReleases:
		return "RELEASED THIS WEEK"
	case FeaturedPlaylists:
		return "FEATURED PLAYLISTS"
	case Categories:
		return "BROWSE"
	case SearchResults:
		return "SEARCH RESULTS"
	default:
		return ""
	}
}

// ElementID is the stable identifier of the section's row container.
func (k SectionKind) ElementID() string {
	switch k {
	case NewReleases:
		return "released"
	case FeaturedPlaylists:
		return "featured"
	case Categories:
		return "browse"
	case SearchResults:
		return "search"
	default:
		return ""
	}
}

// ImageKey is the gallery the presentation layer reads item images from.
func (k SectionKind) ImageKey() ImageKey {
	if k == Categories {
		return IconsKey
	}
	return ImagesKey
}

// Section is one catalog collection and its fetch state.
//
// A Failed section never carries items. QueryKey is only set for [SearchResults].
type Section struct {
	Kind     SectionKind   `json:"kind"`
	Status   Status        `json:"status"`
	Items    []CatalogItem `json:"items"`
	QueryKey string        `json:"query_key,omitempty"`
	Err      error         `json:"-"`
}

// Diagnostic returns the attached error message, or "".
func (s Section) Diagnostic() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Snapshot is the read-only view handed to the presentation layer.
//
// SearchResults is nil unless the search section is currently exposed.
// Item slices are shared between snapshots and must not be modified.
type Snapshot struct {
	Version           uint64           `json:"version"`
	Credential        CredentialStatus `json:"-"`
	NewReleases       Section          `json:"new_releases"`
	FeaturedPlaylists Section          `json:"featured_playlists"`
	Categories        Section          `json:"categories"`
	SearchResults     *Section         `json:"search_results,omitempty"`
}

// Sections returns the exposed sections in display order, search results first when present.
func (s Snapshot) Sections() []Section {
	out := make([]Section, 0, 4)
	if s.SearchResults != nil {
		out = append(out, *s.SearchResults)
	}
	return append(out, s.NewReleases, s.FeaturedPlaylists, s.Categories)
}

// Section returns the section of the given kind and whether it is exposed.
func (s Snapshot) Section(kind SectionKind) (Section, bool) {
	switch kind {
	case NewReleases:
		return s.NewReleases, true
	case FeaturedPlaylists:
		return s.FeaturedPlaylists, true
	case Categories:
		return s.Categories, true
	case SearchResults:
		if s.SearchResults == nil {
			return Section{Kind: SearchResults}, false
		}
		return *s.SearchResults, true
	default:
		return Section{}, false
	}
}
