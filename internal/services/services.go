// package services defines interface Fetcher for reading catalog sections over HTTP
//
// Spotify Web API
package services

import (
	"context"

	"github.com/desertthunder/discover/internal/models"
)

// Fetcher retrieves one catalog section with a bearer token.
//
// term is only used for [models.SearchResults] and is ignored otherwise.
// Items are returned in response order, including items without images.
type Fetcher interface {
	Fetch(ctx context.Context, kind models.SectionKind, token, term string) ([]models.CatalogItem, error)
}
