// Package services implements the [Fetcher] interface for the Spotify Web API.
//
// # Catalog Client
//
// [CatalogClient] performs the four read-only catalog calls:
//   - GET /browse/new-releases : items under albums.items
//   - GET /browse/featured-playlists : items under playlists.items
//   - GET /browse/categories : items under categories.items, artwork under icons
//   - GET /search?q=<term>&type=artist : items under artists.items
//
// Each request carries "Authorization: Bearer <token>". The token is obtained elsewhere
// (see the credentials package) and passed per call; the client never refreshes it.
//
// Requests are paced by a [rate.Limiter] when requests_per_second is set. There is no retry:
// every call is a single attempt.
//
// # Error Handling
//
// Services use typed errors from the shared and models packages:
//   - [shared.ErrNotAuthenticated] : empty token
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [models.MalformedResponseError] : body is not JSON or lacks the collection's items array
//
// # API Mappings
//
// Every section is decoded into [models.CatalogItem] through a per-section endpoint entry
// naming the path, the collection field and the [models.ImageKey] holding artwork.
package services
