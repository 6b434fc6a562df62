package credentials

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/discover/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTokenURL is the Spotify accounts token endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

// Authenticator exchanges statically configured client credentials for a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context) (string, error)
}

// SpotifyAuthenticator implements [Authenticator] with the client_credentials grant.
type SpotifyAuthenticator struct {
	config     *clientcredentials.Config
	httpClient *http.Client
}

// NewSpotifyAuthenticator creates an authenticator for the given client credentials.
//
// tokenURL defaults to [DefaultTokenURL] and client to [http.DefaultClient].
func NewSpotifyAuthenticator(clientID, clientSecret, tokenURL string, client *http.Client) (*SpotifyAuthenticator, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &SpotifyAuthenticator{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			// Credentials go in the form body; auto-detection would spend a second round trip.
			AuthStyle: oauth2.AuthStyleInParams,
		},
		httpClient: client,
	}, nil
}

// Authenticate performs a single POST to the token endpoint and returns the access token.
//
// Non-2xx responses surface as [*oauth2.RetrieveError].
func (a *SpotifyAuthenticator) Authenticate(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	token, err := a.config.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	return token.AccessToken, nil
}
