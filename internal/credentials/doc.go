// Package credentials acquires and holds the single access token every catalog call needs.
//
// # Provider
//
// [Provider] starts Pending and moves exactly once to Ready or Failed. [Provider.Acquire] performs
// one round trip through an [Authenticator]; calling it again is a no-op. Subscribers registered
// with [Provider.Subscribe] are told about that single transition.
//
// The token is never refreshed and a failed acquisition is never retried.
//
// # Spotify
//
// [SpotifyAuthenticator] uses the client_credentials grant from [clientcredentials] with the
// client id and secret sent in the form body.
package credentials
