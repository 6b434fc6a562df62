// Package catalog implements the orchestrator that turns one credential and one search term into four catalog sections.
//
// # Fan-out
//
// [Orchestrator] subscribes to a [CredentialSource]. On the first Ready notification it marks the three
// base sections Loading and fetches them concurrently, one goroutine each. Every branch commits its own
// result; a failure marks only that section Failed. Further Ready notifications are ignored. A Failed
// credential marks all three base sections Failed with a [models.CredentialAcquisitionError] and nothing
// is fetched.
//
// # Search
//
// The orchestrator also subscribes to a [TermSource]. A search is issued when the credential is Ready,
// the current term is non-empty and differs from the last searched term. The searched term is recorded
// before the request starts, together with a generation number; a response whose generation is no
// longer current is discarded, so the newest term always wins.
//
// Search results are kept when the term is cleared but are only exposed in a [models.Snapshot] while
// the term is non-empty. Typing the same term again re-exposes them without a request.
//
// # Snapshots
//
// Every state change bumps [models.Snapshot.Version] and is delivered to subscribers in version order.
// [Watch] adapts the callback API to a channel that always holds the latest snapshot.
package catalog
