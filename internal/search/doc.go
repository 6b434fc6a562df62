// Package search holds the session-scoped search term shared between the search box and the catalog orchestrator.
//
// A [State] is an explicit, injectable cell: the producer calls [State.SetTerm], consumers read [State.Term]
// and register with [State.Subscribe]. There is no package-level instance.
package search
