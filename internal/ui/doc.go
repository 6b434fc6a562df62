// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has a single screen:
//   - a search box (bubbles/textinput) that writes every edit to the shared search term
//   - a tab row with one tab per exposed catalog section and its status
//   - a list (bubbles/list) of the focused section's items, or a placeholder while it is loading or failed
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Snapshots flow through a channel from the catalog orchestrator (see catalog.Watch); the model never calls the orchestrator directly.
//
// Keyboard navigation: "/" focuses the search box, esc or enter leaves it, tab/shift+tab switch sections,
// j/k move within the list and q quits, with contextual help displayed via charmbracelet/bubbles/help.
package ui
