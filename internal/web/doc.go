// Package web serves the catalog as a single server-rendered page.
//
// # Routes
//
//	GET  /          → catalog page; ?q=term replaces the search term before rendering
//	GET  /snapshot  → current snapshot as JSON
//	POST /search    → form field q replaces the search term, then 303 to /
//
// # Page
//
// One <section> per exposed catalog section, in display order, each with the section's element id
// ("search", "released", "featured", "browse"). Only items with an image are listed.
// While any section is Loading the page reloads itself every [RefreshSeconds].
//
// Every visitor shares one search term; the server is meant as a local preview.
package web
