// package models defines the data model for the catalog views
package models

import "fmt"

// CredentialStatus is the acquisition status of the access credential.
type CredentialStatus int

const (
	CredentialPending CredentialStatus = iota
	CredentialReady
	CredentialFailed
)

func (s CredentialStatus) String() string {
	switch s {
	case CredentialPending:
		return "pending"
	case CredentialReady:
		return "ready"
	case CredentialFailed:
		return "failed"
	default:
		return ""
	}
}

// Status is the fetch lifecycle of a [Section].
//
// NotRequested → Loading → {Loaded | Failed}
type Status int

const (
	NotRequested Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case NotRequested:
		return "not_requested"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// Terminal reports whether s is Loaded or Failed.
func (s Status) Terminal() bool {
	return s == Loaded || s == Failed
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ImageKey names the gallery an item's images are read from.
type ImageKey string

const (
	ImagesKey ImageKey = "images" // default gallery
	IconsKey  ImageKey = "icons"  // browse categories
)

// Image is a single image reference.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// CatalogItem is one displayable entry of a section.
type CatalogItem struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	ImageKey ImageKey `json:"image_key"`
	Images   []Image  `json:"images"`
}

// HasImage reports whether the item has at least one image URL to render.
func (i CatalogItem) HasImage() bool {
	return len(i.Images) > 0 && i.Images[0].URL != ""
}

// CoverURL returns the first image URL, or "" when the item has none.
func (i CatalogItem) CoverURL() string {
	if !i.HasImage() {
		return ""
	}
	return i.Images[0].URL
}

// ItemKey returns the presentation key for the item at index within its section.
func ItemKey(item CatalogItem, index int) string {
	return fmt.Sprintf("%s-%d", item.Name, index)
}

// Renderable returns the items that carry an image, preserving order.
func Renderable(items []CatalogItem) []CatalogItem {
	out := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		if item.HasImage() {
			out = append(out, item)
		}
	}
	return out
}
