package catalog

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a catalog item cannot be resolved.
var ErrNotFound = errors.New("catalog item not found")

// Volume is a catalog item as the volumes API returns it. The catalog does
// not own this data: every descriptive field may be absent and callers go
// through the fallback helpers instead of assuming presence.
type Volume struct {
	ID   string     `json:"id"`
	Info VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo matches the volumeInfo object of a volumes API item.
type VolumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors"`
	Description   string      `json:"description"`
	Publisher     string      `json:"publisher"`
	PublishedDate string      `json:"publishedDate"`
	PageCount     int         `json:"pageCount"`
	Categories    []string    `json:"categories"`
	AverageRating float64     `json:"averageRating"`
	RatingsCount  int         `json:"ratingsCount"`
	ImageLinks    *ImageLinks `json:"imageLinks"`
	PreviewLink   string      `json:"previewLink"`
	InfoLink      string      `json:"infoLink"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
	Large          string `json:"large"`
	ExtraLarge     string `json:"extraLarge"`
}

// SearchResult is one page of a volumes search.
type SearchResult struct {
	Items []Volume
	Total int
}

const fallbackCover = "/static/placeholder-book.svg"

// DisplayTitle falls back when the item carries no title.
func (v VolumeInfo) DisplayTitle() string {
	if v.Title == "" {
		return "Untitled"
	}
	return v.Title
}

// AuthorLine joins the author list, or names the absence.
func (v VolumeInfo) AuthorLine() string {
	if len(v.Authors) == 0 {
		return "Unknown Author"
	}
	return strings.Join(v.Authors, ", ")
}

// CategoryLine joins the category list.
func (v VolumeInfo) CategoryLine() string {
	if len(v.Categories) == 0 {
		return "N/A"
	}
	return strings.Join(v.Categories, ", ")
}

// ThumbnailURL picks the best small cover available.
func (v VolumeInfo) ThumbnailURL() string {
	if v.ImageLinks == nil {
		return fallbackCover
	}
	if v.ImageLinks.Thumbnail != "" {
		return v.ImageLinks.Thumbnail
	}
	if v.ImageLinks.SmallThumbnail != "" {
		return v.ImageLinks.SmallThumbnail
	}
	return fallbackCover
}

// CoverURL picks the best large cover available, falling back to the
// thumbnail chain.
func (v VolumeInfo) CoverURL() string {
	if v.ImageLinks != nil {
		if v.ImageLinks.Large != "" {
			return v.ImageLinks.Large
		}
		if v.ImageLinks.ExtraLarge != "" {
			return v.ImageLinks.ExtraLarge
		}
	}
	return v.ThumbnailURL()
}
