package estates

import (
	"estates-backend/internal/domain"

	"github.com/gosimple/slug"
)

// View is a listing as returned by the HTTP API: the normalized record plus
// a URL slug for the detail page.
type View struct {
	domain.PropertyListing
	Slug string `json:"slug"`
}

func NewView(l domain.PropertyListing) View {
	return View{PropertyListing: l, Slug: Slug(l)}
}

func NewViews(ls []domain.PropertyListing) []View {
	out := make([]View, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewView(l))
	}
	return out
}

// Slug is "<title>-<id>", lower-cased and transliterated.
func Slug(l domain.PropertyListing) string {
	return slug.Make(l.Title + " " + l.ID)
}
