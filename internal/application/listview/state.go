// Package listview holds the list screen state (loaded listings, active
// filter, current page) as an immutable value updated by a pure reducer.
package listview

import (
	"estates-backend/internal/application/filters"
	"estates-backend/internal/application/normalizer"
	"estates-backend/internal/application/pagination"
	"estates-backend/internal/domain"
)

// State is never modified in place; Reduce returns a new value.
type State struct {
	All      []domain.PropertyListing
	Filter   filters.Spec
	Filtered []domain.PropertyListing
	Page     int
	PageSize int
}

// Stats are the counters shown on the admin dashboard.
type Stats struct {
	Total   int `json:"total"`
	ForRent int `json:"forRent"`
	ForSale int `json:"forSale"`
}

// New returns the state for a freshly loaded collection.
func New(all []domain.PropertyListing, pageSize int) State {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return Reduce(State{PageSize: pageSize}, Load{Listings: all})
}

// Action is a state transition.
type Action interface {
	reduce(State) State
}

// Reduce applies a to s.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.reduce(s)
}

// Load replaces the collection and returns to the first page.
type Load struct{ Listings []domain.PropertyListing }

// ApplyFilter replaces the active filter and returns to the first page.
type ApplyFilter struct{ Spec filters.Spec }

// ApplyMatches sets the filter together with matches computed elsewhere
// (the estates API) and returns to the first page.
type ApplyMatches struct {
	Spec    filters.Spec
	Matches []domain.PropertyListing
}

// ResetFilter clears the filter and returns to the first page.
type ResetFilter struct{}

// GoToPage moves to Page, clamped to the available pages.
type GoToPage struct{ Page int }

// SetPageSize changes the page size; the current page is re-clamped.
type SetPageSize struct{ Size int }

// Add appends a newly created listing.
type Add struct{ Listing domain.PropertyListing }

// Update merges Patch (raw JSON) over the listing with ID.
type Update struct {
	ID    string
	Patch []byte
}

// Replace swaps the listing with the same ID for Listing.
type Replace struct{ Listing domain.PropertyListing }

// Remove drops the listing with ID.
type Remove struct{ ID string }

func (a Load) reduce(s State) State {
	s.All = clone(a.Listings)
	return refilter(s, 1)
}

func (a ApplyFilter) reduce(s State) State {
	s.Filter = a.Spec
	return refilter(s, 1)
}

func (a ApplyMatches) reduce(s State) State {
	s.Filter = a.Spec
	s.Filtered = clone(a.Matches)
	s.Page = pagination.Clamp(1, s.TotalPages())
	return s
}

func (ResetFilter) reduce(s State) State {
	s.Filter = filters.Spec{}
	return refilter(s, 1)
}

func (a GoToPage) reduce(s State) State {
	s.Page = pagination.Clamp(a.Page, s.TotalPages())
	return s
}

func (a SetPageSize) reduce(s State) State {
	if a.Size <= 0 {
		return s
	}
	s.PageSize = a.Size
	s.Page = pagination.Clamp(s.Page, s.TotalPages())
	return s
}

func (a Add) reduce(s State) State {
	all := make([]domain.PropertyListing, 0, len(s.All)+1)
	all = append(all, s.All...)
	s.All = append(all, a.Listing)
	return refilter(s, s.Page)
}

func (a Update) reduce(s State) State {
	all := clone(s.All)
	for i, l := range all {
		if l.ID == a.ID {
			all[i] = normalizer.Merge(l, a.Patch)
		}
	}
	s.All = all
	return refilter(s, s.Page)
}

func (a Replace) reduce(s State) State {
	all := clone(s.All)
	for i, l := range all {
		if l.ID == a.Listing.ID {
			all[i] = a.Listing
		}
	}
	s.All = all
	return refilter(s, s.Page)
}

func (a Remove) reduce(s State) State {
	all := make([]domain.PropertyListing, 0, len(s.All))
	for _, l := range s.All {
		if l.ID != a.ID {
			all = append(all, l)
		}
	}
	s.All = all
	return refilter(s, s.Page)
}

func refilter(s State, page int) State {
	s.Filtered = filters.Apply(s.All, s.Filter)
	s.Page = pagination.Clamp(page, s.TotalPages())
	return s
}

func clone(in []domain.PropertyListing) []domain.PropertyListing {
	out := make([]domain.PropertyListing, len(in))
	copy(out, in)
	return out
}

// TotalPages is the page count of the filtered set.
func (s State) TotalPages() int {
	return pagination.TotalPages(len(s.Filtered), s.PageSize)
}

// Visible returns the current page of the filtered set.
func (s State) Visible() pagination.Page[domain.PropertyListing] {
	return pagination.Paginate(s.Filtered, s.Page, s.PageSize)
}

// Links returns the page control for the current page.
func (s State) Links() []pagination.Link {
	return pagination.PageLinks(s.Page, s.TotalPages())
}

// IsFiltered reports whether the filter hides any listing.
func (s State) IsFiltered() bool {
	return len(s.Filtered) != len(s.All)
}

// Find looks a listing up by id in the full collection.
func (s State) Find(id string) (domain.PropertyListing, bool) {
	for _, l := range s.All {
		if l.ID == id {
			return l, true
		}
	}
	return domain.PropertyListing{}, false
}

// Stats counts the full collection.
func (s State) Stats() Stats {
	st := Stats{Total: len(s.All)}
	for _, l := range s.All {
		if l.IsForRent {
			st.ForRent++
		} else {
			st.ForSale++
		}
	}
	return st
}
