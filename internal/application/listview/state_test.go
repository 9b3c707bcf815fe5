package listview

import (
	"fmt"
	"testing"

	"estates-backend/internal/application/filters"
	"estates-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listings(n int) []domain.PropertyListing {
	out := make([]domain.PropertyListing, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.PropertyListing{
			ID:        fmt.Sprintf("e%d", i),
			Title:     fmt.Sprintf("Propiedad %d", i),
			Location:  "Bogotá",
			Price:     float64(i * 100),
			IsForRent: i <= 2,
			Features:  []string{},
			Utilities: []string{},
			Documents: []string{},
			Images:    []string{},
		})
	}
	return out
}

func TestState_PaginationAndFilterReset(t *testing.T) {
	s := New(listings(13), 5)
	assert.Equal(t, 3, s.TotalPages())
	assert.Len(t, s.Visible().Items, 5)

	s = Reduce(s, GoToPage{Page: 3})
	assert.Equal(t, 3, s.Page)
	assert.Len(t, s.Visible().Items, 3)

	s = Reduce(s, ApplyFilter{Spec: filters.Spec{TransactionType: "rent"}})
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 1, s.TotalPages())
	assert.Len(t, s.Filtered, 2)
	assert.True(t, s.IsFiltered())
}

func TestState_IsImmutable(t *testing.T) {
	s0 := New(listings(6), 5)
	s1 := Reduce(s0, GoToPage{Page: 2})
	s2 := Reduce(s1, Remove{ID: "e6"})

	assert.Equal(t, 1, s0.Page)
	assert.Equal(t, 2, s1.Page)
	assert.Len(t, s1.All, 6)
	assert.Len(t, s2.All, 5)
	assert.Equal(t, 1, s2.Page, "page re-clamped after removal")
}

func TestState_ResetFilter(t *testing.T) {
	s := New(listings(8), 5)
	s = Reduce(s, ApplyFilter{Spec: filters.Spec{MinPrice: "700"}})
	require.Len(t, s.Filtered, 2)
	s = Reduce(s, ResetFilter{})
	assert.Len(t, s.Filtered, 8)
	assert.False(t, s.IsFiltered())
}

func TestState_GoToPageClamps(t *testing.T) {
	s := New(listings(8), 5)
	assert.Equal(t, 2, Reduce(s, GoToPage{Page: 10}).Page)
	assert.Equal(t, 1, Reduce(s, GoToPage{Page: 0}).Page)
}

func TestState_SetPageSize(t *testing.T) {
	s := Reduce(New(listings(13), 5), GoToPage{Page: 3})
	s = Reduce(s, SetPageSize{Size: 10})
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, 2, s.TotalPages())
	assert.Equal(t, s, Reduce(s, SetPageSize{Size: 0}))
}

func TestState_AddUpdateRemove(t *testing.T) {
	s := New(listings(2), 5)
	created := domain.PropertyListing{ID: "new", Title: "Nueva", Features: []string{}, Utilities: []string{}, Documents: []string{}, Images: []string{}}
	s = Reduce(s, Add{Listing: created})
	require.Len(t, s.All, 3)
	assert.Equal(t, "new", s.All[2].ID)

	s = Reduce(s, Update{ID: "e1", Patch: []byte(`{"title":"Editada","isForRent":false}`)})
	got, ok := s.Find("e1")
	require.True(t, ok)
	assert.Equal(t, "Editada", got.Title)
	assert.Equal(t, 100.0, got.Price)
	assert.False(t, got.IsForRent)

	replaced := got
	replaced.Title = "Reemplazada"
	s = Reduce(s, Replace{Listing: replaced})
	got, _ = s.Find("e1")
	assert.Equal(t, "Reemplazada", got.Title)

	s = Reduce(s, Remove{ID: "new"})
	_, ok = s.Find("new")
	assert.False(t, ok)
	assert.Len(t, s.All, 2)
}

func TestState_FilterSurvivesEdits(t *testing.T) {
	s := New(listings(4), 5)
	s = Reduce(s, ApplyFilter{Spec: filters.Spec{TransactionType: "rent"}})
	require.Len(t, s.Filtered, 2)
	s = Reduce(s, Update{ID: "e3", Patch: []byte(`{"isForRent":true}`)})
	assert.Len(t, s.Filtered, 3)
}

func TestState_Stats(t *testing.T) {
	st := New(listings(5), 5).Stats()
	assert.Equal(t, Stats{Total: 5, ForRent: 2, ForSale: 3}, st)
}

func TestReduce_NilAction(t *testing.T) {
	s := New(listings(1), 5)
	assert.Equal(t, s, Reduce(s, nil))
}

func TestState_EmptyCollection(t *testing.T) {
	s := New(nil, 0)
	assert.Equal(t, 5, s.PageSize)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 0, s.TotalPages())
	assert.Empty(t, s.Visible().Items)
	assert.Empty(t, s.Links())
}

func TestState_ApplyMatches(t *testing.T) {
	all := listings(13)
	s := New(all, 5)
	s = Reduce(s, GoToPage{Page: 3})
	s = Reduce(s, ApplyMatches{Spec: filters.Spec{City: "Bogotá"}, Matches: all[:2]})
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 1, s.TotalPages())
	assert.Len(t, s.Visible().Items, 2)
	assert.Equal(t, 13, s.Stats().Total)
	assert.True(t, s.IsFiltered())
}
