// Package filters evaluates a search Spec against normalized listings.
package filters

import (
	"strings"

	"estates-backend/internal/domain"
)

type predicate func(domain.PropertyListing) bool

// Filter is a compiled Spec. The zero value matches everything.
type Filter struct {
	preds []predicate
}

// Compile turns s into a Filter holding one predicate per active field.
func Compile(s Spec) Filter {
	var f Filter
	add := func(p predicate) { f.preds = append(f.preds, p) }

	switch strings.TrimSpace(s.TransactionType) {
	case TransactionRent:
		add(func(l domain.PropertyListing) bool { return l.IsForRent })
	case TransactionBuy:
		add(func(l domain.PropertyListing) bool { return !l.IsForRent })
	}

	if city := Fold(s.City); city != "" {
		add(func(l domain.PropertyListing) bool {
			if l.City != nil && strings.Contains(Fold(*l.City), city) {
				return true
			}
			return strings.Contains(Fold(l.Location), city)
		})
	}

	if pt := strings.TrimSpace(s.PropertyType); pt != "" {
		add(func(l domain.PropertyListing) bool { return l.Type == pt })
	}

	if code := strings.ToLower(strings.TrimSpace(s.PropertyCode)); code != "" {
		add(func(l domain.PropertyListing) bool {
			return l.PropertyCode != nil && strings.Contains(strings.ToLower(*l.PropertyCode), code)
		})
	}

	area := func(l domain.PropertyListing) float64 { return l.Area }
	price := func(l domain.PropertyListing) float64 { return l.Price }
	bedrooms := func(l domain.PropertyListing) float64 { return domain.NumberValue(l.Bedrooms) }
	bathrooms := func(l domain.PropertyListing) float64 { return domain.NumberValue(l.Bathrooms) }

	rangeOn(add, area, s.MinArea, s.MaxArea)
	rangeOn(add, price, s.MinPrice, s.MaxPrice)
	exactOn(add, bedrooms, s.Bedrooms)
	rangeOn(add, bedrooms, s.MinBedrooms, s.MaxBedrooms)
	exactOn(add, bathrooms, s.Bathrooms)
	rangeOn(add, bathrooms, s.MinBathrooms, s.MaxBathrooms)

	return f
}

func rangeOn(add func(predicate), field func(domain.PropertyListing) float64, lower, upper string) {
	if lo, ok := parseNumber(lower); ok {
		add(func(l domain.PropertyListing) bool { return field(l) >= lo })
	}
	if hi, ok := parseNumber(upper); ok {
		add(func(l domain.PropertyListing) bool { return field(l) <= hi })
	}
}

func exactOn(add func(predicate), field func(domain.PropertyListing) float64, want string) {
	if n, ok := parseNumber(want); ok {
		add(func(l domain.PropertyListing) bool { return field(l) == n })
	}
}

// Active reports whether the filter constrains anything.
func (f Filter) Active() bool {
	return len(f.preds) > 0
}

// Match reports whether l satisfies every active criterion.
func (f Filter) Match(l domain.PropertyListing) bool {
	for _, p := range f.preds {
		if !p(l) {
			return false
		}
	}
	return true
}

// Apply returns the listings that match, in input order. The input is not modified.
func (f Filter) Apply(listings []domain.PropertyListing) []domain.PropertyListing {
	out := make([]domain.PropertyListing, 0, len(listings))
	for _, l := range listings {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

// Apply compiles s and filters listings with it.
func Apply(listings []domain.PropertyListing, s Spec) []domain.PropertyListing {
	return Compile(s).Apply(listings)
}

// Match compiles s and checks a single listing.
func Match(l domain.PropertyListing, s Spec) bool {
	return Compile(s).Match(l)
}
