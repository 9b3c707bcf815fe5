package filters

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Transaction types accepted by Spec.TransactionType.
const (
	TransactionBuy  = "buy"
	TransactionRent = "rent"
)

// Spec is the sparse set of constraints chosen in the search form. Values stay
// as strings the way the form and query string carry them; an empty value
// means no constraint on that dimension.
type Spec struct {
	TransactionType string `json:"transactionType,omitempty" query:"transactionType"`
	City            string `json:"city,omitempty" query:"city"`
	PropertyType    string `json:"propertyType,omitempty" query:"propertyType"`
	PropertyCode    string `json:"propertyCode,omitempty" query:"propertyCode"`
	MinArea         string `json:"minArea,omitempty" query:"minArea"`
	MaxArea         string `json:"maxArea,omitempty" query:"maxArea"`
	MinPrice        string `json:"minPrice,omitempty" query:"minPrice"`
	MaxPrice        string `json:"maxPrice,omitempty" query:"maxPrice"`
	Bedrooms        string `json:"bedrooms,omitempty" query:"bedrooms"`
	MinBedrooms     string `json:"minBedrooms,omitempty" query:"minBedrooms"`
	MaxBedrooms     string `json:"maxBedrooms,omitempty" query:"maxBedrooms"`
	Bathrooms       string `json:"bathrooms,omitempty" query:"bathrooms"`
	MinBathrooms    string `json:"minBathrooms,omitempty" query:"minBathrooms"`
	MaxBathrooms    string `json:"maxBathrooms,omitempty" query:"maxBathrooms"`
}

// fields lists the spec in a fixed order with its wire names.
func (s Spec) fields() [][2]string {
	return [][2]string{
		{"transactionType", s.TransactionType},
		{"city", s.City},
		{"propertyType", s.PropertyType},
		{"propertyCode", s.PropertyCode},
		{"minArea", s.MinArea},
		{"maxArea", s.MaxArea},
		{"minPrice", s.MinPrice},
		{"maxPrice", s.MaxPrice},
		{"bedrooms", s.Bedrooms},
		{"minBedrooms", s.MinBedrooms},
		{"maxBedrooms", s.MaxBedrooms},
		{"bathrooms", s.Bathrooms},
		{"minBathrooms", s.MinBathrooms},
		{"maxBathrooms", s.MaxBathrooms},
	}
}

// IsEmpty reports whether no field carries a value.
func (s Spec) IsEmpty() bool {
	for _, f := range s.fields() {
		if strings.TrimSpace(f[1]) != "" {
			return false
		}
	}
	return true
}

// Values encodes every non-empty field as key=value for the remote filter endpoint.
func (s Spec) Values() url.Values {
	v := url.Values{}
	for _, f := range s.fields() {
		if val := strings.TrimSpace(f[1]); val != "" {
			v.Add(f[0], val)
		}
	}
	return v
}

// Merge returns s with every non-empty field of o laid over it.
func (s Spec) Merge(o Spec) Spec {
	pick := func(a, b string) string {
		if strings.TrimSpace(b) != "" {
			return b
		}
		return a
	}
	return Spec{
		TransactionType: pick(s.TransactionType, o.TransactionType),
		City:            pick(s.City, o.City),
		PropertyType:    pick(s.PropertyType, o.PropertyType),
		PropertyCode:    pick(s.PropertyCode, o.PropertyCode),
		MinArea:         pick(s.MinArea, o.MinArea),
		MaxArea:         pick(s.MaxArea, o.MaxArea),
		MinPrice:        pick(s.MinPrice, o.MinPrice),
		MaxPrice:        pick(s.MaxPrice, o.MaxPrice),
		Bedrooms:        pick(s.Bedrooms, o.Bedrooms),
		MinBedrooms:     pick(s.MinBedrooms, o.MinBedrooms),
		MaxBedrooms:     pick(s.MaxBedrooms, o.MaxBedrooms),
		Bathrooms:       pick(s.Bathrooms, o.Bathrooms),
		MinBathrooms:    pick(s.MinBathrooms, o.MinBathrooms),
		MaxBathrooms:    pick(s.MaxBathrooms, o.MaxBathrooms),
	}
}

// parseNumber is lenient: anything that is not a finite number means "no constraint".
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
