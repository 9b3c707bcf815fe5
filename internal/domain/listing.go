package domain

// Agent is the contact person shown on a listing.
type Agent struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// PropertyListing is one real-estate unit, for sale or for rent.
// Values are produced by the normalizer; the never-absent fields (IsForRent,
// Price, Area and the four string slices) are always populated there.
type PropertyListing struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	City         *string  `json:"city,omitempty"`
	Type         string   `json:"type"`
	Price        float64  `json:"price"`
	IsForRent    bool     `json:"isForRent"`
	Area         float64  `json:"area"`
	Bedrooms     *float64 `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	PropertyCode *string  `json:"propertyCode,omitempty"`
	Features     []string `json:"features"`
	Utilities    []string `json:"utilities"`
	Documents    []string `json:"documents"`
	Images       []string `json:"images"`
	Image        *string  `json:"image,omitempty"`
	Agent        *Agent   `json:"agent,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Zoning       *string  `json:"zoning,omitempty"`
	VideoURL     *string  `json:"videoUrl,omitempty"`
	CreatedAt    *string  `json:"createdAt,omitempty"`
	UpdatedAt    *string  `json:"updatedAt,omitempty"`
}

// TransactionLabel is the Spanish label used by the site for the listing's transaction.
func (l PropertyListing) TransactionLabel() string {
	if l.IsForRent {
		return "Arriendo"
	}
	return "Venta"
}

// StringValue dereferences an optional string field.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NumberValue dereferences an optional numeric field; absent counts as 0.
func NumberValue(n *float64) float64 {
	if n == nil {
		return 0
	}
	return *n
}
