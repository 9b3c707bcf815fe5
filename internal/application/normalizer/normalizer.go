// Package normalizer turns the payloads returned by the estates API (plain
// arrays, wrapped arrays, Firebase-style keyed maps) into PropertyListing values
// with every required field populated.
package normalizer

import (
	"encoding/json"
	"fmt"

	"estates-backend/internal/domain"

	"github.com/tidwall/gjson"
)

// wrapperKeys are checked in this order; the first truthy one wins.
var wrapperKeys = []string{"documents", "estates", "items", "data"}

type candidate struct {
	id    string
	keyed bool
	body  gjson.Result
}

// shapeMatcher reports whether root has its shape and, if so, the raw records it holds.
type shapeMatcher func(root gjson.Result) ([]candidate, bool)

var shapes = []shapeMatcher{matchArray, matchWrapped, matchKeyedMap}

// Normalize converts a raw JSON payload into listings in document order.
// It never fails: invalid JSON or an unknown shape yields an empty slice.
func Normalize(payload []byte) []domain.PropertyListing {
	if !gjson.ValidBytes(payload) {
		return []domain.PropertyListing{}
	}
	root := gjson.ParseBytes(payload)
	for _, match := range shapes {
		if cands, ok := match(root); ok {
			out := make([]domain.PropertyListing, 0, len(cands))
			for _, c := range cands {
				out = append(out, fromCandidate(c))
			}
			return out
		}
	}
	return []domain.PropertyListing{}
}

// NormalizeOne converts a single-record payload such as GET /estates/{id}.
// A record nested under "data" is unwrapped. The body's id wins; fallbackID
// is used when the body has none. A body with neither id nor title is not a
// listing.
func NormalizeOne(payload []byte, fallbackID string) (domain.PropertyListing, bool) {
	root, ok := record(payload)
	if !ok {
		return domain.PropertyListing{}, false
	}
	id := bodyID(root)
	if id == "" && !root.Get("title").Exists() {
		return domain.PropertyListing{}, false
	}
	if id == "" {
		id = fallbackID
	}
	return fromCandidate(candidate{id: id, keyed: true, body: root}), true
}

func bodyID(b gjson.Result) string {
	if v := b.Get("id"); v.Type == gjson.String || v.Type == gjson.Number {
		return v.String()
	}
	return ""
}

// Unwrap returns the single record object carried by payload, if any.
func Unwrap(payload []byte) ([]byte, bool) {
	root, ok := record(payload)
	if !ok {
		return nil, false
	}
	return []byte(root.Raw), true
}

func record(payload []byte) (gjson.Result, bool) {
	if !gjson.ValidBytes(payload) {
		return gjson.Result{}, false
	}
	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return gjson.Result{}, false
	}
	if inner := root.Get("data"); inner.IsObject() && !root.Get("id").Exists() {
		root = inner
	}
	return root, true
}

// Merge applies an edit to prev: keys present in patch override, everything
// else is kept. ID always comes from prev, and so does CreatedAt when prev has one.
func Merge(prev domain.PropertyListing, patch []byte) domain.PropertyListing {
	base, err := json.Marshal(prev)
	if err != nil {
		return prev
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return prev
	}
	var overrides map[string]json.RawMessage
	if err := json.Unmarshal(patch, &overrides); err == nil {
		for k, v := range overrides {
			fields[k] = v
		}
	}
	fields["id"], _ = json.Marshal(prev.ID)
	if prev.CreatedAt != nil {
		fields["createdAt"], _ = json.Marshal(*prev.CreatedAt)
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return prev
	}
	return fromCandidate(candidate{id: prev.ID, keyed: true, body: gjson.ParseBytes(merged)})
}

// Placeholder is the record synthesized for a keyed entry whose body is not an object.
func Placeholder(id string) domain.PropertyListing {
	return domain.PropertyListing{
		ID:        id,
		Title:     placeholderTitle(id),
		Location:  "Desconocida",
		Type:      "Desconocido",
		Features:  []string{},
		Utilities: []string{},
		Documents: []string{},
		Images:    []string{},
	}
}

func matchArray(root gjson.Result) ([]candidate, bool) {
	if !root.IsArray() {
		return nil, false
	}
	return arrayEntries(root), true
}

func matchWrapped(root gjson.Result) ([]candidate, bool) {
	if !root.IsObject() {
		return nil, false
	}
	for _, key := range wrapperKeys {
		v := root.Get(key)
		if !truthy(v) {
			continue
		}
		switch {
		case v.IsArray():
			return arrayEntries(v), true
		case v.IsObject():
			return keyedEntries(v), true
		default:
			return []candidate{}, true
		}
	}
	return nil, false
}

func matchKeyedMap(root gjson.Result) ([]candidate, bool) {
	if !root.IsObject() {
		return nil, false
	}
	return keyedEntries(root), true
}

func arrayEntries(arr gjson.Result) []candidate {
	out := []candidate{}
	arr.ForEach(func(_, value gjson.Result) bool {
		if value.IsObject() {
			out = append(out, candidate{body: value})
		}
		return true
	})
	return out
}

func keyedEntries(obj gjson.Result) []candidate {
	out := []candidate{}
	obj.ForEach(func(key, value gjson.Result) bool {
		out = append(out, candidate{id: key.String(), keyed: true, body: value})
		return true
	})
	return out
}

// truthy mirrors how the payload's producers test wrapper keys: null, false,
// 0 and "" do not count as present.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	}
	return v.Exists()
}

func fromCandidate(c candidate) domain.PropertyListing {
	if c.keyed && !c.body.IsObject() {
		return Placeholder(c.id)
	}
	b := c.body
	id := c.id
	if !c.keyed {
		id = bodyID(b)
	}

	l := domain.PropertyListing{
		ID:           id,
		Title:        placeholderTitle(id),
		Location:     str(b.Get("location")),
		City:         optString(b.Get("city")),
		Type:         str(b.Get("type")),
		Price:        amount(b.Get("price")),
		IsForRent:    b.Get("isForRent").Type == gjson.True,
		Area:         amount(b.Get("area")),
		Bedrooms:     optNumber(b.Get("bedrooms")),
		Bathrooms:    optNumber(b.Get("bathrooms")),
		PropertyCode: optString(b.Get("propertyCode")),
		Features:     stringList(b.Get("features")),
		Utilities:    stringList(b.Get("utilities")),
		Documents:    stringList(b.Get("documents")),
		Images:       stringList(b.Get("images")),
		Image:        optString(b.Get("image")),
		Description:  optString(b.Get("description")),
		Zoning:       optString(b.Get("zoning")),
		VideoURL:     optString(b.Get("videoUrl")),
		CreatedAt:    optString(b.Get("createdAt")),
		UpdatedAt:    optString(b.Get("updatedAt")),
	}
	if t := b.Get("title"); t.Type == gjson.String {
		l.Title = t.Str
	}
	if a := b.Get("agent"); a.IsObject() {
		l.Agent = &domain.Agent{
			Name:  str(a.Get("name")),
			Phone: str(a.Get("phone")),
			Email: str(a.Get("email")),
		}
	}
	return l
}

func placeholderTitle(id string) string {
	return fmt.Sprintf("Propiedad %s", id)
}

func str(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return ""
}

func optString(v gjson.Result) *string {
	if v.Type != gjson.String {
		return nil
	}
	s := v.Str
	return &s
}

func optNumber(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	n := v.Num
	return &n
}

// amount is a non-negative number with 0 for anything else.
func amount(v gjson.Result) float64 {
	if v.Type != gjson.Number || v.Num < 0 {
		return 0
	}
	return v.Num
}

func stringList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, e := range v.Array() {
		if e.Type == gjson.String {
			out = append(out, e.Str)
		}
	}
	return out
}
