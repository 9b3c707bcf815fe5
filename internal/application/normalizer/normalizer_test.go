package normalizer

import (
	"encoding/json"
	"testing"

	"estates-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string    { return &s }
func numPtr(n float64) *float64 { return &n }

func wellFormed() []domain.PropertyListing {
	return []domain.PropertyListing{
		{
			ID:           "lote-1",
			Title:        "Lote campestre",
			Location:     "Vereda El Salitre, Medellín",
			City:         strPtr("Medellín"),
			Type:         "Residencial",
			Price:        250000000,
			IsForRent:    false,
			Area:         1200,
			Bedrooms:     numPtr(3),
			Bathrooms:    numPtr(2),
			PropertyCode: strPtr("PROP001"),
			Features:     []string{"Terraza", "Jardín"},
			Utilities:    []string{"Agua"},
			Documents:    []string{"Escritura"},
			Images:       []string{"/img/1.jpg"},
			Agent:        &domain.Agent{Name: "Ana", Phone: "3001234567", Email: "ana@example.com"},
			Description:  strPtr("Amplio lote"),
			CreatedAt:    strPtr("2024-01-02T10:00:00Z"),
		},
		{
			ID:        "local-2",
			Title:     "Local comercial",
			Location:  "Calle 1, Bogotá D.C.",
			Type:      "Comercial",
			Price:     4500000,
			IsForRent: true,
			Area:      80,
			Features:  []string{},
			Utilities: []string{},
			Documents: []string{},
			Images:    []string{},
		},
	}
}

func TestNormalize_ArrayIdempotent(t *testing.T) {
	in := wellFormed()
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	out := Normalize(raw)
	assert.Equal(t, in, out)

	again, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, out, Normalize(again))
}

func TestNormalize_WrapperShapesAreEquivalent(t *testing.T) {
	payloads := map[string]string{
		"documents": `{"documents":[{"id":"a","title":"X","price":100,"isForRent":true},{"id":"b","title":"Y"}]}`,
		"estates":   `{"estates":[{"id":"a","title":"X","price":100,"isForRent":true},{"id":"b","title":"Y"}]}`,
		"items map": `{"items":{"a":{"title":"X","price":100,"isForRent":true},"b":{"title":"Y"}}}`,
		"bare map":  `{"a":{"title":"X","price":100,"isForRent":true},"b":{"title":"Y"}}`,
		"data":      `{"data":[{"id":"a","title":"X","price":100,"isForRent":true},{"id":"b","title":"Y"}]}`,
	}
	want := Normalize([]byte(payloads["documents"]))
	require.Len(t, want, 2)
	for name, p := range payloads {
		assert.Equal(t, want, Normalize([]byte(p)), name)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	out := Normalize([]byte(`[{"id":"x","title":"Sin datos","isForRent":"yes","features":"pool","price":"100","area":null}]`))
	require.Len(t, out, 1)
	l := out[0]
	assert.False(t, l.IsForRent)
	assert.Equal(t, []string{}, l.Features)
	assert.Equal(t, []string{}, l.Utilities)
	assert.Equal(t, []string{}, l.Documents)
	assert.Equal(t, []string{}, l.Images)
	assert.Equal(t, 0.0, l.Price)
	assert.Equal(t, 0.0, l.Area)
	assert.Nil(t, l.Bedrooms)
	assert.Nil(t, l.Agent)
}

func TestNormalize_MissingTitleGetsPlaceholder(t *testing.T) {
	out := Normalize([]byte(`{"k1":{"price":5}}`))
	require.Len(t, out, 1)
	assert.Equal(t, "Propiedad k1", out[0].Title)
	assert.Equal(t, 5.0, out[0].Price)
}

func TestNormalize_KeyedMapNonObjectBecomesPlaceholder(t *testing.T) {
	out := Normalize([]byte(`{"p1":"basura","p2":{"title":"Real"}}`))
	require.Len(t, out, 2)
	assert.Equal(t, Placeholder("p1"), out[0])
	assert.Equal(t, "Desconocida", out[0].Location)
	assert.Equal(t, "Desconocido", out[0].Type)
	assert.Equal(t, "p2", out[1].ID)
}

func TestNormalize_KeyWinsOverBodyID(t *testing.T) {
	out := Normalize([]byte(`{"estates":{"key-1":{"id":"body-id","title":"T"}}}`))
	require.Len(t, out, 1)
	assert.Equal(t, "key-1", out[0].ID)
}

func TestNormalize_PreservesDocumentOrder(t *testing.T) {
	out := Normalize([]byte(`{"z":{"title":"1"},"a":{"title":"2"},"m":{"title":"3"}}`))
	require.Len(t, out, 3)
	assert.Equal(t, "z", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, "m", out[2].ID)
}

func TestNormalize_WrapperPriorityAndFalsyValues(t *testing.T) {
	// documents is null so estates is used.
	out := Normalize([]byte(`{"documents":null,"estates":[{"id":"e1"}],"data":[{"id":"d1"}]}`))
	require.Len(t, out, 1)
	assert.Equal(t, "e1", out[0].ID)

	// wrapper holding a scalar yields nothing.
	assert.Empty(t, Normalize([]byte(`{"items":"oops"}`)))
}

func TestNormalize_MalformedInputs(t *testing.T) {
	for _, in := range []string{``, `not json`, `42`, `"text"`, `null`, `true`, `[]`, `{}`} {
		out := Normalize([]byte(in))
		assert.NotNil(t, out, in)
		assert.Empty(t, out, in)
	}
}

func TestNormalize_ArraySkipsNonObjects(t *testing.T) {
	out := Normalize([]byte(`[1,"x",{"id":"ok"},null]`))
	require.Len(t, out, 1)
	assert.Equal(t, "ok", out[0].ID)
}

func TestNormalize_NegativeAmountsClamp(t *testing.T) {
	out := Normalize([]byte(`[{"id":"n","price":-10,"area":-1}]`))
	require.Len(t, out, 1)
	assert.Equal(t, 0.0, out[0].Price)
	assert.Equal(t, 0.0, out[0].Area)
}

func TestNormalize_EndToEndScenario(t *testing.T) {
	out := Normalize([]byte(`{"estates":{"a":{"title":"X","price":100,"isForRent":true},"b":{"title":"Y"}}}`))
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	b := out[1]
	assert.Equal(t, 0.0, b.Price)
	assert.Equal(t, 0.0, b.Area)
	assert.False(t, b.IsForRent)
	assert.Equal(t, []string{}, b.Features)
}

func TestNormalizeOne(t *testing.T) {
	l, ok := NormalizeOne([]byte(`{"id":"7","title":"Casa","price":10}`), "other")
	require.True(t, ok)
	assert.Equal(t, "7", l.ID)

	l, ok = NormalizeOne([]byte(`{"data":{"id":"8","title":"Apto"}}`), "")
	require.True(t, ok)
	assert.Equal(t, "8", l.ID)
	assert.Equal(t, "Apto", l.Title)

	_, ok = NormalizeOne([]byte(`[1,2]`), "x")
	assert.False(t, ok)
}

func TestNormalizeOne_BodyWithoutID(t *testing.T) {
	l, ok := NormalizeOne([]byte(`{"title":"Casa Uno","price":5}`), "a")
	require.True(t, ok)
	assert.Equal(t, "a", l.ID)
	assert.Equal(t, "Casa Uno", l.Title)
	assert.Equal(t, 5.0, l.Price)

	l, ok = NormalizeOne([]byte(`{"data":{"title":"Apto"}}`), "b")
	require.True(t, ok)
	assert.Equal(t, "b", l.ID)

	for _, in := range []string{`{}`, `{"message":"ok"}`, `{"data":{}}`} {
		_, ok = NormalizeOne([]byte(in), "a")
		assert.False(t, ok, in)
	}
}

func TestNormalize_NumericIDIsStringified(t *testing.T) {
	out := Normalize([]byte(`[{"id":12,"title":"N"}]`))
	require.Len(t, out, 1)
	assert.Equal(t, "12", out[0].ID)
}

func TestMerge(t *testing.T) {
	prev := wellFormed()[0]
	merged := Merge(prev, []byte(`{"id":"other","title":"Nuevo","price":300000000,"createdAt":"2030-01-01","features":["Piscina"]}`))

	assert.Equal(t, prev.ID, merged.ID)
	assert.Equal(t, prev.CreatedAt, merged.CreatedAt)
	assert.Equal(t, "Nuevo", merged.Title)
	assert.Equal(t, 300000000.0, merged.Price)
	assert.Equal(t, []string{"Piscina"}, merged.Features)
	assert.Equal(t, prev.Location, merged.Location)
	assert.Equal(t, prev.Agent, merged.Agent)
	assert.Equal(t, "Lote campestre", prev.Title, "prev must not be mutated")
}

func TestMerge_InvalidPatchKeepsPrev(t *testing.T) {
	prev := wellFormed()[1]
	assert.Equal(t, prev, Merge(prev, []byte(`nope`)))
}

func TestUnwrap(t *testing.T) {
	rec, ok := Unwrap([]byte(`{"data":{"id":"9","title":"T"}}`))
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"9","title":"T"}`, string(rec))

	rec, ok = Unwrap([]byte(`{"id":"9","data":{"x":1}}`))
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"9","data":{"x":1}}`, string(rec))

	_, ok = Unwrap([]byte(``))
	assert.False(t, ok)
}
