package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	estatessvc "estates-backend/internal/application/estates"
	"estates-backend/internal/infrastructure/estatesapi"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote is a minimal estates REST API.
type fakeRemote struct {
	listStatus int
	list       string
	lastBody   map[string]interface{}
}

func (f *fakeRemote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		f.lastBody = nil
		_ = json.Unmarshal(raw, &f.lastBody)
	}
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/estates":
		if f.listStatus != 0 {
			w.WriteHeader(f.listStatus)
			return
		}
		_, _ = io.WriteString(w, f.list)
	case r.Method == http.MethodPost && r.URL.Path == "/estates":
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"new-1"}`)
	case r.Method == http.MethodGet && r.URL.Path == "/estates/e1":
		_, _ = io.WriteString(w, `{"id":"e1","title":"Casa vieja","location":"Centro","createdAt":"2024-01-01T00:00:00Z"}`)
	case r.Method == http.MethodPut && r.URL.Path == "/estates/e1":
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	case r.Method == http.MethodDelete && r.URL.Path == "/estates/e1":
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"No se pudo eliminar"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
	}
}

func setupApp(t *testing.T, remote *fakeRemote, configured bool) *fiber.App {
	t.Helper()
	base := ""
	if configured {
		srv := httptest.NewServer(remote)
		t.Cleanup(srv.Close)
		base = srv.URL
	}
	h := &Handlers{Service: &estatessvc.Service{API: &estatesapi.HTTPClient{BaseURL: base}}}
	app := fiber.New()
	app.Get("/admin/estates", h.List)
	app.Post("/admin/estates", h.Create)
	app.Put("/admin/estates/:id", h.Update)
	app.Delete("/admin/estates/:id", h.Delete)
	return app
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Casa en Chapinero",
		"city":        "Bogotá",
		"location":    "Calle 60 # 9-20",
		"type":        "Casa",
		"price":       350000000,
		"area":        120,
		"description": "Casa amplia con patio interior",
		"zoning":      "Residencial",
		"bedrooms":    3,
		"bathrooms":   2,
		"videoUrl":    "https://youtube.com/watch?v=abc",
		"agent":       map[string]string{"name": "Laura", "phone": "3001234567", "email": "laura@example.com"},
		"features":    []string{"Patio"},
		"utilities":   []string{"Agua"},
		"documents":   []string{"Escritura"},
		"images":      []string{"/img/1.jpg"},
	}
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type envelope struct {
	Status   string                 `json:"status"`
	Message  string                 `json:"message"`
	Data     map[string]interface{} `json:"data"`
	Metadata map[string]interface{} `json:"metadata"`
	Error    struct {
		Message    string                 `json:"message"`
		StatusCode int                    `json:"statusCode"`
		Details    map[string]interface{} `json:"details"`
	} `json:"error"`
}

func read(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var e envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestList(t *testing.T) {
	remote := &fakeRemote{list: `[{"id":"e1","title":"Casa en Rionegro","city":"Rionegro"},{"id":"e2","title":"Lote","location":"Vía Las Palmas","propertyCode":"PROP-77"}]`}
	app := setupApp(t, remote, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/estates?q=rionegro", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := read(t, resp)
	items := body.Data["estates"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "e1", items[0].(map[string]interface{})["id"])
	assert.NotContains(t, body.Metadata, "warning")
}

func TestList_EmptyWarns(t *testing.T) {
	app := setupApp(t, &fakeRemote{list: `[]`}, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/estates", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, estatessvc.WarnAdminEmpty, read(t, resp).Metadata["warning"])
}

func TestList_UpstreamFailureIsBadGateway(t *testing.T) {
	app := setupApp(t, &fakeRemote{listStatus: http.StatusInternalServerError}, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/estates", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, estatessvc.WarnAdminLoadFailed, read(t, resp).Error.Message)
}

func TestList_NotConfigured(t *testing.T) {
	app := setupApp(t, &fakeRemote{}, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/estates", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestCreate(t *testing.T) {
	remote := &fakeRemote{}
	app := setupApp(t, remote, true)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/admin/estates", validPayload()), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := read(t, resp)
	assert.Equal(t, "new-1", body.Data["id"])
	assert.True(t, strings.HasPrefix(remote.lastBody["propertyCode"].(string), "PROP-"))
	assert.NotEmpty(t, remote.lastBody["createdAt"])
}

func TestCreate_ValidationErrors(t *testing.T) {
	app := setupApp(t, &fakeRemote{}, true)
	payload := validPayload()
	payload["title"] = "Casa"
	payload["images"] = []string{}

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/admin/estates", payload), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := read(t, resp)
	assert.Equal(t, "El título debe tener al menos 5 caracteres", body.Error.Details["title"])
	assert.Equal(t, "Debe incluir al menos una imagen", body.Error.Details["images"])
}

func TestCreate_MalformedBody(t *testing.T) {
	app := setupApp(t, &fakeRemote{}, true)
	req := httptest.NewRequest(http.MethodPost, "/admin/estates", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdate(t *testing.T) {
	remote := &fakeRemote{}
	app := setupApp(t, remote, true)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/admin/estates/e1", validPayload()), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := read(t, resp)
	assert.Equal(t, "e1", body.Data["id"])
	assert.Equal(t, "Casa en Chapinero", body.Data["title"])
	assert.Equal(t, "2024-01-01T00:00:00Z", body.Data["createdAt"])
	assert.NotContains(t, remote.lastBody, "createdAt")
}

func TestUpdate_NotFound(t *testing.T) {
	app := setupApp(t, &fakeRemote{}, true)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/admin/estates/nope", validPayload()), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDelete(t *testing.T) {
	app := setupApp(t, &fakeRemote{}, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/admin/estates/e1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "e1", read(t, resp).Data["id"])
}

func TestDelete_UpstreamMessageIsPassedThrough(t *testing.T) {
	app := setupApp(t, &fakeRemote{}, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/admin/estates/e2", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "No se pudo eliminar", read(t, resp).Error.Message)
}
