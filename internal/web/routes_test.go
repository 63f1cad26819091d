package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Umidjon1990/Shartnoma/internal/contract"
	"github.com/Umidjon1990/Shartnoma/internal/render"
	"github.com/Umidjon1990/Shartnoma/internal/storage"
	"github.com/Umidjon1990/Shartnoma/internal/template"
)

type stubRenderer struct {
	pdf    []byte
	err    error
	fields contract.Fields
}

func (s *stubRenderer) RenderPDF(ctx context.Context, f contract.Fields) ([]byte, error) {
	s.fields = f
	if s.err != nil {
		return nil, s.err
	}
	return s.pdf, nil
}

func newTestServer(t *testing.T, renderer render.Renderer) (*httptest.Server, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	h := &Handlers{
		Store:     store,
		Templates: template.NewStore(),
		Renderer:  renderer,
	}
	router := NewRouter(WrapperFunc(Recover))
	h.Register(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return res
}

func decodeContract(t *testing.T, res *http.Response) storage.Contract {
	t.Helper()
	defer res.Body.Close()
	var c storage.Contract
	require.NoError(t, json.NewDecoder(res.Body).Decode(&c))
	return c
}

func TestCreateAndListContracts(t *testing.T) {
	srv, _ := newTestServer(t, &stubRenderer{})

	res := postJSON(t, srv.URL+"/api/contracts", storage.NewContract{
		StudentName: "Aziz Azizov", Phone: "+998901234567", Age: "20", Course: "B1-B2",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := decodeContract(t, res)
	assert.Regexp(t, `^CN-\d{4}-001$`, created.ContractNumber)
	assert.Equal(t, "Online", created.Format)
	assert.Equal(t, "signed", created.Status)

	listRes, err := http.Get(srv.URL + "/api/contracts")
	require.NoError(t, err)
	defer listRes.Body.Close()
	var all []storage.Contract
	require.NoError(t, json.NewDecoder(listRes.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
}

func TestCreateContractValidation(t *testing.T) {
	srv, _ := newTestServer(t, &stubRenderer{})

	tests := []struct {
		name    string
		payload storage.NewContract
	}{
		{"short name", storage.NewContract{StudentName: "A", Phone: "x", Age: "20", Course: "B1-B2"}},
		{"missing phone", storage.NewContract{StudentName: "Aziz Azizov", Age: "20", Course: "B1-B2"}},
		{"missing course", storage.NewContract{StudentName: "Aziz Azizov", Phone: "x", Age: "20"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := postJSON(t, srv.URL+"/api/contracts", tt.payload)
			defer res.Body.Close()
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		})
	}
}

func TestGetContract(t *testing.T) {
	srv, store := newTestServer(t, &stubRenderer{})
	created, err := store.Create(context.Background(), storage.NewContract{
		StudentName: "Malika Karimova", Phone: "+998939876543", Age: "19", Course: "A2-B1",
	})
	require.NoError(t, err)

	res, err := http.Get(srv.URL + "/api/contracts/1")
	require.NoError(t, err)
	got := decodeContract(t, res)
	assert.Equal(t, created.ContractNumber, got.ContractNumber)

	res, err = http.Get(srv.URL + "/api/contracts/42")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, err = http.Get(srv.URL + "/api/contracts/abc")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDeleteContract(t *testing.T) {
	srv, store := newTestServer(t, &stubRenderer{})
	created, err := store.Create(context.Background(), storage.NewContract{
		StudentName: "Aziz Azizov", Phone: "x", Age: "20", Course: "B1-B2",
	})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/contracts/1", nil)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	_, err = store.ByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestContractPDF(t *testing.T) {
	renderer := &stubRenderer{pdf: []byte("%PDF-1.7 fake")}
	srv, store := newTestServer(t, renderer)
	created, err := store.Create(context.Background(), storage.NewContract{
		StudentName: "Aziz Azizov", Phone: "x", Age: "20", Course: "B1-B2",
	})
	require.NoError(t, err)

	res, err := http.Get(srv.URL + "/api/contracts/1/pdf")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	wantFilename := contract.Filename(created.ContractNumber, "Aziz Azizov")
	assert.Contains(t, res.Header.Get("Content-Disposition"), wantFilename)
	assert.Equal(t, created.ContractNumber, renderer.fields.Number)
	assert.Equal(t, "Aziz Azizov", renderer.fields.Name)
}

func TestContractPDFFailureIsOpaque(t *testing.T) {
	srv, store := newTestServer(t, &stubRenderer{err: render.ErrGenerationFailed})
	_, err := store.Create(context.Background(), storage.NewContract{
		StudentName: "Aziz Azizov", Phone: "x", Age: "20", Course: "B1-B2",
	})
	require.NoError(t, err)

	res, err := http.Get(srv.URL + "/api/contracts/1/pdf")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "PDF generation failed", body["error"])
}

func TestDraftPDF(t *testing.T) {
	renderer := &stubRenderer{pdf: []byte("%PDF-1.7 fake")}
	srv, _ := newTestServer(t, renderer)

	res := postJSON(t, srv.URL+"/api/contracts/draft/pdf", contract.Fields{
		Name: "Aziz <b>Azizov</b>", Age: "20", Course: "B1-B2", Format: "Online", Number: "CN-2025-007",
	})
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	// Markup characters are stripped before the fields reach the renderer.
	assert.Equal(t, "Aziz bAzizov/b", renderer.fields.Name)
	assert.Equal(t, "CN-2025-007", renderer.fields.Number)
	assert.NotEmpty(t, renderer.fields.Date, "draft date defaults to today")
}

func TestDraftPDFValidation(t *testing.T) {
	srv, _ := newTestServer(t, &stubRenderer{})

	tests := []struct {
		name    string
		payload contract.Fields
	}{
		{"short name", contract.Fields{Name: "A", Course: "B1-B2", Number: "N-1"}},
		{"empty course", contract.Fields{Name: "Aziz Azizov", Number: "N-1"}},
		{"empty number", contract.Fields{Name: "Aziz Azizov", Course: "B1-B2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := postJSON(t, srv.URL+"/api/contracts/draft/pdf", tt.payload)
			defer res.Body.Close()
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		})
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t, &stubRenderer{})

	res, err := http.Get(srv.URL + "/api/template")
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	assert.Equal(t, template.Default, body["template"])

	payload, _ := json.Marshal(map[string]string{"template": "custom {name}"})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/template", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	putRes, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	putRes.Body.Close()
	assert.Equal(t, http.StatusOK, putRes.StatusCode)

	res, err = http.Get(srv.URL + "/api/template")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	assert.Equal(t, "custom {name}", body["template"])
}

func TestPrintRoute(t *testing.T) {
	srv, _ := newTestServer(t, &stubRenderer{})

	res, err := http.Get(srv.URL + "/print/contract?name=Aziz+Azizov&age=20&course=B1-B2&format=Online&number=CN-2025-007&date=01.09.2025")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")

	var buf bytes.Buffer
	_, err = buf.ReadFrom(res.Body)
	require.NoError(t, err)
	page := buf.String()
	assert.Contains(t, page, `id="ready-marker"`)
	assert.Contains(t, page, "CN-2025-007")
	assert.Contains(t, page, "Aziz Azizov")
}

func TestPrintRouteStripsMarkupInjection(t *testing.T) {
	srv, _ := newTestServer(t, &stubRenderer{})

	res, err := http.Get(srv.URL + "/print/contract?name=" + url.QueryEscape("<script>alert(1)</script>Aziz") + "&age=20&course=B1-B2")
	require.NoError(t, err)
	defer res.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(res.Body)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script")
}
