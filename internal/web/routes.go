package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Umidjon1990/Shartnoma/internal/compose"
	"github.com/Umidjon1990/Shartnoma/internal/contract"
	"github.com/Umidjon1990/Shartnoma/internal/notify"
	"github.com/Umidjon1990/Shartnoma/internal/render"
	"github.com/Umidjon1990/Shartnoma/internal/storage"
	"github.com/Umidjon1990/Shartnoma/internal/template"
)

// Handlers bundles the dependencies of the HTTP surface.
type Handlers struct {
	Store     storage.Store
	Templates *template.Store
	Renderer  render.Renderer
	Notifier  notify.Notifier
}

// Register mounts every route on the router.
func (h *Handlers) Register(r *Router) {
	r.HandleFunc("GET /api/contracts", h.listContracts)
	r.HandleFunc("GET /api/contracts/{id}", h.getContract)
	r.HandleFunc("POST /api/contracts", h.createContract)
	r.HandleFunc("DELETE /api/contracts/{id}", h.deleteContract)
	r.HandleFunc("GET /api/contracts/{id}/pdf", h.contractPDF)
	r.HandleFunc("POST /api/contracts/draft/pdf", h.draftPDF)
	r.HandleFunc("GET /api/template", h.getTemplate)
	r.HandleFunc("PUT /api/template", h.setTemplate)
	r.HandleFunc("GET /print/contract", h.printContract)
}

func (h *Handlers) listContracts(w http.ResponseWriter, r *http.Request) {
	all, err := h.Store.All(r.Context())
	if err != nil {
		log.Printf("[ERROR] fetching contracts: %v", err)
		WriteErrorJSON(w, http.StatusInternalServerError, "Failed to fetch contracts")
		return
	}
	if all == nil {
		all = []storage.Contract{}
	}
	WriteJSON(w, http.StatusOK, all)
}

func contractID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func (h *Handlers) getContract(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(r)
	if !ok {
		WriteErrorJSON(w, http.StatusBadRequest, "Invalid contract ID")
		return
	}
	c, err := h.Store.ByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		WriteErrorJSON(w, http.StatusNotFound, "Contract not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] fetching contract %d: %v", id, err)
		WriteErrorJSON(w, http.StatusInternalServerError, "Failed to fetch contract")
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

func (h *Handlers) createContract(w http.ResponseWriter, r *http.Request) {
	var nc storage.NewContract
	if err := json.NewDecoder(r.Body).Decode(&nc); err != nil {
		WriteErrorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateNewContract(nc); err != nil {
		WriteErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.Store.Create(r.Context(), nc)
	if err != nil {
		log.Printf("[ERROR] creating contract: %v", err)
		WriteErrorJSON(w, http.StatusInternalServerError, "Failed to create contract")
		return
	}

	// Best effort: a notification failure never fails the creation.
	if h.Notifier != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			h.Notifier.ContractCreated(ctx, c)
		}()
	}

	WriteJSON(w, http.StatusCreated, c)
}

func validateNewContract(nc storage.NewContract) error {
	nameLen := utf8.RuneCountInString(strings.TrimSpace(nc.StudentName))
	if nameLen < 2 || nameLen > 200 {
		return errors.New("studentName must be between 2 and 200 characters")
	}
	if strings.TrimSpace(nc.Phone) == "" {
		return errors.New("phone must not be empty")
	}
	if strings.TrimSpace(nc.Age) == "" {
		return errors.New("age must not be empty")
	}
	if strings.TrimSpace(nc.Course) == "" {
		return errors.New("course must not be empty")
	}
	return nil
}

func (h *Handlers) deleteContract(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(r)
	if !ok {
		WriteErrorJSON(w, http.StatusBadRequest, "Invalid contract ID")
		return
	}
	err := h.Store.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		WriteErrorJSON(w, http.StatusNotFound, "Contract not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] deleting contract %d: %v", id, err)
		WriteErrorJSON(w, http.StatusInternalServerError, "Failed to delete contract")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// contractPDF renders the PDF for an existing persisted contract.
func (h *Handlers) contractPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(r)
	if !ok {
		WriteErrorJSON(w, http.StatusBadRequest, "Invalid contract ID")
		return
	}
	c, err := h.Store.ByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		WriteErrorJSON(w, http.StatusNotFound, "Contract not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] fetching contract %d: %v", id, err)
		WriteErrorJSON(w, http.StatusInternalServerError, "Failed to fetch contract")
		return
	}

	pdf, err := h.Renderer.RenderPDF(r.Context(), c.Fields())
	if err != nil {
		WriteErrorJSON(w, http.StatusInternalServerError, "PDF generation failed")
		return
	}
	WritePDF(w, contract.Filename(c.ContractNumber, c.StudentName), pdf)
}

// draftPDF renders a PDF for an inline, not-yet-persisted payload.
func (h *Handlers) draftPDF(w http.ResponseWriter, r *http.Request) {
	var f contract.Fields
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		WriteErrorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	f = f.Sanitize()
	if err := f.Validate(); err != nil {
		WriteErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	f = f.Normalize()

	pdf, err := h.Renderer.RenderPDF(r.Context(), f)
	if err != nil {
		WriteErrorJSON(w, http.StatusInternalServerError, "PDF generation failed")
		return
	}
	WritePDF(w, contract.Filename(f.Number, f.Name), pdf)
}

func (h *Handlers) getTemplate(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"template": h.Templates.Get()})
}

func (h *Handlers) setTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Template string `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteErrorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Template) == "" {
		WriteErrorJSON(w, http.StatusBadRequest, "template must not be empty")
		return
	}
	h.Templates.Set(body.Template)
	WriteJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// printContract serves the capture-mode document for the headless driver.
// The readiness marker is part of the page.
func (h *Handlers) printContract(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := contract.Fields{
		Name:   q.Get("name"),
		Age:    q.Get("age"),
		Course: q.Get("course"),
		Format: q.Get("format"),
		Date:   q.Get("date"),
		Number: q.Get("number"),
	}.Sanitize().Normalize()

	page, err := compose.Page(f, h.Templates.Get(), compose.Capture)
	if err != nil {
		log.Printf("[ERROR] composing print page: %v", err)
		WriteErrorJSON(w, http.StatusInternalServerError, "Failed to compose contract")
		return
	}
	WriteHTML(w, page)
}
