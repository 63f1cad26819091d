package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// WriteJSON encodes payload as a JSON response.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] writing JSON to response: %v", err)
	}
}

// WriteErrorJSON writes a {"error": msg} body.
func WriteErrorJSON(w http.ResponseWriter, statusCode int, msg string) {
	WriteJSON(w, statusCode, map[string]string{"error": msg})
}

// WritePDF writes PDF bytes with inline content-disposition headers carrying
// the suggested filename.
func WritePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("[ERROR] writing PDF to response: %v", err)
	}
}

// WriteHTML writes a complete HTML page.
func WriteHTML(w http.ResponseWriter, markup string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(markup)); err != nil {
		log.Printf("[ERROR] writing HTML to response: %v", err)
	}
}
