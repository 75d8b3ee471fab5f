// shared/api/response.go
package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// JSONErrorResponse defines a standard structure for API error responses.
type JSONErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// MessageResponse is the body of successful writes that return no document.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteText writes a plain text response with the given status code.
func WriteText(w http.ResponseWriter, status int, text string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write([]byte(text))
	return err
}

// WriteError writes a JSON error response with the given status code and message.
func WriteError(w http.ResponseWriter, status int, message string) {
	errResp := JSONErrorResponse{
		Message: message,
		Code:    status,
	}
	if err := WriteJSON(w, status, errResp); err != nil {
		log.Printf("ERROR: Failed to write JSON error response: %v", err)
	}
}

// WriteBadRequest convenience function
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound convenience function
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalServerError convenience function
func WriteInternalServerError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
