package utils

import (
	"encoding/json"
	"net/http"

	"FOODREC_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes an error body in the {error, message} shape
func WriteErrorResponse(w http.ResponseWriter, status int, errCategory, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errCategory, Message: message})
}
