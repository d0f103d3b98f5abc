// internal/common/utils/response.go
// Standardized API responses ensure consistency across all endpoints

package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the standard API response envelope. Every endpoint returns
// {success: bool, ...}; failures carry a message plus optional
// machine-readable diagnostic flags so clients can route the user.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithJSON sends a JSON response with the specified status code and payload
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"Error marshaling JSON"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithError sends a failure envelope with a message
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// RespondWithErrorFlags sends a failure envelope with additional diagnostic
// flags merged in (e.g. requires_basic_info, missing_fields)
func RespondWithErrorFlags(w http.ResponseWriter, code int, message string, flags map[string]interface{}) {
	payload := map[string]interface{}{
		"success": false,
		"message": message,
	}
	for k, v := range flags {
		payload[k] = v
	}
	RespondWithJSON(w, code, payload)
}

// RespondWithData sends a success envelope with data
func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, Response{
		Success: true,
		Data:    data,
	})
}
