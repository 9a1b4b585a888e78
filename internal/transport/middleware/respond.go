package middleware

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope mirrors the REST error envelope. Responses written
// before the router (credential rejections, panic recoveries) must look
// the same to clients as handler errors.
type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{ //nolint:errcheck
		Code:    code,
		Message: message,
	}})
}
