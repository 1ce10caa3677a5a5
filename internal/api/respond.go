package api

import (
	"encoding/json"
	"net/http"

	apperrors "spotmarket/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeHTTPError(w http.ResponseWriter, err *apperrors.HTTPError) {
	http.Error(w, err.Message, err.Code)
}
