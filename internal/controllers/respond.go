package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"wedcms/internal/apperr"
)

const maxRequestBodySize = 10 << 20 // 10 MB

// envelope is the uniform response body shape of the JSON API.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if kind, ok := apperr.KindOf(err); ok {
		switch kind {
		case apperr.KindInvalidInput:
			status = http.StatusBadRequest
		case apperr.KindNotFound:
			status = http.StatusNotFound
		}
	}
	writeJSON(w, status, envelope{Success: false, Message: err.Error()})
}
