package httpapi

import "net/http"

// Envelope is the success response shape inherited from the original HR
// backend and kept for client compatibility: the HTTP status is mirrored in
// the body next to a human-readable message.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// WriteEnvelope writes a success envelope. Responses are marked no-cache so
// scope-filtered listings are never served stale to a different viewer.
func WriteEnvelope(w http.ResponseWriter, status int, message string, data any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Cache-Control", "no-cache")
	return WriteJSON(w, status, &Envelope{
		Status:  status,
		Message: message,
		Data:    data,
	})
}
