// internal/app/system/httpjson/httpjson.go

// Package httpjson is the small request/response vocabulary the API
// features share: encode a value, encode an error envelope, decode a
// capped request body.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps JSON request bodies. Uploads go through multipart
// handling with their own limit.
const maxBodyBytes = 1 << 20

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the standard {"error": msg} envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Decode reads the request body into v. On malformed input it writes a
// 400 and returns false; handlers just return on false.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
