package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON sends v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFail sends the standard failure envelope { "success": false, "message": ... }.
func writeFail(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]interface{}{"success": false, "message": message})
}
