package handler

import (
	"encoding/json"
	"net/http"
)

// Handler answers the platform's root probe so deployments report healthy.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "ua-shop",
		"status":  "ok",
	})
}
