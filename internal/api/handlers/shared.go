// Package handlers contains the HTTP layer adapters. Handlers parse and
// validate requests, delegate to the service layer, and translate service
// errors into HTTP status codes.
package handlers

import (
	"encoding/json"
	"net/http"
)

// parseJSON decodes the request body into T. Unknown fields are rejected so
// client typos surface as 400s instead of silently dropped fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&req)
	return req, err
}
