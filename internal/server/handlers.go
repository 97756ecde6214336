package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/internship-generator/internal/db"
)

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Message: "Invalid request body: " + err.Error()}
	}
	return nil
}

// parseQueryInt parses an integer query parameter within [minValue, maxValue].
// An absent parameter yields defaultValue.
func parseQueryInt(r *http.Request, key string, defaultValue, minValue, maxValue int) (int, error) {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, &ErrValidation{Message: fmt.Sprintf("%s must be an integer", key)}
	}
	if val < minValue || (maxValue > 0 && val > maxValue) {
		if maxValue > 0 {
			return 0, &ErrValidation{Message: fmt.Sprintf("%s must be between %d and %d", key, minValue, maxValue)}
		}
		return 0, &ErrValidation{Message: fmt.Sprintf("%s must be >= %d", key, minValue)}
	}
	return val, nil
}

// parsePage reads the skip and limit list parameters.
func parsePage(r *http.Request) (db.Page, error) {
	skip, err := parseQueryInt(r, "skip", 0, 0, 0)
	if err != nil {
		return db.Page{}, err
	}
	limit, err := parseQueryInt(r, "limit", db.MaxPageSize, 1, db.MaxPageSize)
	if err != nil {
		return db.Page{}, err
	}
	return db.Page{Skip: skip, Limit: limit}, nil
}
