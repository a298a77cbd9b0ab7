package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"family-records-go/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse("2006-01-02", value)
}

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// pageParam reads the page query parameter; anything unusable falls back to
// the first page.
func pageParam(r *http.Request) int {
	return pagination.ParsePage(r.URL.Query().Get("page"))
}

func searchParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("search"))
}

// idParam decodes the obfuscated identifier in the named route parameter.
func (h *Handlers) idParam(r *http.Request, name string) (uint, error) {
	return h.codec.Decode(chi.URLParam(r, name))
}
