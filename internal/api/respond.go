// Package api provides the uniform response envelope shared by every
// endpoint, plus pagination parsing for list routes.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Version is the API version reported in tokens and base URLs.
const Version = 1

// Meta carries pagination bookkeeping for list responses.
type Meta struct {
	Count    int     `json:"count"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// Response is the envelope applied to every reply, success or error.
type Response struct {
	URL     string `json:"url"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Simple writes an envelope without a data payload.
func Simple(w http.ResponseWriter, r *http.Request, status int, message string) {
	write(w, status, Response{
		URL:     FullURL(r),
		Status:  status,
		Message: message,
	})
}

// Data writes an envelope carrying a payload.
func Data(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	write(w, status, Response{
		URL:     FullURL(r),
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// Paged writes a list envelope with populated meta. count is the number
// of rows in this page, total the number matching the filter overall.
func Paged(w http.ResponseWriter, r *http.Request, status int, message string, data any, page Page, count, total int) {
	write(w, status, Response{
		URL:     FullURL(r),
		Status:  status,
		Message: message,
		Data:    data,
		Meta: &Meta{
			Count:    count,
			Total:    total,
			Next:     pageLink(r, page, page.Offset+page.Limit, total),
			Previous: pageLink(r, page, page.Offset-page.Limit, total),
		},
	})
}

// NoContent ends the request without a body. 204 replies cannot carry
// an envelope.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// FullURL reconstructs the request URL, query string included.
func FullURL(r *http.Request) string {
	return fmt.Sprintf("%s://%s%s", scheme(r), r.Host, r.URL.RequestURI())
}

// BaseURL returns the versioned API root for building endpoint links.
func BaseURL(r *http.Request) string {
	return fmt.Sprintf("%s://%s/api/v%d", scheme(r), r.Host, Version)
}

func scheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func pageLink(r *http.Request, page Page, offset, total int) *string {
	if offset < 0 || offset >= total {
		return nil
	}
	u := *r.URL
	q := u.Query()
	q.Set("limit", strconv.Itoa(page.Limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()
	link := fmt.Sprintf("%s://%s%s", scheme(r), r.Host, u.RequestURI())
	return &link
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
