package api

import (
	"errors"
	"net/url"
	"strconv"
)

const (
	defaultLimit = 100
	maxLimit     = 100
)

// ErrInvalidQuery signals an out-of-range or malformed pagination value.
var ErrInvalidQuery = errors.New("invalid query")

// Page bounds a list request.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage validates limit/offset query parameters. Absent values fall
// back to defaults; anything malformed or out of range is rejected.
func ParsePage(query url.Values) (Page, error) {
	page := Page{Limit: defaultLimit}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return Page{}, ErrInvalidQuery
		}
		page.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return Page{}, ErrInvalidQuery
		}
		page.Offset = offset
	}

	return page, nil
}
