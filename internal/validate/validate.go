// Package validate provides identifier validation and query parameter
// normalization for listing endpoints.
package validate

import (
	"regexp"
	"strconv"

	"github.com/shopcart/shopcart/internal/apperr"
)

// SortOrder is a normalized sort direction for listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	idLength      = 36
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultOffset = 0
)

// idRegex matches the canonical UUID v4 textual form: version nibble 4,
// variant nibble in [89ab], case-insensitive.
var idRegex = regexp.MustCompile(`^(?i)[0-9A-F]{8}-[0-9A-F]{4}-4[0-9A-F]{3}-[89AB][0-9A-F]{3}-[0-9A-F]{12}$`)

// CheckID validates that id is a well-formed UUID v4.
func CheckID(id string) error {
	if len(id) != idLength || !idRegex.MatchString(id) {
		return apperr.New(apperr.BadRequest, "invalid identifier")
	}
	return nil
}

// NormalizeSortOrder returns the input when it is exactly "asc" or
// "desc" and falls back to ascending otherwise. It never fails.
func NormalizeSortOrder(order string) SortOrder {
	if order == string(SortDesc) {
		return SortDesc
	}
	return SortAsc
}

// NormalizeLimit parses a base-10 limit. Non-integers and values above
// MaxLimit degrade to DefaultLimit. Values <= 0 pass through unclamped;
// the store decides what to do with them.
func NormalizeLimit(limit string) int {
	n, err := strconv.Atoi(limit)
	if err != nil || n > MaxLimit {
		return DefaultLimit
	}
	return n
}

// NormalizeOffset parses a base-10 offset. Non-integers and negative
// values degrade to DefaultOffset.
func NormalizeOffset(offset string) int {
	n, err := strconv.Atoi(offset)
	if err != nil || n < 0 {
		return DefaultOffset
	}
	return n
}
