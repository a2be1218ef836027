package entityrepo

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SortOrder is the direction of a list sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	// DefaultPage is used when ListParams.Page is zero.
	DefaultPage = 1
	// DefaultLimit is used when ListParams.Limit is zero.
	DefaultLimit = 10
	// DefaultSortBy is used when ListParams.SortBy is empty.
	DefaultSortBy = "created_at"
)

// columnPattern restricts sort columns to plain identifiers. SortBy ends up
// inside an ORDER BY clause, so anything else is rejected up front.
var columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ListParams qualifies a paginated list read. The zero value lists the first
// ten records, newest first.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// withDefaults fills unset fields with the documented defaults.
func (p ListParams) withDefaults() ListParams {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.SortOrder == "" {
		p.SortOrder = SortDesc
	}
	return p
}

// Validate checks the params after defaults have been applied.
func (p ListParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Page, validation.Required, validation.Min(1)),
		validation.Field(&p.Limit, validation.Required, validation.Min(1)),
		validation.Field(&p.SortBy, validation.Required, validation.Match(columnPattern)),
		validation.Field(&p.SortOrder, validation.Required, validation.In(SortAsc, SortDesc)),
	)
}

// query converts the params into the store-level read qualifiers.
func (p ListParams) query() Query {
	return Query{
		Limit:     p.Limit,
		Offset:    (p.Page - 1) * p.Limit,
		OrderBy:   p.SortBy,
		OrderDesc: p.SortOrder == SortDesc,
	}
}
