//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	maxPerPage     = 100
)

// PageMeta is the pagination block the content API attaches to list envelopes.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Valid reports whether the meta satisfies current_page <= last_page and total >= 0.
func (m PageMeta) Valid() bool {
	return m.Total >= 0 && m.CurrentPage <= m.LastPage
}

// ExpectedLastPage returns ceil(total / per_page), or 0 when per_page is not positive.
func (m PageMeta) ExpectedLastPage() int {
	if m.PerPage <= 0 || m.Total <= 0 {
		return 0
	}
	return (m.Total + m.PerPage - 1) / m.PerPage
}

// SortDirection is "asc" or "desc".
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListParams controls paging and filtering for list actions.
// Notes:
// - Page and PerPage are always sent; zero values fall back to 1 and 10.
// - Empty optional filters are omitted from the query string.
// - Format, Department, EmploymentType and ActiveOnly only apply to careers.
type ListParams struct {
	Page           int
	PerPage        int
	Search         string
	Status         string
	OrderBy        string
	OrderDirection SortDirection
	TrashedOnly    bool
	StartDate      string // YYYY-MM-DD
	EndDate        string // YYYY-MM-DD

	Format         string
	Department     string
	EmploymentType string
	ActiveOnly     bool
}

// Normalize clamps paging and lowercases the sort direction.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	switch SortDirection(strings.ToLower(strings.TrimSpace(string(p.OrderDirection)))) {
	case SortAsc:
		p.OrderDirection = SortAsc
	case SortDesc:
		p.OrderDirection = SortDesc
	default:
		p.OrderDirection = ""
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Query serializes the params into query values.
func (p ListParams) Query() url.Values {
	p = p.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("per_page", strconv.Itoa(p.PerPage))
	setIf(q, "search", p.Search)
	setIf(q, "status", p.Status)
	setIf(q, "order_by", p.OrderBy)
	setIf(q, "order_direction", string(p.OrderDirection))
	if p.TrashedOnly {
		q.Set("trashed_only", "true")
	}
	setIf(q, "start_date", p.StartDate)
	setIf(q, "end_date", p.EndDate)
	setIf(q, "format", p.Format)
	setIf(q, "department", p.Department)
	setIf(q, "employment_type", p.EmploymentType)
	if p.ActiveOnly {
		q.Set("active_only", "true")
	}
	return q
}

// ParseListParams reads ListParams back from query values, ignoring malformed numbers.
func ParseListParams(q url.Values) ListParams {
	p := ListParams{
		Search:         q.Get("search"),
		Status:         q.Get("status"),
		OrderBy:        q.Get("order_by"),
		OrderDirection: SortDirection(q.Get("order_direction")),
		TrashedOnly:    truthy(q.Get("trashed_only")),
		StartDate:      q.Get("start_date"),
		EndDate:        q.Get("end_date"),
		Format:         q.Get("format"),
		Department:     q.Get("department"),
		EmploymentType: q.Get("employment_type"),
		ActiveOnly:     truthy(q.Get("active_only")),
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("per_page")); err == nil {
		p.PerPage = n
	}
	return p.Normalize()
}

func setIf(q url.Values, key, val string) {
	if val = strings.TrimSpace(val); val != "" {
		q.Set(key, val)
	}
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
