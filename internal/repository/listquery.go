package repository

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 25
)

// comparison operators accepted in bracketed query params, e.g. quantity[gte]=2.
var filterOps = map[string]string{
	"gt":  "> ?",
	"gte": ">= ?",
	"lt":  "< ?",
	"lte": "<= ?",
	"ne":  "<> ?",
	"in":  "IN ?",
}

// Filter is a single column comparison parsed from the query string.
type Filter struct {
	Column string
	Op     string
	Value  string
}

// ListOptions is a domain-agnostic pagination/selection/sorting/filtering
// descriptor derived from request query parameters.
type ListOptions struct {
	Page    int
	Limit   int
	Selects []string
	Order   []string
	Filters []Filter
}

// ParseListOptions builds ListOptions from query values. allowed maps exposed
// JSON field names to database columns; anything outside it is ignored, which
// both scopes the API surface and keeps column names out of caller control.
func ParseListOptions(values url.Values, allowed map[string]string) ListOptions {
	opts := ListOptions{
		Page:  defaultPage,
		Limit: defaultLimit,
	}

	if v, err := strconv.Atoi(values.Get("page")); err == nil && v > 0 {
		opts.Page = v
	}
	if v, err := strconv.Atoi(values.Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}

	for _, field := range strings.Split(values.Get("select"), ",") {
		if col, ok := allowed[strings.TrimSpace(field)]; ok {
			opts.Selects = append(opts.Selects, col)
		}
	}

	for _, field := range strings.Split(values.Get("sort"), ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		if col, ok := allowed[field]; ok {
			if desc {
				col += " DESC"
			}
			opts.Order = append(opts.Order, col)
		}
	}
	if len(opts.Order) == 0 {
		opts.Order = []string{"created_at DESC"}
	}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		switch key {
		case "page", "limit", "select", "sort":
			continue
		}

		field, op := key, ""
		if open := strings.Index(key, "["); open >= 0 && strings.HasSuffix(key, "]") {
			field = key[:open]
			op = key[open+1 : len(key)-1]
			if _, known := filterOps[op]; !known {
				continue
			}
		}
		if col, ok := allowed[field]; ok {
			opts.Filters = append(opts.Filters, Filter{Column: col, Op: op, Value: vals[0]})
		}
	}

	return opts
}

// scope applies filters and ordering; selection and paging are applied by the
// repository so the same options can drive both the count and the page query.
func (o ListOptions) scope(db *gorm.DB) *gorm.DB {
	for _, f := range o.Filters {
		switch f.Op {
		case "":
			db = db.Where(f.Column+" = ?", f.Value)
		case "in":
			db = db.Where(f.Column+" "+filterOps[f.Op], strings.Split(f.Value, ","))
		default:
			db = db.Where(f.Column+" "+filterOps[f.Op], f.Value)
		}
	}
	return db
}

func (o ListOptions) offset() int {
	return (o.Page - 1) * o.Limit
}

// Page identifies one page of a listing.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev page hints for list responses.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// NewPagination computes next/prev hints for the given page against total rows.
func NewPagination(opts ListOptions, total int64) *Pagination {
	p := &Pagination{}
	if int64(opts.offset()+opts.Limit) < total {
		p.Next = &Page{Page: opts.Page + 1, Limit: opts.Limit}
	}
	if opts.Page > 1 {
		p.Prev = &Page{Page: opts.Page - 1, Limit: opts.Limit}
	}
	return p
}
