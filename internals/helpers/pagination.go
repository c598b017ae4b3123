package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/datastore"
)

type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

var (
	DefaultOpts = Options{DefaultPerPage: 25, MaxPerPage: 200}
	AdminOpts   = Options{DefaultPerPage: 50, MaxPerPage: 500}
	// The public job board always shows 12 per page.
	JobBoardOpts = Options{DefaultPerPage: 12, MaxPerPage: 12}
)

type Params struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // asc|desc
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// ParseFiber reads ?page, ?per_page (alias ?limit), ?sort_by and ?order.
func ParseFiber(c *fiber.Ctx, defaultSortBy, defaultSortOrder string, opt Options) Params {
	page := atoiDefault(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}

	perRaw := c.Query("per_page")
	if strings.TrimSpace(perRaw) == "" {
		perRaw = c.Query("limit")
	}
	per := atoiDefault(perRaw, opt.DefaultPerPage)
	if per < 1 {
		per = opt.DefaultPerPage
	}
	if opt.MaxPerPage > 0 && per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}

	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	order := strings.ToLower(strings.TrimSpace(c.Query("order")))
	if order != "asc" && order != "desc" {
		order = strings.ToLower(defaultSortOrder)
		if order != "asc" && order != "desc" {
			order = "desc"
		}
	}

	return Params{Page: page, PerPage: per, SortBy: sortBy, SortOrder: order}
}

func (p Params) Limit() int  { return p.PerPage }
func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// SafeOrder maps SortBy through a whitelist of column names.
func (p Params) SafeOrder(allowed map[string]string, defaultKey string) datastore.Order {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = allowed[defaultKey]
	}
	return datastore.Order{Column: col, Desc: p.SortOrder != "asc"}
}

// Apply adds ordering and the page window to q.
func (p Params) Apply(q datastore.Query, allowed map[string]string, defaultKey string) datastore.Query {
	return q.OrderBy(p.SafeOrder(allowed, defaultKey)).Page(p.Limit(), p.Offset())
}

// SlicePage cuts one page out of an already materialized list. The page is
// clamped into [1, total pages] so callers never land outside the range.
func SlicePage[T any](items []T, page, perPage int) ([]T, Pagination) {
	pg := BuildPaginationFromPage(int64(len(items)), page, perPage)
	if pg.Page > pg.TotalPages {
		pg = BuildPaginationFromPage(int64(len(items)), pg.TotalPages, perPage)
	}
	start := (pg.Page - 1) * pg.PerPage
	end := start + pg.PerPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	out := items[start:end]
	pg.Count = len(out)
	return out, pg
}
