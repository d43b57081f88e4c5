// Package query translates the raw search query string into a validated,
// executable listing fetch.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/internal/models"
)

const (
	DefaultLimit = 9
	defaultSort  = "created_at"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// sortColumns whitelists the sortable fields and maps their API names to
// database columns. Unknown sort names fall back to createdAt so a
// well-formed request never fails.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"regularPrice":  "regular_price",
	"discountPrice": "discount_price",
}

// ListingQuery is a validated search request.
//
// Offer, Furnished and Parking follow the search UI's checkbox semantics:
// true narrows results to true-valued listings, false applies no filter at
// all. The parser maps both an absent parameter and an explicit "false" to
// the unfiltered state.
//
// Callers infer pagination exhaustion by comparing the returned row count
// against Limit: fewer rows than Limit means there is no further page.
// Rows with equal sort keys come back in storage order, which is not
// deterministic.
type ListingQuery struct {
	SearchTerm string
	Type       models.ListingType // empty means both sale and rent
	Offer      bool
	Furnished  bool
	Parking    bool
	Limit      int
	StartIndex int
	SortColumn string
	Order      Order
}

// Parse validates the raw query-string parameters and applies defaults:
// limit=9, startIndex=0, sort=createdAt, order=desc. Malformed numeric
// parameters are rejected rather than silently defaulted.
func Parse(params url.Values) (*ListingQuery, error) {
	q := &ListingQuery{
		SearchTerm: params.Get("searchTerm"),
		Offer:      boolFilter(params.Get("offer")),
		Furnished:  boolFilter(params.Get("furnished")),
		Parking:    boolFilter(params.Get("parking")),
		Limit:      DefaultLimit,
		StartIndex: 0,
		SortColumn: defaultSort,
		Order:      OrderDesc,
	}

	// "all" and absent both alias to the pair of valid types. Any other
	// value passes through unchanged; an unknown type simply matches
	// nothing, which is acceptable degraded behavior.
	if t := params.Get("type"); t != "" && t != "all" {
		q.Type = models.ListingType(t)
	}

	if v := params.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, apperr.BadRequest("limit must be a positive integer")
		}
		q.Limit = limit
	}

	if v := params.Get("startIndex"); v != "" {
		startIndex, err := strconv.Atoi(v)
		if err != nil || startIndex < 0 {
			return nil, apperr.BadRequest("startIndex must be a non-negative integer")
		}
		q.StartIndex = startIndex
	}

	if v := params.Get("sort"); v != "" {
		if col, ok := sortColumns[v]; ok {
			q.SortColumn = col
		}
	}

	if params.Get("order") == string(OrderAsc) {
		q.Order = OrderAsc
	}

	return q, nil
}

// boolFilter implements the tri-state checkbox rule: only the literal
// string "true" narrows the filter; absence and "false" mean unfiltered.
func boolFilter(v string) bool {
	return v == "true"
}

// Scope composes the query into a gorm scope: case-insensitive title
// contains, type and checkbox predicates, then sort and pagination.
func (q *ListingQuery) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q.SearchTerm)+"%")

		if q.Type == "" {
			db = db.Where("type IN ?", []models.ListingType{models.ListingSale, models.ListingRent})
		} else {
			db = db.Where("type = ?", q.Type)
		}

		if q.Offer {
			db = db.Where("offer = ?", true)
		}
		if q.Furnished {
			db = db.Where("furnished = ?", true)
		}
		if q.Parking {
			db = db.Where("parking = ?", true)
		}

		return db.
			Order(q.SortColumn + " " + string(q.Order)).
			Offset(q.StartIndex).
			Limit(q.Limit)
	}
}
