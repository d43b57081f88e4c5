package query

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/internal/models"
)

func TestParse_Defaults(t *testing.T) {
	q, err := Parse(url.Values{})

	assert.NoError(t, err)
	assert.Equal(t, "", q.SearchTerm)
	assert.Equal(t, models.ListingType(""), q.Type)
	assert.False(t, q.Offer)
	assert.False(t, q.Furnished)
	assert.False(t, q.Parking)
	assert.Equal(t, 9, q.Limit)
	assert.Equal(t, 0, q.StartIndex)
	assert.Equal(t, "created_at", q.SortColumn)
	assert.Equal(t, OrderDesc, q.Order)
}

func TestParse_TriStateBooleans(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		filtered bool
	}{
		{"literal true filters", "true", true},
		{"explicit false does not filter", "false", false},
		{"absent does not filter", "", false},
		{"anything else does not filter", "1", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := url.Values{}
			if tc.value != "" {
				params.Set("offer", tc.value)
				params.Set("furnished", tc.value)
				params.Set("parking", tc.value)
			}

			q, err := Parse(params)
			assert.NoError(t, err)
			assert.Equal(t, tc.filtered, q.Offer)
			assert.Equal(t, tc.filtered, q.Furnished)
			assert.Equal(t, tc.filtered, q.Parking)
		})
	}
}

func TestParse_TypeAliasing(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected models.ListingType
	}{
		{"absent means both", "", ""},
		{"all means both", "all", ""},
		{"rent", "rent", models.ListingRent},
		{"sale", "sale", models.ListingSale},
		// Unknown values pass through and match nothing
		{"unknown passes through", "mansion", models.ListingType("mansion")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := url.Values{}
			if tc.value != "" {
				params.Set("type", tc.value)
			}

			q, err := Parse(params)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, q.Type)
		})
	}
}

func TestParse_MalformedNumerics(t *testing.T) {
	testCases := []struct {
		name   string
		params url.Values
	}{
		{"non-numeric limit", url.Values{"limit": {"abc"}}},
		{"zero limit", url.Values{"limit": {"0"}}},
		{"negative limit", url.Values{"limit": {"-3"}}},
		{"non-numeric startIndex", url.Values{"startIndex": {"four"}}},
		{"negative startIndex", url.Values{"startIndex": {"-1"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.params)

			var appErr *apperr.Error
			assert.Error(t, err)
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
		})
	}
}

func TestParse_ValidNumerics(t *testing.T) {
	q, err := Parse(url.Values{"limit": {"4"}, "startIndex": {"8"}})

	assert.NoError(t, err)
	assert.Equal(t, 4, q.Limit)
	assert.Equal(t, 8, q.StartIndex)
}

func TestParse_SortWhitelist(t *testing.T) {
	q, err := Parse(url.Values{"sort": {"regularPrice"}, "order": {"asc"}})
	assert.NoError(t, err)
	assert.Equal(t, "regular_price", q.SortColumn)
	assert.Equal(t, OrderAsc, q.Order)

	// Unknown sort names fall back to createdAt instead of failing
	q, err = Parse(url.Values{"sort": {"password_hash"}})
	assert.NoError(t, err)
	assert.Equal(t, "created_at", q.SortColumn)
}

func TestParse_OrderDefaultsToDesc(t *testing.T) {
	for _, value := range []string{"desc", "descending", "DESC", "random"} {
		q, err := Parse(url.Values{"order": {value}})
		assert.NoError(t, err)
		assert.Equal(t, OrderDesc, q.Order, "order=%q", value)
	}
}
