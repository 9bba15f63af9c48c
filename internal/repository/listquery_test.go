package repository

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListOptions_Defaults(t *testing.T) {
	opts := ParseListOptions(url.Values{}, FoodColumns)

	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, []string{"created_at DESC"}, opts.Order)
	assert.Empty(t, opts.Selects)
	assert.Empty(t, opts.Filters)
}

func TestParseListOptions_Pagination(t *testing.T) {
	opts := ParseListOptions(url.Values{
		"page":  {"3"},
		"limit": {"10"},
	}, FoodColumns)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 10, opts.Limit)
}

func TestParseListOptions_IgnoresInvalidPagination(t *testing.T) {
	opts := ParseListOptions(url.Values{
		"page":  {"-1"},
		"limit": {"zero"},
	}, FoodColumns)

	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 25, opts.Limit)
}

func TestParseListOptions_SelectWhitelist(t *testing.T) {
	opts := ParseListOptions(url.Values{
		"select": {"name,quantity,secret_column"},
	}, FoodColumns)

	assert.Equal(t, []string{"name", "quantity"}, opts.Selects)
}

func TestParseListOptions_Sort(t *testing.T) {
	opts := ParseListOptions(url.Values{
		"sort": {"-createdAt,name"},
	}, FoodColumns)

	assert.Equal(t, []string{"created_at DESC", "name"}, opts.Order)
}

func TestParseListOptions_Filters(t *testing.T) {
	opts := ParseListOptions(url.Values{
		"quantity[gte]": {"2"},
		"book":          {"false"},
	}, FoodColumns)

	require.Len(t, opts.Filters, 2)
	byColumn := map[string]Filter{}
	for _, f := range opts.Filters {
		byColumn[f.Column] = f
	}
	assert.Equal(t, Filter{Column: "quantity", Op: "gte", Value: "2"}, byColumn["quantity"])
	assert.Equal(t, Filter{Column: "booked", Op: "", Value: "false"}, byColumn["booked"])
}

func TestParseListOptions_RejectsUnknownFieldsAndOps(t *testing.T) {
	opts := ParseListOptions(url.Values{
		"drop_table[gte]": {"1"},
		"quantity[like]":  {"1"},
	}, FoodColumns)

	assert.Empty(t, opts.Filters)
}

func TestNewPagination_NextAndPrev(t *testing.T) {
	opts := ListOptions{Page: 2, Limit: 10}

	p := NewPagination(opts, 35)
	require.NotNil(t, p.Next)
	require.NotNil(t, p.Prev)
	assert.Equal(t, 3, p.Next.Page)
	assert.Equal(t, 1, p.Prev.Page)
}

func TestNewPagination_SinglePage(t *testing.T) {
	opts := ListOptions{Page: 1, Limit: 25}

	p := NewPagination(opts, 5)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Prev)
}
