package store

import (
	"strings"

	"github.com/spler/influencer-hub/internal/domain"
)

// searchFields are the text columns a free-text query matches against.
var searchFields = []string{
	domain.ColInfluencerID,
	domain.ColAccountName,
	domain.ColPlatform,
	domain.ColCategoryMain,
	domain.ColCategorySub,
	domain.ColProfileURL,
	domain.ColInstagramUsername,
	domain.ColContactEmail,
	domain.ColAgency,
	domain.ColFollowerRange,
	domain.ColDMMessage,
	domain.ColNotes,
}

// Filter captures the optional list-view query parameters. The zero value
// matches every record.
type Filter struct {
	Query        string
	Platform     string
	CategoryMain string
	CategorySub  string
}

// NewFilter trims each parameter; whitespace-only values do not filter.
func NewFilter(query, platform, categoryMain, categorySub string) Filter {
	return Filter{
		Query:        strings.TrimSpace(query),
		Platform:     strings.TrimSpace(platform),
		CategoryMain: strings.TrimSpace(categoryMain),
		CategorySub:  strings.TrimSpace(categorySub),
	}
}

// Empty reports whether the filter matches the whole table. Bulk operations
// against an empty filter require explicit confirmation at the route layer.
func (f Filter) Empty() bool {
	return f.Query == "" && f.Platform == "" && f.CategoryMain == "" && f.CategorySub == ""
}

// Clause renders the filter as a WHERE fragment with `?` placeholders plus
// its positional arguments. An empty filter yields an empty clause.
// Free-text LIKE terms are ORed across the searchable fields; exact-match
// filters are ANDed on.
func (f Filter) Clause() (string, []any) {
	var conds []string
	var args []any

	if f.Query != "" {
		like := "%" + f.Query + "%"
		parts := make([]string, len(searchFields))
		for i, field := range searchFields {
			parts[i] = field + " LIKE ?"
			args = append(args, like)
		}
		conds = append(conds, "("+strings.Join(parts, " OR ")+")")
	}
	if f.Platform != "" {
		conds = append(conds, "platform = ?")
		args = append(args, f.Platform)
	}
	if f.CategoryMain != "" {
		conds = append(conds, "category_main = ?")
		args = append(args, f.CategoryMain)
	}
	if f.CategorySub != "" {
		conds = append(conds, "category_sub = ?")
		args = append(args, f.CategorySub)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// ResolveColumns validates a comma-separated column selection against the
// registry. An empty or entirely invalid selection falls back to every
// column.
func ResolveColumns(columnsParam string) []string {
	columnsParam = strings.TrimSpace(columnsParam)
	if columnsParam == "" {
		return append([]string(nil), domain.AllColumns...)
	}
	var selected []string
	for _, col := range strings.Split(columnsParam, ",") {
		if domain.IsColumn(col) {
			selected = append(selected, col)
		}
	}
	if len(selected) == 0 {
		return append([]string(nil), domain.AllColumns...)
	}
	return selected
}
