package util

import (
	"database/sql"
	"strconv"
	"strings"
)

// CleanText trims a cell or form value. The "nan" sentinel spreadsheets
// produce for empty cells collapses to the empty string.
func CleanText(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, "nan") {
		return ""
	}
	return trimmed
}

// CoerceInt parses a numeric cell into a nullable integer. Thousands
// separators are stripped and decimal text is truncated toward zero;
// anything unparseable is absent rather than an error.
func CoerceInt(value string) sql.NullInt64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if cleaned == "" || strings.EqualFold(cleaned, "nan") {
		return sql.NullInt64{}
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(f), Valid: true}
}

// Contains checks if a string slice contains a specific item
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
