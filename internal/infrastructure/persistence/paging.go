package persistence

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// applyPaging orders by the whitelisted sort field and pages the query.
// Rows with equal sort keys are ordered by id so pages never overlap.
func applyPaging(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if field != "id" {
		query = query.Order("id ASC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// applySearch matches the term case-insensitively against any of the columns
func applySearch(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(term) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// boolValue reads an optional boolean predicate. Absent or unparsable values
// report ok=false and the predicate is skipped.
func boolValue(v interface{}) (value bool, ok bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case *bool:
		if b == nil {
			return false, false
		}
		return *b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return false, false
}

// stringValue reads an optional string predicate. A key present in the filter
// is a predicate even when its value is blank; only a nil *string is absent.
func stringValue(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case *string:
		if s == nil {
			return "", false
		}
		return stringValue(*s)
	case fmt.Stringer:
		return stringValue(s.String())
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return stringValue(rv.String())
	}
	return "", false
}

// uuidValue reads an optional id predicate
func uuidValue(v interface{}) (uuid.UUID, bool) {
	switch id := v.(type) {
	case uuid.UUID:
		return id, id != uuid.Nil
	case *uuid.UUID:
		if id == nil {
			return uuid.Nil, false
		}
		return *id, *id != uuid.Nil
	case string:
		parsed, err := uuid.Parse(strings.TrimSpace(id))
		if err != nil {
			return uuid.Nil, false
		}
		return parsed, parsed != uuid.Nil
	}
	return uuid.Nil, false
}

// timeValue reads an optional time predicate
func timeValue(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	}
	return time.Time{}, false
}
