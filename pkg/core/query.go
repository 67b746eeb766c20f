package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Default pagination bounds applied when a QueryOption leaves them blank.
const (
	DefaultLimitStart = "0"
	DefaultLimitEnd   = "100"
)

// QueryOption holds the optional clauses of a data preview query.
// Where and Order are inserted verbatim; callers own their safety.
type QueryOption struct {
	Where      string `json:"where,omitempty" yaml:"where,omitempty"`
	Order      string `json:"order,omitempty" yaml:"order,omitempty"`
	LimitStart string `json:"limit_start,omitempty" yaml:"limit_start,omitempty"`
	LimitEnd   string `json:"limit_end,omitempty" yaml:"limit_end,omitempty"`
}

// QueryData identifies the table to preview and how.
type QueryData struct {
	SchemaName string      `json:"schema" yaml:"schema"`
	TableName  string      `json:"table" yaml:"table"`
	Option     QueryOption `json:"option" yaml:"option"`
}

// Bounds returns the limit bounds with defaults applied to blank values.
func (o QueryOption) Bounds() (start, end string) {
	start = strings.TrimSpace(o.LimitStart)
	if start == "" {
		start = DefaultLimitStart
	}
	end = strings.TrimSpace(o.LimitEnd)
	if end == "" {
		end = DefaultLimitEnd
	}
	return start, end
}

// HasWhere reports whether a non-blank predicate is set.
func (o QueryOption) HasWhere() bool {
	return strings.TrimSpace(o.Where) != ""
}

// HasOrder reports whether a non-blank ordering is set.
func (o QueryOption) HasOrder() bool {
	return strings.TrimSpace(o.Order) != ""
}

// Validate checks that the limit bounds are non-negative integers.
func (o QueryOption) Validate() error {
	start, end := o.Bounds()
	for _, b := range []struct{ name, value string }{
		{"limit_start", start},
		{"limit_end", end},
	} {
		n, err := strconv.Atoi(b.value)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", b.name, b.value)
		}
		if n < 0 {
			return fmt.Errorf("%s must not be negative, got %d", b.name, n)
		}
	}
	return nil
}
