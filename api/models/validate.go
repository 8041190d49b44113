package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldRule is a declarative constraint on a single string field. The same
// rule set drives validation for every entity instead of per-route checks.
type FieldRule struct {
	Name       string
	Value      string
	Required   bool
	MinLen     int
	MaxLen     int
	Pattern    *regexp.Regexp
	PatternMsg string
	Enum       map[string]bool
}

func (r FieldRule) check() (string, bool) {
	value := strings.TrimSpace(r.Value)

	if value == "" {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Name), false
		}
		return "", true
	}
	// Lengths are bounds on characters, not bytes, so multi-byte names
	// are not penalized.
	length := utf8.RuneCountInString(value)
	if r.MinLen > 0 && length < r.MinLen {
		return fmt.Sprintf("%s must be at least %d characters", r.Name, r.MinLen), false
	}
	if r.MaxLen > 0 && length > r.MaxLen {
		return fmt.Sprintf("%s must be at most %d characters", r.Name, r.MaxLen), false
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		msg := r.PatternMsg
		if msg == "" {
			msg = fmt.Sprintf("%s has an invalid format", r.Name)
		}
		return msg, false
	}
	if r.Enum != nil && !r.Enum[value] {
		return fmt.Sprintf("%s must be one of: %s", r.Name, strings.Join(enumKeys(r.Enum), ", ")), false
	}
	return "", true
}

func enumKeys(enum map[string]bool) []string {
	keys := make([]string, 0, len(enum))
	for k := range enum {
		keys = append(keys, k)
	}
	// stable order for error messages
	sort.Strings(keys)
	return keys
}

// ValidateFields evaluates every rule and collects all failures.
func ValidateFields(rules []FieldRule) []string {
	var errs []string
	for _, rule := range rules {
		if msg, ok := rule.check(); !ok {
			errs = append(errs, msg)
		}
	}
	return errs
}
