package export

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dotNetDatePattern matches the Unleashed wire format "/Date(1700000000000)/",
// optionally carrying a "+1300"-style offset suffix.
var dotNetDatePattern = regexp.MustCompile(`^/Date\((-?\d+)(?:[+-]\d{4})?\)/$`)

// ParseDotNetDate converts the vendor's millisecond-epoch date format into a
// UTC calendar time. The offset suffix, when present, is stripped rather than
// converted; consumers are UTC-only. Any value that is not a well-formed date
// string resolves to nil so that one malformed field never aborts a whole
// resource's extraction.
func ParseDotNetDate(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	m := dotNetDatePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

// DotNetDate is ParseDotNetDate with an any-typed result for direct use as a
// row cell; a failed parse yields an untyped nil instead of a typed nil
// pointer.
func DotNetDate(v any) any {
	if t := ParseDotNetDate(v); t != nil {
		return *t
	}
	return nil
}
