package report

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	filterSeparator = ","
	globMetaChars   = "*?[{"
)

// TargetFilter is an ordered, de-duplicated set of target names.
// An entry that contains glob meta characters is matched as a doublestar pattern.
type TargetFilter []string

// ParseTargetFilter splits a comma separated list of target names.
// Whitespace around each name is trimmed, empty entries are dropped,
// and duplicates keep their first position.
func ParseTargetFilter(raw string) TargetFilter {
	var filter TargetFilter
	seen := make(map[string]bool)
	for _, name := range strings.Split(raw, filterSeparator) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		filter = append(filter, name)
	}
	return filter
}

// Empty reports whether the filter selects every target.
func (f TargetFilter) Empty() bool {
	return len(f) == 0
}

// Validate checks that every pattern entry is well formed.
func (f TargetFilter) Validate() error {
	for _, entry := range f {
		if isPattern(entry) && !doublestar.ValidatePattern(entry) {
			return fmt.Errorf("invalid target pattern %q: %w", entry, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// matches reports whether entry selects the target called name.
// An exact name always matches, even when it contains glob meta characters.
func matches(entry, name string) bool {
	if entry == name {
		return true
	}
	if !isPattern(entry) {
		return false
	}
	ok, err := doublestar.Match(entry, name)
	return err == nil && ok
}

func isPattern(entry string) bool {
	return strings.ContainsAny(entry, globMetaChars)
}
