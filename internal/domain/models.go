package domain

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is one candidate produced by a data source
type Entry struct {
	ID      string
	Display string                                 // text committed on selection
	Extra   *orderedmap.OrderedMap[string, string] // label -> value, in insertion order
}

// Repository represents a git repository found on disk
type Repository struct {
	Path        string
	Name        string
	DisplayName string // Name shown in UI, may include the parent dir for duplicates
	Branch      string
}

// NewExtra builds an ordered label map from alternating label/value pairs.
// A trailing label without a value is ignored.
func NewExtra(pairs ...string) *orderedmap.OrderedMap[string, string] {
	om := orderedmap.New[string, string]()
	for i := 0; i+1 < len(pairs); i += 2 {
		om.Set(pairs[i], pairs[i+1])
	}
	return om
}

// ParseExtra parses "label=value" fields into an ordered label map.
// Fields without '=' are skipped.
func ParseExtra(fields []string) *orderedmap.OrderedMap[string, string] {
	om := orderedmap.New[string, string]()
	for _, field := range fields {
		label, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		om.Set(label, strings.TrimSpace(value))
	}
	return om
}
