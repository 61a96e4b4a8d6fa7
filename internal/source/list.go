package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sahilm/fuzzy"

	"typeahead/internal/domain"
)

// entries adapts a slice of entries to fuzzy.Source
type entries []domain.Entry

func (e entries) String(i int) string { return e[i].Display }
func (e entries) Len() int            { return len(e) }

// ListSource ranks an in-memory catalog with fuzzy matching
type ListSource struct {
	name    string
	entries entries
}

// NewListSource creates a source over a fixed catalog
func NewListSource(name string, list []domain.Entry) *ListSource {
	return &ListSource{name: name, entries: list}
}

// Name returns where the catalog came from
func (s *ListSource) Name() string {
	return s.name
}

// Len returns the catalog size
func (s *ListSource) Len() int {
	return len(s.entries)
}

// Search returns the entries matching query, best match first. An empty
// query matches everything in catalog order.
func (s *ListSource) Search(ctx context.Context, query string) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		out := make([]domain.Entry, len(s.entries))
		copy(out, s.entries)
		return out, nil
	}

	matches := fuzzy.FindFrom(query, s.entries)
	out := make([]domain.Entry, 0, len(matches))
	for _, match := range matches {
		out = append(out, s.entries[match.Index])
	}
	return out, nil
}

// ParseLines reads one entry per line. A line is the display text,
// optionally followed by tab separated label=value fields. Blank lines and
// lines starting with '#' are skipped. The ID is the line number.
func ParseLines(r io.Reader) ([]domain.Entry, error) {
	var out []domain.Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		display := strings.TrimSpace(fields[0])
		if display == "" {
			continue
		}
		out = append(out, domain.Entry{
			ID:      strconv.Itoa(lineNo),
			Display: display,
			Extra:   domain.ParseExtra(fields[1:]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type catalogFile struct {
	Entry []catalogEntry `toml:"entry"`
}

type catalogEntry struct {
	ID      string   `toml:"id"`
	Display string   `toml:"display"`
	Extra   []string `toml:"extra"` // "label=value"
}

// LoadCatalog reads a TOML catalog of [[entry]] tables. Entries without an
// id get their position; ids must be unique.
func LoadCatalog(path string) ([]domain.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	out := make([]domain.Entry, 0, len(file.Entry))
	seen := make(map[string]bool, len(file.Entry))
	for i, e := range file.Entry {
		if strings.TrimSpace(e.Display) == "" {
			return nil, fmt.Errorf("catalog %s: entry %d has no display text", path, i+1)
		}
		id := e.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		if seen[id] {
			return nil, fmt.Errorf("catalog %s: duplicate id %q", path, id)
		}
		seen[id] = true

		out = append(out, domain.Entry{
			ID:      id,
			Display: e.Display,
			Extra:   domain.ParseExtra(e.Extra),
		})
	}
	return out, nil
}
