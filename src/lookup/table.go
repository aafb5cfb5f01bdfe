// Package lookup decodes numeric game ids into localized names.
package lookup

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Table is either list-indexed (id is a 0-based position) or key-indexed.
// Lookups never fail: anything absent becomes Unknown_<id>.
type Table struct {
	list  []string
	keyed map[string]string
}

func ListTable(names []string) Table {
	return Table{list: append([]string(nil), names...)}
}

func KeyedTable(names map[string]string) Table {
	keyed := make(map[string]string, len(names))
	for k, v := range names {
		keyed[k] = v
	}
	return Table{keyed: keyed}
}

func Unknown(id string) string {
	return "Unknown_" + id
}

func (t Table) Name(id string) string {
	id = strings.TrimSpace(id)
	if t.keyed != nil {
		if name, ok := t.keyed[id]; ok {
			return name
		}
		return Unknown(id)
	}
	index, err := strconv.Atoi(id)
	if err != nil {
		return Unknown(id)
	}
	return t.Index(index)
}

func (t Table) Index(i int) string {
	if t.keyed != nil {
		return t.Name(strconv.Itoa(i))
	}
	if i < 0 || i >= len(t.list) {
		return Unknown(strconv.Itoa(i))
	}
	return t.list[i]
}

// RawName accepts an id as it appears in a payload, either a JSON number or
// a JSON string.
func (t Table) RawName(raw json.RawMessage) string {
	return t.Name(RawID(raw))
}

func RawID(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return strings.TrimSpace(string(raw))
}

// LoadTable reads one asset file and picks the table stored under key.
func LoadTable(path, key string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	var document map[string]json.RawMessage
	if err := json.Unmarshal(data, &document); err != nil {
		return Table{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	raw, ok := document[key]
	if !ok {
		return Table{}, fmt.Errorf("%s has no %q table", path, key)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return ListTable(list), nil
	}
	var keyed map[string]string
	if err := json.Unmarshal(raw, &keyed); err == nil {
		return KeyedTable(keyed), nil
	}
	return Table{}, fmt.Errorf("%s: %q is neither a list nor a map of names", path, key)
}
