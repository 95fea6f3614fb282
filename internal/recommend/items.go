package recommend

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Item is one ranked recommendation.
type Item struct {
	ID    string
	Score *float64
}

var idKeys = []string{"id", "perfumeId", "_id", "ID Perfume", "perfume_id"}

var scoreKeys = []string{"score", "similarity", "similarity_score"}

// ParseItems extracts ranked identifiers from any supported response shape.
// Duplicate ids keep their first (best) rank.
func ParseItems(raw []byte) ([]Item, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body interface{}
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrUpstream, err)
	}

	var list []interface{}
	switch t := body.(type) {
	case []interface{}:
		list = t
	case map[string]interface{}:
		if recs, ok := t["recommendations"].([]interface{}); ok {
			list = recs
		} else if ids, ok := t["ids"].([]interface{}); ok {
			list = ids
		} else if msg, ok := t["error"].(string); ok {
			if strings.Contains(strings.ToLower(msg), "not found") {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, msg)
			}
			return nil, fmt.Errorf("%w: %s", ErrUpstream, msg)
		} else {
			return nil, fmt.Errorf("%w: unexpected response shape", ErrUpstream)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected response shape", ErrUpstream)
	}

	items := make([]Item, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, entry := range list {
		item, ok := itemFrom(entry)
		if !ok || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	return items, nil
}

func itemFrom(entry interface{}) (Item, bool) {
	switch t := entry.(type) {
	case map[string]interface{}:
		for _, key := range idKeys {
			if id := scalarString(t[key]); id != "" {
				return Item{ID: id, Score: scoreFrom(t)}, true
			}
		}
		return Item{}, false
	default:
		id := scalarString(t)
		return Item{ID: id}, id != ""
	}
}

// scalarString renders string and numeric ids; 12.0 becomes "12".
func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return strconv.FormatInt(n, 10)
		}
		if f, err := t.Float64(); err == nil && f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return t.String()
	case map[string]interface{}:
		// Extended JSON: {"$oid": "..."}
		if oid, ok := t["$oid"].(string); ok {
			return strings.TrimSpace(oid)
		}
	}
	return ""
}

func scoreFrom(m map[string]interface{}) *float64 {
	for _, key := range scoreKeys {
		if n, ok := m[key].(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				return &f
			}
		}
	}
	return nil
}

// IDs returns just the identifiers of items, in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
