package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"catalog/navigator/internal/domain"

	log "github.com/sirupsen/logrus"
)

var (
	nameKeys     = []string{"category_name", "name", "title"}
	childrenKeys = []string{"children", "subcategories", "childCategories"}
)

// NormalizeStats describes what a normalization pass kept and skipped
type NormalizeStats struct {
	Kept        int `json:"kept"`
	Dropped     int `json:"dropped"`     // nodes without id and name, non-object entries
	Synthesized int `json:"synthesized"` // nodes that received a positional id
	Duplicates  int `json:"duplicates"`  // ids already seen earlier in document order
}

// NormalizeJSON decodes a raw payload and normalizes it. Undecodable input yields an empty forest.
func NormalizeJSON(data []byte) domain.Tree {
	tree, _ := NormalizeJSONWithStats(data)
	return tree
}

// NormalizeJSONWithStats is NormalizeJSON that also reports what was skipped
func NormalizeJSONWithStats(data []byte) (domain.Tree, NormalizeStats) {
	raw, err := decodePayload(data)
	if err != nil {
		log.Debugf("Category payload is not valid JSON: %v", err)
		return domain.Tree{}, NormalizeStats{}
	}
	return NormalizeWithStats(raw)
}

// Normalize converts a loosely shaped payload into the canonical tree
func Normalize(raw any) domain.Tree {
	tree, _ := NormalizeWithStats(raw)
	return tree
}

// NormalizeWithStats accepts a bare node list, {success, data} or {data}.
// It never fails: anything it cannot read is skipped.
func NormalizeWithStats(raw any) (domain.Tree, NormalizeStats) {
	n := &normalizer{seen: make(map[domain.CategoryID]struct{})}
	items, ok := unwrapEnvelope(raw)
	if !ok {
		log.Debugf("Category payload has no recognizable node list (%T)", raw)
		return domain.Tree{}, n.stats
	}

	tree := domain.Tree(n.nodes(items, nil))
	if tree == nil {
		tree = domain.Tree{}
	}
	log.Debugf("Normalized category tree: kept=%d dropped=%d synthesized=%d duplicates=%d",
		n.stats.Kept, n.stats.Dropped, n.stats.Synthesized, n.stats.Duplicates)
	return tree, n.stats
}

func decodePayload(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func unwrapEnvelope(raw any) ([]any, bool) {
	if list, ok := asList(raw); ok {
		return list, true
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	if success, ok := fields["success"].(bool); ok && !success {
		return nil, false
	}
	return asList(fields["data"])
}

type normalizer struct {
	stats NormalizeStats
	seen  map[domain.CategoryID]struct{}
}

func (n *normalizer) nodes(items []any, position []int) []*domain.CategoryNode {
	if len(items) == 0 {
		return nil
	}

	out := make([]*domain.CategoryNode, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			n.stats.Dropped++
			continue
		}

		id, hasID := scalarString(fields["id"])
		name := firstName(fields)
		if !hasID && name == "" {
			n.stats.Dropped++
			continue
		}

		pos := append(position[:len(position):len(position)], i)
		if !hasID {
			id = positionalID(pos)
			n.stats.Synthesized++
		}
		if name == "" {
			name = id
		}

		categoryID := domain.CategoryID(id)
		if _, dup := n.seen[categoryID]; dup {
			n.stats.Duplicates++
		} else {
			n.seen[categoryID] = struct{}{}
		}

		node := &domain.CategoryNode{ID: categoryID, Name: name}
		n.stats.Kept++
		node.Children = n.nodes(firstChildren(fields), pos)
		out = append(out, node)
	}
	return out
}

func firstName(fields map[string]any) string {
	for _, key := range nameKeys {
		if name, ok := scalarString(fields[key]); ok {
			return name
		}
	}
	return ""
}

func firstChildren(fields map[string]any) []any {
	for _, key := range childrenKeys {
		if list, ok := asList(fields[key]); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}

// positionalID names an id-less node after its indices along the ancestor chain, e.g. "~0.2.1"
func positionalID(pos []int) string {
	parts := make([]string, len(pos))
	for i, p := range pos {
		parts[i] = strconv.Itoa(p)
	}
	return "~" + strings.Join(parts, ".")
}

func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []map[string]any:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func scalarString(v any) (string, bool) {
	var s string
	switch value := v.(type) {
	case string:
		s = strings.TrimSpace(value)
	case json.Number:
		s = value.String()
	case float64:
		s = strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		s = strconv.Itoa(value)
	case int64:
		s = strconv.FormatInt(value, 10)
	default:
		return "", false
	}
	return s, s != ""
}
