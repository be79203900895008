package catalog

import (
	"sort"
	"strings"

	"catalog/navigator/internal/domain"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultSearchLimit is how many global search matches are shown before "+K more"
const DefaultSearchLimit = 5

// Entry is one node of the flattened tree with its depth and ancestor chain
type Entry struct {
	Node  *domain.CategoryNode   `json:"node"`
	Level int                    `json:"level"` // 0 for roots
	Path  []*domain.CategoryNode `json:"path"`  // root-to-node, node included
}

// Breadcrumb renders the entry path the same way a committed selection does
func (e Entry) Breadcrumb() string {
	return domain.Breadcrumb(e.Path)
}

// Flatten lists every node once, in the same depth-first order FindPath uses
func Flatten(tree domain.Tree) []Entry {
	var entries []Entry
	walk(tree, func(node *domain.CategoryNode, chain []*domain.CategoryNode) bool {
		entries = append(entries, Entry{
			Node:  node,
			Level: len(chain) - 1,
			Path:  append([]*domain.CategoryNode(nil), chain...),
		})
		return true
	})
	return entries
}

// Result is the outcome of a global search
type Result struct {
	Term      string  `json:"term"`
	Matches   []Entry `json:"matches"`   // first matches in traversal order, at most the limit
	Total     int     `json:"total"`     // every match
	Remaining int     `json:"remaining"` // Total - len(Matches), shown as "+K more"
}

func (r Result) Empty() bool {
	return r.Total == 0
}

// SearchIndex answers whole-tree substring queries over the flattened tree
type SearchIndex struct {
	entries []Entry
	names   []string
	lowered []string
	limit   int
}

func NewSearchIndex(tree domain.Tree, limit int) *SearchIndex {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	entries := Flatten(tree)
	names := make([]string, len(entries))
	lowered := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Node.Name
		lowered[i] = strings.ToLower(entry.Node.Name)
	}
	return &SearchIndex{
		entries: entries,
		names:   names,
		lowered: lowered,
		limit:   limit,
	}
}

func (s *SearchIndex) Len() int {
	return len(s.entries)
}

// Entries returns the flattened tree
func (s *SearchIndex) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Search matches term case-insensitively against node names. Spaces in the
// term are significant. Results keep traversal order. An empty or blank term
// matches nothing.
func (s *SearchIndex) Search(term string) Result {
	result := Result{Term: term}
	if strings.TrimSpace(term) == "" {
		return result
	}
	needle := strings.ToLower(term)

	for i, name := range s.lowered {
		if !strings.Contains(name, needle) {
			continue
		}
		result.Total++
		if len(result.Matches) < s.limit {
			result.Matches = append(result.Matches, s.entries[i])
		}
	}
	result.Remaining = result.Total - len(result.Matches)
	return result
}

// Suggest returns up to n distinct names that fuzzily match term, closest first
func (s *SearchIndex) Suggest(term string, n int) []string {
	needle := strings.TrimSpace(term)
	if needle == "" || n <= 0 {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(needle, s.names)
	sort.Stable(ranks)

	seen := make(map[string]struct{}, n)
	suggestions := make([]string, 0, n)
	for _, rank := range ranks {
		if _, ok := seen[rank.Target]; ok {
			continue
		}
		seen[rank.Target] = struct{}{}
		suggestions = append(suggestions, rank.Target)
		if len(suggestions) == n {
			break
		}
	}
	return suggestions
}
