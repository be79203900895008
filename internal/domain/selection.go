package domain

import "strings"

// BreadcrumbSeparator joins category names in a rendered breadcrumb
const BreadcrumbSeparator = " > "

// Selection is the result of committing a category in the navigator
type Selection struct {
	Node       *CategoryNode   `json:"node"`       // Committed category
	Path       []*CategoryNode `json:"path"`       // Root-to-node chain, node included
	Breadcrumb string          `json:"breadcrumb"` // Complete path as string "Electronics > Computers > Desktops"
}

// Breadcrumb renders the names of the chain joined by BreadcrumbSeparator
func Breadcrumb(path []*CategoryNode) string {
	names := make([]string, 0, len(path))
	for _, node := range path {
		names = append(names, node.Name)
	}
	return strings.Join(names, BreadcrumbSeparator)
}

// PathIDs returns the ids along the selection path
func (s Selection) PathIDs() []CategoryID {
	return IDs(s.Path)
}
