package console

import (
	"fmt"
	"strings"

	"catalog/navigator/internal/catalog"
	"catalog/navigator/internal/domain"
	"catalog/navigator/internal/navigator"

	"charm.land/lipgloss/v2"
)

const (
	activeMarker   = "▸ "
	inactiveMarker = "  "
	branchSuffix   = " ›"
	columnGap      = 3
)

// RenderPanels lays the visible panels out side by side, one column per level
func RenderPanels(c *navigator.Controller) string {
	visible := c.VisibleLevels()
	if visible == 0 {
		return "navigator is closed"
	}
	if c.Catalog().IsEmpty() {
		return "No categories found"
	}

	active := c.ActivePath()
	filters := c.PanelSearch()
	columns := make([]string, 0, visible)
	for level := 0; level < visible; level++ {
		columns = append(columns, renderColumn(level, c.Level(level), active, filters.Term(level)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padColumns(columns)...)
}

func renderColumn(level int, nodes []*domain.CategoryNode, active []domain.CategoryID, filter string) string {
	lines := make([]string, 0, len(nodes)+1)
	header := fmt.Sprintf("[%d]", level)
	if strings.TrimSpace(filter) != "" {
		header += fmt.Sprintf(" /%s", filter)
	}
	lines = append(lines, header)

	if len(nodes) == 0 {
		lines = append(lines, inactiveMarker+"(empty)")
	}
	for _, node := range nodes {
		marker := inactiveMarker
		if level < len(active) && active[level] == node.ID {
			marker = activeMarker
		}
		line := fmt.Sprintf("%s%s (%s)", marker, node.Name, node.ID)
		if node.HasChildren() {
			line += branchSuffix
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// padColumns right-pads every row so the columns line up when joined
func padColumns(columns []string) []string {
	out := make([]string, len(columns))
	for i, column := range columns {
		rows := strings.Split(column, "\n")
		width := 0
		for _, row := range rows {
			width = max(width, lipgloss.Width(row))
		}
		if i < len(columns)-1 {
			width += columnGap
		}
		for j, row := range rows {
			if w := lipgloss.Width(row); w < width {
				rows[j] = row + strings.Repeat(" ", width-w)
			}
		}
		out[i] = strings.Join(rows, "\n")
	}
	return out
}

// RenderResults lists the shown matches with their breadcrumbs
func RenderResults(result catalog.Result, suggestions []string) string {
	if result.Empty() {
		msg := fmt.Sprintf("No categories match %q", result.Term)
		if len(suggestions) > 0 {
			msg += fmt.Sprintf(". Did you mean: %s?", strings.Join(suggestions, ", "))
		}
		return msg
	}

	lines := make([]string, 0, len(result.Matches)+1)
	for i, entry := range result.Matches {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)  %s", i+1, entry.Node.Name, entry.Node.ID, entry.Breadcrumb()))
	}
	if result.Remaining > 0 {
		lines = append(lines, fmt.Sprintf("+%d more", result.Remaining))
	}
	return strings.Join(lines, "\n")
}

// RenderTree prints the whole forest, one category per line, indented by depth
func RenderTree(tree domain.Tree) string {
	if len(tree) == 0 {
		return "No categories found"
	}
	var b strings.Builder
	for _, entry := range catalog.Flatten(tree) {
		fmt.Fprintf(&b, "%s%s (%s)\n", strings.Repeat("  ", entry.Level), entry.Node.Name, entry.Node.ID)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
