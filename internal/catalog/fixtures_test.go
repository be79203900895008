package catalog

import (
	"fmt"
	"strconv"

	"catalog/navigator/internal/domain"
)

func node(id, name string, children ...*domain.CategoryNode) *domain.CategoryNode {
	return &domain.CategoryNode{ID: domain.CategoryID(id), Name: name, Children: children}
}

// electronicsTree is Electronics{Computers{Laptops, Desktops}, Phones{}}
func electronicsTree() domain.Tree {
	return domain.Tree{
		node("1", "Electronics",
			node("2", "Computers",
				node("3", "Laptops"),
				node("4", "Desktops"),
			),
			node("5", "Phones"),
		),
	}
}

func wideTree() domain.Tree {
	return domain.Tree{
		node("books", "Books",
			node("b1", "Cookbooks"),
			node("b2", "Notebooks"),
			node("b3", "Comic Books",
				node("b3a", "Manga Books"),
			),
		),
		node("games", "Board Games",
			node("g1", "Game Books"),
		),
		node("gear", "Gear",
			node("g2", "Bookends"),
			node("g3", "Book Lights"),
		),
	}
}

func names(nodes []*domain.CategoryNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

// chainTree is a single branch depth levels deep with ids "0" .. depth-1
func chainTree(depth int) domain.Tree {
	root := node("0", "level 0")
	deepest := root
	for i := 1; i < depth; i++ {
		child := node(strconv.Itoa(i), fmt.Sprintf("level %d", i))
		deepest.Children = []*domain.CategoryNode{child}
		deepest = child
	}
	return domain.Tree{root}
}
