package client

import (
	"context"
	"fmt"

	"catalog/navigator/internal/catalog"
	"catalog/navigator/internal/domain"
)

// Format is the encoding of a fetched category payload
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// Payload is the raw body returned by the category fetch service
type Payload struct {
	Source string
	Format Format
	Body   []byte
}

// Source fetches the raw category tree
type Source interface {
	Fetch(ctx context.Context) (*Payload, error)
	Name() string
}

// Tree normalizes the payload. JSON bodies never fail: unreadable JSON is an
// empty forest. HTML bodies fail only when no category list is found.
func (p *Payload) Tree(parser *TreePageParser) (domain.Tree, catalog.NormalizeStats, error) {
	switch p.Format {
	case FormatHTML:
		if parser == nil {
			parser = NewTreePageParser("")
		}
		raw, err := parser.Parse(p.Body)
		if err != nil {
			return domain.Tree{}, catalog.NormalizeStats{}, fmt.Errorf("failed to parse category page: %w", err)
		}
		tree, stats := catalog.NormalizeWithStats(raw)
		return tree, stats, nil
	default:
		tree, stats := catalog.NormalizeJSONWithStats(p.Body)
		return tree, stats, nil
	}
}
