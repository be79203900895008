package client

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

const defaultTreeSelector = "ul.category-tree"

// Category links look like catalogList.asp?catType=B&catString=332.124 or /categories?cat=12
var categoryIDRegex = regexp.MustCompile(`[?&](?:catString|cat|category_id)=([^&#]+)`)

// TreePageParser reads a category tree rendered as nested HTML lists
type TreePageParser struct {
	selector string
}

func NewTreePageParser(selector string) *TreePageParser {
	if strings.TrimSpace(selector) == "" {
		selector = defaultTreeSelector
	}
	return &TreePageParser{selector: selector}
}

// Parse converts the first list matching the selector into raw nodes with
// id, name and children keys, ready for catalog.Normalize
func (p *TreePageParser) Parse(html []byte) ([]any, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	root := doc.Find(p.selector).First()
	if root.Length() == 0 {
		return nil, fmt.Errorf("no category list matches %q", p.selector)
	}

	items := p.items(root)
	log.Debugf("Parsed %d top-level categories from HTML", len(items))
	return items, nil
}

func (p *TreePageParser) items(list *goquery.Selection) []any {
	items := make([]any, 0)
	list.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		link := li.ChildrenFiltered("a").First()

		var name string
		if link.Length() > 0 {
			name = strings.TrimSpace(link.Text())
		} else {
			// text of the item itself, without the nested list
			name = strings.TrimSpace(li.Clone().Children().Remove().End().Text())
		}

		node := map[string]any{}
		if id := categoryID(li, link); id != "" {
			node["id"] = id
		}
		if name != "" {
			node["name"] = name
		}

		if sub := li.ChildrenFiltered("ul, ol").First(); sub.Length() > 0 {
			node["children"] = p.items(sub)
		}
		items = append(items, node)
	})
	return items
}

func categoryID(li, link *goquery.Selection) string {
	if id := strings.TrimSpace(li.AttrOr("data-id", "")); id != "" {
		return id
	}
	if id := strings.TrimSpace(link.AttrOr("data-id", "")); id != "" {
		return id
	}
	if matches := categoryIDRegex.FindStringSubmatch(link.AttrOr("href", "")); len(matches) > 1 {
		return matches[1]
	}
	return ""
}
