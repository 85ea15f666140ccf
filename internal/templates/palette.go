package templates

import (
	"fmt"

	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/zclconf/go-cty/cty"
)

// Category is a top-level palette heading.
type Category struct {
	ID       string
	Title    string
	Sections []Section
}

// Section groups related palette items under a category.
type Section struct {
	ID    string
	Title string
	Items []Item
}

// Item is one draggable palette entry. Non-draggable items describe edge
// kinds and only carry a hint.
type Item struct {
	Label     string
	Type      string
	Hint      string
	Draggable bool
	Data      graphmodel.Data
}

type categoryBlock struct {
	ID       string          `hcl:"id,label"`
	Title    string          `hcl:"title"`
	Sections []*sectionBlock `hcl:"section,block"`
}

type sectionBlock struct {
	ID    string       `hcl:"id,label"`
	Title string       `hcl:"title"`
	Items []*itemBlock `hcl:"item,block"`
}

type itemBlock struct {
	Label     string    `hcl:"label,label"`
	Type      string    `hcl:"type"`
	Hint      string    `hcl:"hint,optional"`
	Draggable *bool     `hcl:"draggable,optional"`
	Data      cty.Value `hcl:"data,optional"`
}

func (cb *categoryBlock) build() (Category, error) {
	c := Category{ID: cb.ID, Title: cb.Title}
	for _, sb := range cb.Sections {
		s := Section{ID: sb.ID, Title: sb.Title}
		for _, ib := range sb.Items {
			data, err := toData(ib.Data)
			if err != nil {
				return Category{}, fmt.Errorf("item %q: %w", ib.Label, err)
			}
			s.Items = append(s.Items, Item{
				Label:     ib.Label,
				Type:      ib.Type,
				Hint:      ib.Hint,
				Draggable: ib.Draggable == nil || *ib.Draggable,
				Data:      data,
			})
		}
		c.Sections = append(c.Sections, s)
	}
	return c, nil
}

// Categories returns the palette tree.
func (l *Library) Categories() []Category {
	return append([]Category(nil), l.categories...)
}

// Items returns every draggable palette item in palette order.
func (l *Library) Items() []Item {
	var items []Item
	for _, c := range l.categories {
		for _, s := range c.Sections {
			for _, it := range s.Items {
				if it.Draggable {
					items = append(items, it)
				}
			}
		}
	}
	return items
}

// Item finds a palette item by its label.
func (l *Library) Item(label string) (Item, bool) {
	for _, c := range l.categories {
		for _, s := range c.Sections {
			for _, it := range s.Items {
				if it.Label == label {
					return it, true
				}
			}
		}
	}
	return Item{}, false
}

// Node builds the node dropped for it at p. Items without a data label
// use the palette label.
func (it Item) Node(id string, p graphmodel.Point) graphmodel.Node {
	data := it.Data.Clone()
	if data == nil {
		data = graphmodel.Data{}
	}
	if _, ok := data["label"]; !ok {
		data["label"] = it.Label
	}
	n := graphmodel.Node{ID: id, Type: it.Type, Position: p, Data: data}
	if n.IsGroup() {
		w, _ := data.Number("width")
		n.Style = &graphmodel.NodeStyle{Width: graphmodel.Float(max(w, 200)), Height: graphmodel.Float(120)}
	}
	return n
}
