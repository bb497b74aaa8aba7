package app

import (
	"strings"

	"github.com/tidwall/sjson"

	"github.com/dshills/listkit/internal/list"
)

// Result is the outcome of a run.
type Result struct {
	// List is the list name.
	List string

	// Cancelled is set when the user quit without choosing.
	Cancelled bool

	// Action is the index of the activated item, or -1.
	Action int

	// Items holds the chosen items in index order.
	Items []ResultItem
}

// ResultItem is one chosen item.
type ResultItem struct {
	Index int
	Text  string
	Value string
}

// Lines returns the chosen values one per line.
func (r Result) Lines() string {
	if len(r.Items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, it := range r.Items {
		b.WriteString(it.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON encodes the result as a document:
//
//	{"list":"main","cancelled":false,"action":1,
//	 "items":[{"index":1,"text":"b","value":"b"}]}
func (r Result) JSON() (string, error) {
	doc := `{"items":[]}`
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, v)
		}
	}

	set("list", r.List)
	set("cancelled", r.Cancelled)
	if r.Action >= 0 {
		set("action", r.Action)
	} else {
		set("action", nil)
	}
	for _, it := range r.Items {
		set("items.-1", map[string]any{
			"index": it.Index,
			"text":  it.Text,
			"value": it.Value,
		})
	}
	if err != nil {
		return "", err
	}
	return doc, nil
}

func resultItem(i int, it list.Item) ResultItem {
	ri := ResultItem{Index: i}
	if t, ok := it.(*list.TextItem); ok {
		ri.Text = t.Text
		ri.Value = t.Value
		return ri
	}
	if l, ok := it.(list.Labeled); ok {
		ri.Text = l.Label()
	}
	ri.Value = ri.Text
	return ri
}
