package app

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/listkit/internal/list"
)

const separatorLiteral = "---"

// ParseFeed reads items from JSON. The document is an array, or an object
// with an "items" array. Elements are strings or objects with text, value,
// disabled, selected and separator fields. The string "---" is a
// separator.
func ParseFeed(data []byte) ([]list.ItemSpec, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidFeed)
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("items")
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of items", ErrInvalidFeed)
	}

	var (
		specs []list.ItemSpec
		err   error
	)
	root.ForEach(func(k, v gjson.Result) bool {
		spec, ok := feedSpec(v)
		if !ok {
			err = fmt.Errorf("%w: item %d: unsupported %s", ErrInvalidFeed, k.Int(), v.Type)
			return false
		}
		specs = append(specs, spec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return specs, nil
}

func feedSpec(v gjson.Result) (list.ItemSpec, bool) {
	switch {
	case v.Type == gjson.String:
		if v.Str == separatorLiteral {
			return list.ItemSpec{Separator: true}, true
		}
		return list.ItemSpec{Text: v.Str}, true
	case v.Type == gjson.Number:
		return list.ItemSpec{Text: v.Raw}, true
	case v.IsObject():
		if v.Get("separator").Bool() {
			return list.ItemSpec{Separator: true}, true
		}
		text := v.Get("text")
		if !text.Exists() {
			text = v.Get("label")
		}
		return list.ItemSpec{
			Text:     text.String(),
			Value:    v.Get("value").String(),
			Disabled: v.Get("disabled").Bool(),
			Selected: v.Get("selected").Bool(),
		}, true
	}
	return list.ItemSpec{}, false
}

// LabelSpecs turns plain labels into items. "---" is a separator.
func LabelSpecs(labels []string) []list.ItemSpec {
	specs := make([]list.ItemSpec, 0, len(labels))
	for _, s := range labels {
		if s == separatorLiteral {
			specs = append(specs, list.ItemSpec{Separator: true})
			continue
		}
		specs = append(specs, list.ItemSpec{Text: s})
	}
	return specs
}
