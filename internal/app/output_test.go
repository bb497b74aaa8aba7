package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/listkit/internal/list"
)

func TestParseFeed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []list.ItemSpec
	}{
		{
			name:  "strings",
			input: `["a","---","b"]`,
			want:  []list.ItemSpec{{Text: "a"}, {Separator: true}, {Text: "b"}},
		},
		{
			name:  "objects",
			input: `[{"text":"a","value":"1","disabled":true},{"label":"b","selected":true},{"separator":true}]`,
			want: []list.ItemSpec{
				{Text: "a", Value: "1", Disabled: true},
				{Text: "b", Selected: true},
				{Separator: true},
			},
		},
		{
			name:  "wrapped",
			input: `{"items":[1, "two"]}`,
			want:  []list.ItemSpec{{Text: "1"}, {Text: "two"}},
		},
		{
			name:  "empty",
			input: `[]`,
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFeed([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFeedErrors(t *testing.T) {
	for _, input := range []string{`{`, `"a"`, `{"other":[]}`, `["a", true]`, `[["nested"]]`} {
		_, err := ParseFeed([]byte(input))
		assert.ErrorIs(t, err, ErrInvalidFeed, input)
	}
}

func TestLabelSpecs(t *testing.T) {
	got := LabelSpecs([]string{"a", "---"})
	assert.Equal(t, []list.ItemSpec{{Text: "a"}, {Separator: true}}, got)
}

func TestResultJSON(t *testing.T) {
	r := Result{
		List:   "main",
		Action: 1,
		Items:  []ResultItem{{Index: 1, Text: "b", Value: "beta"}},
	}
	doc, err := r.JSON()
	require.NoError(t, err)
	require.True(t, gjson.Valid(doc))

	assert.Equal(t, "main", gjson.Get(doc, "list").String())
	assert.False(t, gjson.Get(doc, "cancelled").Bool())
	assert.Equal(t, int64(1), gjson.Get(doc, "action").Int())
	assert.Equal(t, int64(1), gjson.Get(doc, "items.#").Int())
	assert.Equal(t, "beta", gjson.Get(doc, "items.0.value").String())
	assert.Equal(t, "b", gjson.Get(doc, "items.0.text").String())
}

func TestResultJSONCancelled(t *testing.T) {
	doc, err := Result{List: "main", Cancelled: true, Action: -1}.JSON()
	require.NoError(t, err)
	assert.True(t, gjson.Get(doc, "cancelled").Bool())
	assert.Equal(t, gjson.Null, gjson.Get(doc, "action").Type)
	assert.Equal(t, int64(0), gjson.Get(doc, "items.#").Int())
}

func TestResultLines(t *testing.T) {
	r := Result{Items: []ResultItem{{Value: "a"}, {Value: "b"}}}
	assert.Equal(t, "a\nb\n", r.Lines())
	assert.Equal(t, "", Result{}.Lines())
}
