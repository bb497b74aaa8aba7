package list

import (
	"weak"

	"github.com/google/uuid"
)

// ItemBase carries the flags every Item needs. Embed it in a concrete item
// type and construct it with NewItemBase so the item gets an ID.
type ItemBase struct {
	id        string
	disabled  bool
	selected  bool
	activated bool
	tabStop   bool
	role      string
	list      weak.Pointer[List]
}

// NewItemBase returns an ItemBase with a fresh ID.
func NewItemBase() ItemBase {
	return ItemBase{id: uuid.NewString()}
}

// NodeID returns the item's unique ID.
func (b *ItemBase) NodeID() string { return b.id }

// Disabled reports whether the item refuses selection and focus.
func (b *ItemBase) Disabled() bool { return b.disabled }

// SetDisabled sets the disabled flag.
func (b *ItemBase) SetDisabled(v bool) { b.disabled = v }

// Selected reports whether the item is part of the selection.
func (b *ItemBase) Selected() bool { return b.selected }

// SetSelected sets the selected flag.
func (b *ItemBase) SetSelected(v bool) { b.selected = v }

// Activated reports whether the item shows activated styling.
func (b *ItemBase) Activated() bool { return b.activated }

// SetActivated sets the activated flag.
func (b *ItemBase) SetActivated(v bool) { b.activated = v }

// TabStop reports whether the item holds the roving tab stop.
func (b *ItemBase) TabStop() bool { return b.tabStop }

// SetTabStop puts the item in or out of the focus order.
func (b *ItemBase) SetTabStop(inFlow bool) { b.tabStop = inFlow }

// Role returns the role assigned at the last layout.
func (b *ItemBase) Role() string { return b.role }

// SetRole sets the item's role. An empty role clears it.
func (b *ItemBase) SetRole(role string) { b.role = role }

// ManagingList returns the registering list while it is still alive.
func (b *ItemBase) ManagingList() *List {
	return b.list.Value()
}

// SetManagingList records l without keeping it alive.
func (b *ItemBase) SetManagingList(l *List) {
	if l == nil {
		b.list = weak.Pointer[List]{}
		return
	}
	b.list = weak.Make(l)
}

// Request raises a selection request for self on its managing list. It
// reports false when no list manages the item.
func (b *ItemBase) Request(self Node, selected bool, src Source) bool {
	l := b.ManagingList()
	if l == nil {
		return false
	}
	l.HandleRequestSelected(RequestSelected{
		Path:     []Node{self},
		Selected: selected,
		Source:   src,
	})
	return true
}

// TextItem is an item with a display label and an optional value.
type TextItem struct {
	ItemBase

	Text  string
	Value string
}

// NewTextItem returns an item labeled text.
func NewTextItem(text string) *TextItem {
	return &TextItem{ItemBase: NewItemBase(), Text: text, Value: text}
}

// Label implements Labeled.
func (t *TextItem) Label() string { return t.Text }

// Separator is a Divider.
type Separator struct {
	id   string
	role string
}

// NewSeparator returns a divider with no role.
func NewSeparator() *Separator {
	return &Separator{id: uuid.NewString()}
}

// NodeID returns the separator's unique ID.
func (s *Separator) NodeID() string { return s.id }

// IsDivider always reports true.
func (s *Separator) IsDivider() bool { return true }

// Role returns the role the last layout tagged the separator with.
func (s *Separator) Role() string { return s.role }

// SetRole sets the separator's role.
func (s *Separator) SetRole(role string) { s.role = role }

// ItemSpec describes a child to build from external data such as a JSON
// feed or a script.
type ItemSpec struct {
	Text      string
	Value     string
	Disabled  bool
	Selected  bool
	Separator bool
}

// Build returns a TextItem or Separator for each spec.
func Build(specs []ItemSpec) []Node {
	nodes := make([]Node, 0, len(specs))
	for _, s := range specs {
		if s.Separator {
			nodes = append(nodes, NewSeparator())
			continue
		}
		it := NewTextItem(s.Text)
		if s.Value != "" {
			it.Value = s.Value
		}
		it.SetDisabled(s.Disabled)
		it.SetSelected(s.Selected)
		nodes = append(nodes, it)
	}
	return nodes
}
