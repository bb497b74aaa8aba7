package list

// Role values assigned by the registry.
const (
	RoleSeparator = "separator"
)

// Node is a child of the host container: an Item, a Divider, or anything
// decorative the registry skips.
type Node interface {
	NodeID() string
}

// Item is a selectable child. The host owns it; the list only keeps a
// reference between rescans.
type Item interface {
	Node

	Disabled() bool
	SetDisabled(disabled bool)

	Selected() bool
	SetSelected(selected bool)

	Activated() bool
	SetActivated(activated bool)

	// TabStop reports whether the item is in the sequential focus order.
	TabStop() bool
	SetTabStop(inFlow bool)

	Role() string
	SetRole(role string)

	// ManagingList returns the list that last registered the item, or nil.
	ManagingList() *List
	SetManagingList(l *List)
}

// Divider is a decorative separator between items.
type Divider interface {
	Node
	IsDivider() bool
	Role() string
	SetRole(role string)
}

// Labeled is implemented by items that have display text.
type Labeled interface {
	Label() string
}

// Host is the container environment a List runs in.
type Host interface {
	// Children returns the container's child nodes in display order.
	Children() []Node

	// Focus moves host focus to n.
	Focus(n Node)

	// FocusPath returns the nodes from the focused node outward to the
	// container, innermost first. It is empty when focus is elsewhere.
	FocusPath() []Node
}

// Source says what raised a selection request.
type Source int

const (
	// SourceInteraction is a direct user gesture such as a click.
	SourceInteraction Source = iota

	// SourceProperty is a programmatic change of the item's selected value.
	SourceProperty
)

// String returns the source name.
func (s Source) String() string {
	if s == SourceInteraction {
		return "interaction"
	}
	return "property"
}

// RequestSelected is raised by an item that wants its selection changed.
type RequestSelected struct {
	// Path is the composed event path, innermost node first.
	Path []Node

	Selected bool
	Source   Source
}
