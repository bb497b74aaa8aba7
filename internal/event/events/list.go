// Package events defines the typed payloads and topics published on the
// event bus.
//
// List topics are rooted at "list.<name>", so every list raises:
//
//	list.<name>.items-updated   registry rescanned
//	list.<name>.selected        selection command processed
//	list.<name>.action          item activated by the user
//
// Config topics:
//
//	config.reloaded             configuration file re-read
package events

import (
	"github.com/dshills/listkit/internal/event/topic"
	"github.com/dshills/listkit/internal/list/index"
)

// List topic root and leaf names.
const (
	TopicListRoot topic.Topic = "list"

	ListItemsUpdated = "items-updated"
	ListSelected     = "selected"
	ListAction       = "action"
)

// ListTopic returns the topic a list named name uses for kind.
func ListTopic(name, kind string) topic.Topic {
	return topic.Join(TopicListRoot.String(), name, kind)
}

// ListItemsUpdatedPayload carries no data beyond the trigger itself.
type ListItemsUpdatedPayload struct {
	// Count is the number of registered items after the rescan.
	Count int
}

// ListSelectedPayload is raised after every selection command, even when the
// selection did not change.
type ListSelectedPayload struct {
	// Index is the new selection: index.Single or index.Set.
	Index index.Index

	// Diff lists positions that entered and left the selection.
	Diff index.Diff
}

// ListActionPayload is raised when the user activates an item.
type ListActionPayload struct {
	Index int
}
