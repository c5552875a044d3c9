package inapp

import "sort"

// Store is an interface for in-app message stores.
type Store interface {
	// Get returns a message by id.
	Get(id string) (*Message, error)
	// Set inserts or replaces a message. A replaced message keeps its
	// arrival order.
	Set(msg *Message) error
	// Delete removes a message by id.
	Delete(id string) error
	// All returns every message ordered by priority level, then arrival.
	All() []*Message
	// Len returns the number of stored messages.
	Len() int
	// Close closes the underlying database.
	Close() error
	// StorePath returns the filepath of the underlying database.
	StorePath() string
}

type byPriority []*Message

func (b byPriority) Len() int      { return len(b) }
func (b byPriority) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byPriority) Less(i, j int) bool {
	if b[i].Priority != b[j].Priority {
		return b[i].Priority < b[j].Priority
	}
	return b[i].Seq < b[j].Seq
}

func sortMessages(messages []*Message) {
	sort.Sort(byPriority(messages))
}
