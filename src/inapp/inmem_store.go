package inapp

import (
	"sync"

	cm "github.com/itblio/itbl/src/common"
)

// InmemStore implements the Store interface with a map. Its content does not
// survive the process.
type InmemStore struct {
	sync.RWMutex

	messages map[string]*Message
	nextSeq  uint64
	closed   bool
}

// NewInmemStore ...
func NewInmemStore() *InmemStore {
	return &InmemStore{
		messages: make(map[string]*Message),
	}
}

// Get implements the Store interface.
func (s *InmemStore) Get(id string) (*Message, error) {
	s.RLock()
	defer s.RUnlock()

	if s.closed {
		return nil, cm.NewStoreErr("Message", cm.Closed, id)
	}

	msg, ok := s.messages[id]
	if !ok {
		return nil, cm.NewStoreErr("Message", cm.KeyNotFound, id)
	}
	return msg, nil
}

// Set implements the Store interface.
func (s *InmemStore) Set(msg *Message) error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return cm.NewStoreErr("Message", cm.Closed, msg.ID)
	}

	s.set(msg)
	return nil
}

func (s *InmemStore) set(msg *Message) {
	if old, ok := s.messages[msg.ID]; ok {
		msg.Seq = old.Seq
	} else if msg.Seq == 0 {
		s.nextSeq++
		msg.Seq = s.nextSeq
	} else if msg.Seq > s.nextSeq {
		// loaded from a database
		s.nextSeq = msg.Seq
	}
	s.messages[msg.ID] = msg
}

// Delete implements the Store interface.
func (s *InmemStore) Delete(id string) error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return cm.NewStoreErr("Message", cm.Closed, id)
	}

	if _, ok := s.messages[id]; !ok {
		return cm.NewStoreErr("Message", cm.KeyNotFound, id)
	}
	delete(s.messages, id)
	return nil
}

// All implements the Store interface.
func (s *InmemStore) All() []*Message {
	s.RLock()
	defer s.RUnlock()

	res := make([]*Message, 0, len(s.messages))
	for _, msg := range s.messages {
		res = append(res, msg)
	}
	sortMessages(res)
	return res
}

// Len implements the Store interface.
func (s *InmemStore) Len() int {
	s.RLock()
	defer s.RUnlock()

	return len(s.messages)
}

// Close implements the Store interface. Reads and writes fail once the store
// is closed; Close itself may be called again.
func (s *InmemStore) Close() error {
	s.Lock()
	defer s.Unlock()

	s.closed = true
	return nil
}

// StorePath implements the Store interface.
func (s *InmemStore) StorePath() string {
	return ""
}
