package inapp

import (
	"fmt"
	"os"

	cm "github.com/itblio/itbl/src/common"
	"github.com/sirupsen/logrus"
)

const messagePrefix = "msg"

// kvDB is the subset of Badger used by BadgerStore. It lets the mobile build
// swap in a fork of Badger.
type kvDB interface {
	get(key []byte) ([]byte, error)
	set(key, val []byte) error
	delete(key []byte) error
	iterate(prefix []byte, fn func(val []byte) error) error
	isNotFound(err error) bool
	close() error
}

// BadgerStore persists messages in a Badger database and serves reads from an
// InmemStore that is loaded with the whole database on open.
type BadgerStore struct {
	inmemStore    *InmemStore
	db            kvDB
	path          string
	needBootstrap bool
	logger        *logrus.Entry
}

// NewBadgerStore creates a brand new Store with a new database.
func NewBadgerStore(path string, logger *logrus.Entry) (*BadgerStore, error) {
	handle, err := openBadger(path, logger)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		inmemStore: NewInmemStore(),
		db:         handle,
		path:       path,
		logger:     logger,
	}

	return store, nil
}

// LoadBadgerStore creates a Store from an existing database.
func LoadBadgerStore(path string, logger *logrus.Entry) (*BadgerStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	store, err := NewBadgerStore(path, logger)
	if err != nil {
		return nil, err
	}
	store.needBootstrap = true

	messages, err := store.dbAllMessages()
	if err != nil {
		store.db.close()
		return nil, err
	}

	for _, msg := range messages {
		store.inmemStore.set(msg)
	}

	if logger != nil {
		logger.WithField("messages", len(messages)).Debug("Loaded messages from database")
	}

	return store, nil
}

// LoadOrCreateBadgerStore loads the database in path, or creates a new one if
// nothing can be loaded from there.
func LoadOrCreateBadgerStore(path string, logger *logrus.Entry) (*BadgerStore, error) {
	store, err := LoadBadgerStore(path, logger)

	if err != nil {
		store, err = NewBadgerStore(path, logger)

		if err != nil {
			return nil, err
		}
	}

	return store, nil
}

/*******************************************************************************
Keys
*******************************************************************************/

func messageKey(id string) []byte {
	return []byte(fmt.Sprintf("%s_%s", messagePrefix, id))
}

/*******************************************************************************
Implement the Store interface
*******************************************************************************/

// Get implements the Store interface.
func (s *BadgerStore) Get(id string) (*Message, error) {
	//try to get it from cache
	msg, err := s.inmemStore.Get(id)
	//if not in cache, try to get it from db
	if cm.IsStore(err, cm.KeyNotFound) {
		msg, err = s.dbGetMessage(id)
	}
	return msg, mapError(s.db, err, "Message", id)
}

// Set implements the Store interface.
func (s *BadgerStore) Set(msg *Message) error {
	if err := s.inmemStore.Set(msg); err != nil {
		return err
	}
	return s.dbSetMessage(msg)
}

// Delete implements the Store interface.
func (s *BadgerStore) Delete(id string) error {
	if err := s.inmemStore.Delete(id); err != nil {
		return err
	}
	return s.db.delete(messageKey(id))
}

// All implements the Store interface.
func (s *BadgerStore) All() []*Message {
	return s.inmemStore.All()
}

// Len implements the Store interface.
func (s *BadgerStore) Len() int {
	return s.inmemStore.Len()
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	if err := s.inmemStore.Close(); err != nil {
		return err
	}
	return s.db.close()
}

// StorePath implements the Store interface.
func (s *BadgerStore) StorePath() string {
	return s.path
}

// NeedBootstrap reports whether the store was loaded from an existing
// database.
func (s *BadgerStore) NeedBootstrap() bool {
	return s.needBootstrap
}

/*******************************************************************************
DB Methods
*******************************************************************************/

func (s *BadgerStore) dbGetMessage(id string) (*Message, error) {
	data, err := s.db.get(messageKey(id))
	if err != nil {
		return nil, err
	}

	msg := new(Message)
	if err := msg.Unmarshal(data); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *BadgerStore) dbSetMessage(msg *Message) error {
	val, err := msg.Marshal()
	if err != nil {
		return err
	}
	return s.db.set(messageKey(msg.ID), val)
}

func (s *BadgerStore) dbAllMessages() ([]*Message, error) {
	res := []*Message{}
	err := s.db.iterate([]byte(messagePrefix+"_"), func(val []byte) error {
		msg := new(Message)
		if err := msg.Unmarshal(val); err != nil {
			return err
		}
		res = append(res, msg)
		return nil
	})
	return res, err
}

func mapError(db kvDB, err error, name, key string) error {
	if err != nil {
		if db.isNotFound(err) {
			return cm.NewStoreErr(name, cm.KeyNotFound, key)
		}
	}
	return err
}
