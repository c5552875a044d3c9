//go:build !mobile
// +build !mobile

package inapp

import (
	"github.com/dgraph-io/badger"
	"github.com/sirupsen/logrus"
)

type badgerDB struct {
	db *badger.DB
}

func openBadger(path string, logger *logrus.Entry) (kvDB, error) {
	opts := badger.DefaultOptions(path).
		WithSyncWrites(false).
		WithTruncate(true)

	if logger != nil {
		sub := logger.WithFields(logrus.Fields{"ns": "badger"})
		opts = opts.WithLogger(sub)
	}

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &badgerDB{db: handle}, nil
}

func (b *badgerDB) get(key []byte) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (b *badgerDB) set(key, val []byte) error {
	tx := b.db.NewTransaction(true)
	defer tx.Discard()

	if err := tx.Set(key, val); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *badgerDB) delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (b *badgerDB) iterate(prefix []byte, fn func(val []byte) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(val); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerDB) isNotFound(err error) bool {
	return err == badger.ErrKeyNotFound
}

func (b *badgerDB) close() error {
	return b.db.Close()
}
