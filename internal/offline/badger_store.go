package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"github.com/qitae/go-approval/pkg/interfaces"
)

var (
	queuePrefix    = []byte("queue/")
	queueSeqKey    = []byte("queue_seq")
	offlineFlagKey = []byte("flag/offline")
)

// BadgerQueueStore persists the offline queue in a BadgerDB so queued
// actions and the offline flag survive process restarts. Entry keys are
// zero-padded sequence numbers, which makes Badger's key iteration order
// the queue's append order.
type BadgerQueueStore struct {
	db  *badger.DB
	seq uint64
}

// NewBadgerQueueStore opens (or creates) the store at path.
func NewBadgerQueueStore(path string) (*BadgerQueueStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	return openBadgerQueueStore(opts)
}

// NewBadgerQueueStoreInMemory creates a store without a backing
// directory, useful when durability is handled elsewhere (e.g. tests).
func NewBadgerQueueStoreInMemory() (*BadgerQueueStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return openBadgerQueueStore(opts)
}

func openBadgerQueueStore(opts badger.Options) (*BadgerQueueStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("offline: open badger store: %w", err)
	}
	store := &BadgerQueueStore{db: db}
	if err := store.restoreSeq(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

var _ interfaces.QueueStore = (*BadgerQueueStore)(nil)

// Close releases the underlying database.
func (s *BadgerQueueStore) Close() error {
	return s.db.Close()
}

// Append adds an entry at the tail of the queue.
func (s *BadgerQueueStore) Append(_ context.Context, entry interfaces.QueueEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("offline: encode queue entry: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		s.seq++
		if err := txn.Set(queueKey(s.seq), value); err != nil {
			return err
		}
		return txn.Set(queueSeqKey, []byte(fmt.Sprintf("%d", s.seq)))
	})
}

// Load returns every queued entry in append order.
func (s *BadgerQueueStore) Load(context.Context) ([]interfaces.QueueEntry, error) {
	var entries []interfaces.QueueEntry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = queuePrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var entry interfaces.QueueEntry
			if err := json.Unmarshal(value, &entry); err != nil {
				return fmt.Errorf("offline: decode queue entry: %w", err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Replace swaps the whole queue content in a single transaction.
func (s *BadgerQueueStore) Replace(_ context.Context, entries []interfaces.QueueEntry) error {
	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = queuePrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		for _, entry := range entries {
			value, err := json.Marshal(entry)
			if err != nil {
				return fmt.Errorf("offline: encode queue entry: %w", err)
			}
			s.seq++
			if err := txn.Set(queueKey(s.seq), value); err != nil {
				return err
			}
		}
		return txn.Set(queueSeqKey, []byte(fmt.Sprintf("%d", s.seq)))
	})
}

// SetOffline persists the offline flag.
func (s *BadgerQueueStore) SetOffline(_ context.Context, offline bool) error {
	value := []byte("0")
	if offline {
		value = []byte("1")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(offlineFlagKey, value)
	})
}

// Offline restores the persisted offline flag, defaulting to false.
func (s *BadgerQueueStore) Offline(context.Context) (bool, error) {
	var offline bool
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(offlineFlagKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		offline = len(value) > 0 && value[0] == '1'
		return nil
	})
	if err != nil {
		return false, err
	}
	return offline, nil
}

func (s *BadgerQueueStore) restoreSeq() error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(queueSeqKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if _, err := fmt.Sscanf(string(value), "%d", &s.seq); err != nil {
			return fmt.Errorf("offline: restore queue sequence: %w", err)
		}
		return nil
	})
}

func queueKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", queuePrefix, seq))
}
