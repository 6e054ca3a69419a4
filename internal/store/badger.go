package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerKV - встраиваемый бэкенд на BadgerDB. Каталог захватывается одним
// процессом, поэтому способности Watch у него нет: соседние контексты
// внутри процесса синхронизируются периодическим опросом.
type BadgerKV struct {
	db *badger.DB
}

func NewBadgerKV(dir string) (*BadgerKV, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", dir, err)
	}
	return &BadgerKV{db: db}, nil
}

func (b *BadgerKV) Get(_ context.Context, key string) ([]byte, error) {
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key from badger: %w", err)
	}
	return raw, nil
}

func (b *BadgerKV) Set(_ context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to set key in badger: %w", err)
	}
	return nil
}

func (b *BadgerKV) Close() error {
	return b.db.Close()
}
