package repository

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
)

// OpenBadger opens a badger database in dir. An empty dir runs in memory.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	return badger.Open(opts)
}

type badgerStateRepo struct {
	db  *badger.DB
	key []byte
}

// NewBadgerStateRepo stores the document under one badger key
func NewBadgerStateRepo(db *badger.DB, key string) StateRepo {
	if key == "" {
		key = DefaultStateKey
	}
	return &badgerStateRepo{db: db, key: []byte(key)}
}

func (r *badgerStateRepo) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(r.key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *badgerStateRepo) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(r.key, data)
	})
}
