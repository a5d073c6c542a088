package production

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/comalice/racecore"
)

// ResultEntity is the key prefix results are stored under.
const ResultEntity = "RESULT"

// OpenBadger opens a badger database at dir, or an in-memory one when dir is empty.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", dir, err)
	}
	return db, nil
}

// CloseBadger compacts and closes db.
func CloseBadger(db *badger.DB, logger zerolog.Logger) error {
	if err := db.Flatten(4); err != nil {
		logger.Warn().Err(err).Msg("flatten on stop")
	}
	err := db.RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrGCInMemoryMode) {
		logger.Warn().Err(err).Msg("run value log gc")
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("close badger: %w", err)
	}
	return nil
}

// BadgerStore keeps msgpack-encoded results in badger under RESULT/<id>.
// Result IDs are ksuids, so key order is creation order.
type BadgerStore struct {
	prefix []byte
	db     *badger.DB
}

// NewBadgerStore creates a store on an open database. The caller owns db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{
		prefix: []byte(ResultEntity + "/"),
		db:     db,
	}
}

func (b *BadgerStore) buildKey(id string) []byte {
	return append(append([]byte{}, b.prefix...), id...)
}

func (b *BadgerStore) Save(ctx context.Context, result racecore.RaceResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkID(result.ID); err != nil {
		return err
	}
	buf, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("msgpack marshal: %w", err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.buildKey(result.ID), buf)
	})
}

func (b *BadgerStore) Load(ctx context.Context, id string) (racecore.RaceResult, error) {
	if err := ctx.Err(); err != nil {
		return racecore.RaceResult{}, err
	}
	if err := checkID(id); err != nil {
		return racecore.RaceResult{}, err
	}
	var result racecore.RaceResult
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.buildKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &result)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return racecore.RaceResult{}, fmt.Errorf("result %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return racecore.RaceResult{}, fmt.Errorf("load result %q: %w", id, err)
	}
	return result, nil
}

func (b *BadgerStore) List(ctx context.Context, filter Filter) ([]racecore.RaceResult, error) {
	var results []racecore.RaceResult
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(b.prefix); it.ValidForPrefix(b.prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var r racecore.RaceResult
			if err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			if filter != nil && !filter(r) {
				continue
			}
			results = append(results, r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	sortResults(results)
	return results, nil
}
