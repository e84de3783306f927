// Package library persists named compositions in a BadgerDB store so they
// can be created once and edited across tool calls (add a melody, add
// chords, add drums) before being recompiled. The compiler itself stays
// pure; all mutable state lives here.
//
// Records are msgpack-encoded envelopes holding the composition's JSON
// wire form, so a stored composition survives a save/load cycle through
// the same schema the tool inputs use.
package library

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/miditoy/miditoy/pkg/score"
)

// ErrNotFound is returned when no composition with the given name exists.
var ErrNotFound = errors.New("library: composition not found")

// keyPrefix namespaces composition records in the store.
const keyPrefix = "composition:"

// Record is one stored composition plus bookkeeping.
type Record struct {
	Name      string    `json:"name" msgpack:"name"`
	CreatedAt time.Time `json:"createdAt" msgpack:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" msgpack:"updated_at"`

	// Composition is the JSON wire form of the composition.
	Composition []byte `json:"-" msgpack:"composition"`
}

// Decode parses the record's composition. Stored pieces may be drafts with
// no tracks yet, so Decode does not validate; compilation does.
func (r *Record) Decode() (*score.Composition, error) {
	return score.DecodeJSON(r.Composition)
}

// Library is a named-composition store backed by BadgerDB.
type Library struct {
	db *badger.DB
}

// Options configures a Library.
type Options struct {
	// Dir is the directory for BadgerDB data files.
	// Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB in memory-only mode (no disk persistence).
	// Useful for testing with a real badger engine.
	InMemory bool

	// Logger sets the badger logger. If nil, badger output is silenced.
	Logger badger.Logger
}

// Open opens (creating if needed) a Library.
func Open(opts Options) (*Library, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("library: Options.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	if opts.Logger != nil {
		dbOpts = dbOpts.WithLogger(opts.Logger)
	} else {
		dbOpts = dbOpts.WithLogger(nopLogger{})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	return &Library{db: db}, nil
}

// Close releases the underlying store.
func (l *Library) Close() error { return l.db.Close() }

// Put stores the composition under name, creating or replacing it.
// The composition is validated before anything is written.
func (l *Library) Put(ctx context.Context, name string, c *score.Composition) error {
	if name == "" {
		return fmt.Errorf("library: empty composition name")
	}
	// A freshly created piece has no tracks yet; drafts are storable and
	// only full compilation insists on at least one track.
	if err := c.Validate(); err != nil && !errors.Is(err, score.ErrEmptyComposition) {
		return err
	}
	data, err := c.MarshalJSON()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rec := Record{Name: name, CreatedAt: now, UpdatedAt: now, Composition: data}
	if prev, err := l.Get(ctx, name); err == nil {
		rec.CreatedAt = prev.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	val, err := msgpack.Marshal(&rec)
	if err != nil {
		return err
	}
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+name), val)
	})
}

// Get returns the stored record for name.
func (l *Library) Get(_ context.Context, name string) (*Record, error) {
	var rec Record
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update loads the named composition, applies fn to it, validates the
// result and stores it back. This is the editing primitive the add-melody/
// add-chords/add-drums tools build on.
func (l *Library) Update(ctx context.Context, name string, fn func(*score.Composition) error) (*score.Composition, error) {
	rec, err := l.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	c, err := rec.Decode()
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := l.Put(ctx, name, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all stored records sorted by name, without their
// composition payloads decoded.
func (l *Library) List(context.Context) ([]Record, error) {
	var out []Record
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the named composition. No error if it does not exist.
func (l *Library) Delete(_ context.Context, name string) error {
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + name))
	})
}

// nopLogger silences badger's default logging.
type nopLogger struct{}

func (nopLogger) Errorf(string, ...any)   {}
func (nopLogger) Warningf(string, ...any) {}
func (nopLogger) Infof(string, ...any)    {}
func (nopLogger) Debugf(string, ...any)   {}
