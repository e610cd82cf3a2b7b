/*
Package orm provides an easy to use db wrapper.

It breaks the state space into prefixed sections called Buckets. Each
bucket contains only one type of object and may own sequences for key
generation. Buckets do the serialization and validation dance so that
the business logic only ever sees typed models.
*/
package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	tempo.Persistent

	// Validate returns an error if the model is not in a valid state to
	// be persisted.
	Validate() error
}

// ModelBucket is implemented by buckets that operate on a single model
// type.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model. This method returns ErrNotFound if the entity does not
	// exist in the database.
	One(db tempo.ReadOnlyKVStore, key []byte, dest Model) error

	// Put saves given model in the database. Before inserting into the
	// database, model is validated using its Validate method. If the key
	// is nil, it is generated from the bucket sequence. The key used is
	// returned.
	Put(db tempo.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db tempo.KVStore, key []byte) error

	// Has returns nil if an entity with given primary key value exists.
	// It returns ErrNotFound if no entity can be found.
	Has(db tempo.ReadOnlyKVStore, key []byte) error
}

// NewModelBucket returns a ModelBucket instance. The given model type is
// used to enforce that all processed entities are of the same kind.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}

	b := &modelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  reflect.TypeOf(m).Elem(),
	}
	for _, fn := range opts {
		fn(b)
	}
	return b
}

// ModelBucketOption is implemented by any function that can configure a
// ModelBucket during creation.
type ModelBucketOption func(*modelBucket)

// WithIDSequence configures the bucket to use given sequence instance for
// generating a key for any Put with a nil key.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(b *modelBucket) {
		b.idSeq = &s
	}
}

type modelBucket struct {
	name   string
	prefix []byte

	// model is the type of the model stored in this bucket.
	model reflect.Type

	idSeq *Sequence
}

var _ ModelBucket = (*modelBucket)(nil)

func (b *modelBucket) One(db tempo.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.assertModelType(dest); err != nil {
		return err
	}
	raw, err := db.Get(b.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

func (b *modelBucket) Put(db tempo.KVStore, key []byte, m Model) ([]byte, error) {
	if err := b.assertModelType(m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if key == nil {
		if b.idSeq == nil {
			return nil, errors.Wrap(errors.ErrInput, "nil key and no sequence configured")
		}
		var err error
		key, err = b.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "cannot acquire key")
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot marshal %T", m)
	}
	if err := db.Set(b.dbKey(key), raw); err != nil {
		return nil, err
	}
	return key, nil
}

func (b *modelBucket) Delete(db tempo.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	return db.Delete(b.dbKey(key))
}

func (b *modelBucket) Has(db tempo.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		// nil key is a special case that would cause the store API to
		// panic
		return errors.ErrNotFound
	}
	ok, err := db.Has(b.dbKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return nil
}

// dbKey is the full key we store in the db, including prefix. We copy into
// a new array rather than use append, as we don't want consecutive calls
// to overwrite the same byte array.
func (b *modelBucket) dbKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

func (b *modelBucket) assertModelType(m Model) error {
	if m == nil {
		return errors.Wrapf(errors.ErrHuman, "%T model is nil", m)
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		return errors.Wrapf(errors.ErrHuman, "%T model destination must be a pointer", m)
	}
	if tp.Elem() != b.model {
		return errors.Wrapf(errors.ErrHuman, "%T cannot be used with %q bucket", m, b.name)
	}
	return nil
}
