package store

import "github.com/iov-one/tempo"

// Move references for all storage types into this package for shorter
// names everywhere.

type ReadOnlyKVStore = tempo.ReadOnlyKVStore
type KVStore = tempo.KVStore
type SetDeleter = tempo.SetDeleter
type Batch = tempo.Batch
type CacheableKVStore = tempo.CacheableKVStore
type KVCacheWrap = tempo.KVCacheWrap
