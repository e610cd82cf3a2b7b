package store

import (
	"bytes"
	"testing"
)

func TestBTreeCacheGetSetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("french"), []byte("fry")

	if has, err := db.Has(k); err != nil || has {
		t.Fatalf("want no value, has=%v err=%v", has, err)
	}
	if err := db.Set(k, v); err != nil {
		t.Fatalf("set: %+v", err)
	}
	got, err := db.Get(k)
	if err != nil {
		t.Fatalf("get: %+v", err)
	}
	if !bytes.Equal(got, v) {
		t.Fatalf("got %q", got)
	}
	if err := db.Delete(k); err != nil {
		t.Fatalf("delete: %+v", err)
	}
	if has, err := db.Has(k); err != nil || has {
		t.Fatalf("value must be gone, has=%v err=%v", has, err)
	}
}

func TestBTreeCacheEmptyKeyRejected(t *testing.T) {
	db := MemStore()
	if err := db.Set(nil, []byte("a")); err == nil {
		t.Error("set with an empty key must fail")
	}
	if err := db.Delete(nil); err == nil {
		t.Error("delete with an empty key must fail")
	}
	if _, err := db.Get(nil); err == nil {
		t.Error("get with an empty key must fail")
	}
}

func TestBTreeCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("set: %+v", err)
	}

	// writes in a discarded cache never reach the parent
	cache := db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("set: %+v", err)
	}
	if err := cache.Delete([]byte("a")); err != nil {
		t.Fatalf("delete: %+v", err)
	}
	cache.Discard()

	if has, _ := db.Has([]byte("a")); !has {
		t.Error("discarded delete must not affect the parent")
	}
	if has, _ := db.Has([]byte("b")); has {
		t.Error("discarded set must not affect the parent")
	}

	// written caches flush their changes to the parent
	cache = db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("set: %+v", err)
	}
	if err := cache.Delete([]byte("a")); err != nil {
		t.Fatalf("delete: %+v", err)
	}
	if err := cache.Write(); err != nil {
		t.Fatalf("write: %+v", err)
	}

	if has, _ := db.Has([]byte("a")); has {
		t.Error("written delete must affect the parent")
	}
	if got, _ := db.Get([]byte("b")); !bytes.Equal(got, []byte("2")) {
		t.Errorf("written set must affect the parent, got %q", got)
	}
}

func TestBTreeCacheWrapReadsThrough(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("set: %+v", err)
	}

	cache := db.CacheWrap()
	got, err := cache.Get([]byte("a"))
	if err != nil {
		t.Fatalf("get: %+v", err)
	}
	if !bytes.Equal(got, []byte("1")) {
		t.Fatalf("got %q", got)
	}

	// a delete in the cache shadows the parent value
	if err := cache.Delete([]byte("a")); err != nil {
		t.Fatalf("delete: %+v", err)
	}
	if has, _ := cache.Has([]byte("a")); has {
		t.Error("cache must report the key as deleted")
	}
	if has, _ := db.Has([]byte("a")); !has {
		t.Error("parent must still hold the key")
	}
}

func TestNonAtomicBatchOrdersOps(t *testing.T) {
	out := MemStore()
	batch := NewNonAtomicBatch(out)

	if err := batch.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("set: %+v", err)
	}
	if err := batch.Delete([]byte("a")); err != nil {
		t.Fatalf("delete: %+v", err)
	}
	ops := batch.ShowOps()
	if len(ops) != 2 || !ops[0].IsSetOp() || ops[1].IsSetOp() {
		t.Fatalf("unexpected ops: %+v", ops)
	}

	if err := batch.Write(); err != nil {
		t.Fatalf("write: %+v", err)
	}
	if has, _ := out.Has([]byte("a")); has {
		t.Error("delete is the last operation, key must be gone")
	}
	if len(batch.ShowOps()) != 0 {
		t.Error("write must reset the batch")
	}
}
