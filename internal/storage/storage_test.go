package storage

import (
	"bytes"
	"testing"
)

func TestPutGetRoundtrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	payload := []byte("%PDF-1.4 test payload")
	key, err := store.Put(payload)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if key == "" {
		t.Fatal("expected a generated key")
	}
	got, err := store.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("roundtrip mismatch: %q", got)
	}
}

func TestKeysAreUnique(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	k1, _ := store.Put([]byte("a"))
	k2, _ := store.Put([]byte("b"))
	if k1 == k2 {
		t.Fatalf("expected distinct keys, got %s twice", k1)
	}
}

func TestGetRejectsPathKeys(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"", "../etc/passwd", `..\secret`} {
		if _, err := store.Get(key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
