package storage

import (
	"bytes"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Get(KeyCartItems); ok {
		t.Fatal("empty store must report missing key")
	}

	want := []byte(`[{"menuId":1,"quantity":2}]`)
	if err := store.Set(KeyCartItems, want); err != nil {
		t.Fatal(err)
	}

	got, ok := store.Get(KeyCartItems)
	if !ok || !bytes.Equal(got, want) {
		t.Fatalf("Get = %q %v, want %q", got, ok, want)
	}

	store.Remove(KeyCartItems)
	if _, ok := store.Get(KeyCartItems); ok {
		t.Fatal("removed key must be gone")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	store.Set(KeyTableSession, []byte("a"))
	store.Set(KeyAdminToken, []byte("b"))
	store.Remove(KeyTableSession)

	if _, ok := store.Get(KeyAdminToken); !ok {
		t.Fatal("removing one key must not affect another")
	}
}
