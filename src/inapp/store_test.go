package inapp

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	cm "github.com/itblio/itbl/src/common"
)

func testMessage(id string, priority float64) *Message {
	return &Message{
		ID:       id,
		Priority: priority,
		Trigger:  TriggerImmediate,
		Content:  map[string]interface{}{"html": testHTML},
	}
}

func testStore(t *testing.T, store Store) {
	if _, err := store.Get("missing"); !cm.IsStore(err, cm.KeyNotFound) {
		t.Fatalf("Get of a missing message should be KeyNotFound, got %v", err)
	}

	for _, msg := range []*Message{
		testMessage("a", DefaultPriority),
		testMessage("b", 100.5),
		testMessage("c", DefaultPriority),
	} {
		if err := store.Set(msg); err != nil {
			t.Fatal(err)
		}
	}

	if store.Len() != 3 {
		t.Fatalf("store should have 3 messages, not %d", store.Len())
	}

	ids := func() []string {
		res := []string{}
		for _, m := range store.All() {
			res = append(res, m.ID)
		}
		return res
	}

	if got := ids(); got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Fatalf("unexpected order %v", got)
	}

	// replacing keeps arrival order
	replacement := testMessage("a", DefaultPriority)
	replacement.Read = true
	if err := store.Set(replacement); err != nil {
		t.Fatal(err)
	}
	if got := ids(); got[1] != "a" {
		t.Fatalf("replaced message should keep its place, got %v", got)
	}

	msg, err := store.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if !msg.Read {
		t.Fatal("replacement should be stored")
	}

	if err := store.Delete("b"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("b"); !cm.IsStore(err, cm.KeyNotFound) {
		t.Fatalf("second Delete should be KeyNotFound, got %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("store should have 2 messages, not %d", store.Len())
	}
}

func TestInmemStore(t *testing.T) {
	store := NewInmemStore()
	testStore(t, store)

	if store.StorePath() != "" {
		t.Fatal("inmem store has no path")
	}

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get("a"); !cm.IsStore(err, cm.Closed) {
		t.Fatalf("Get after Close should fail with Closed, got %v", err)
	}
	if err := store.Set(&Message{ID: "z"}); !cm.IsStore(err, cm.Closed) {
		t.Fatalf("Set after Close should fail with Closed, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal("Close should be idempotent")
	}
}

func initBadgerDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "itbl-badger")
	if err != nil {
		t.Fatal(err)
	}
	return filepath.Join(dir, "db")
}

func TestBadgerStore(t *testing.T) {
	path := initBadgerDir(t)
	defer os.RemoveAll(filepath.Dir(path))

	logger := cm.NewTestEntry(t, "badger")

	store, err := NewBadgerStore(path, logger)
	if err != nil {
		t.Fatal(err)
	}

	testStore(t, store)

	if store.StorePath() != path {
		t.Fatalf("unexpected path %q", store.StorePath())
	}
	if store.NeedBootstrap() {
		t.Fatal("a new store does not need bootstrap")
	}

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadBadgerStore(path, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer loaded.Close()

	if !loaded.NeedBootstrap() {
		t.Fatal("a loaded store needs bootstrap")
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded store should have 2 messages, not %d", loaded.Len())
	}

	all := loaded.All()
	if all[0].ID != "a" || all[1].ID != "c" {
		t.Fatalf("loaded store should keep arrival order, got %s, %s", all[0].ID, all[1].ID)
	}
	if !all[0].Read {
		t.Fatal("loaded message should keep its fields")
	}
	if _, err := all[0].Parsed(); err != nil {
		t.Fatalf("loaded content should parse: %s", err)
	}

	// new messages go after loaded ones
	if err := loaded.Set(testMessage("d", DefaultPriority)); err != nil {
		t.Fatal(err)
	}
	all = loaded.All()
	if all[2].ID != "d" {
		t.Fatalf("new message should come last, got %s", all[2].ID)
	}
}

func TestLoadBadgerStoreMissing(t *testing.T) {
	path := initBadgerDir(t)
	defer os.RemoveAll(filepath.Dir(path))

	if _, err := LoadBadgerStore(path, nil); err == nil {
		t.Fatal("loading a missing database should fail")
	}

	store, err := LoadOrCreateBadgerStore(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if store.NeedBootstrap() || store.Len() != 0 {
		t.Fatal("LoadOrCreate on a missing path should create an empty store")
	}
}
