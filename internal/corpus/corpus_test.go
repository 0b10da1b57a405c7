package corpus_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wgslfuzz/internal/corpus"
	"wgslfuzz/internal/pipeline"
)

func openStore(t *testing.T) *corpus.Store {
	t.Helper()
	s, err := corpus.Open(filepath.Join(t.TempDir(), "corpus"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openStore(t)
	in := corpus.Entry{
		Preset:   "plasma",
		Seed:     42,
		Slot:     3,
		Attempt:  1,
		Config:   pipeline.Only(0.7, pipeline.PassChaos, pipeline.PassNumbers),
		Passes:   []string{"chaos", "numbers", "swizzle"},
		Source:   "fn main() {}",
		Warnings: []string{"module declares no entry points"},
	}
	stored, err := s.Put(in)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if stored.ID == "" || stored.CreatedUnix == 0 || stored.Hash != corpus.HashSource(in.Source) {
		t.Fatalf("Put did not fill defaults: %+v", stored)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), stored.ID[:2], stored.ID+".mpk")); err != nil {
		t.Fatalf("entry file missing: %v", err)
	}

	got, err := s.Get(stored.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(stored, got); diff != "" {
		t.Fatalf("round trip mismatch (-put +get):\n%s", diff)
	}

	byPrefix, err := s.Get(stored.ID[:13])
	if err != nil || byPrefix.ID != stored.ID {
		t.Fatalf("Get by prefix = %v, %v", byPrefix.ID, err)
	}
}

func TestGetMissing(t *testing.T) {
	s := openStore(t)
	for _, id := range []string{"0190f1e2-0000-7000-8000-000000000000", "0190f1e2", "ab"} {
		if _, err := s.Get(id); !errors.Is(err, corpus.ErrNotFound) {
			t.Errorf("Get(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestListOrdersByCreation(t *testing.T) {
	s := openStore(t)
	for i, ts := range []int64{300, 100, 200} {
		if _, err := s.Put(corpus.Entry{Source: string(rune('a' + i)), CreatedUnix: ts}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []int64
	for _, e := range list {
		got = append(got, e.CreatedUnix)
	}
	if diff := cmp.Diff([]int64{100, 200, 300}, got); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	e, err := s.Put(corpus.Entry{Source: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(e.ID); !errors.Is(err, corpus.ErrNotFound) {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestPutRejectsBadID(t *testing.T) {
	s := openStore(t)
	if _, err := s.Put(corpus.Entry{ID: "../escape", Source: "x"}); err == nil {
		t.Fatalf("expected invalid id error")
	}
}

func TestConcurrentPut(t *testing.T) {
	s := openStore(t)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Put(corpus.Entry{Seed: uint64(i), Source: "fn main() {}"}); err != nil {
				t.Errorf("Put: %v", err)
			}
		}()
	}
	wg.Wait()
	list, err := s.List()
	if err != nil || len(list) != 16 {
		t.Fatalf("List = %d entries, %v", len(list), err)
	}
}

func TestOpenEmptyDir(t *testing.T) {
	if _, err := corpus.Open(""); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
