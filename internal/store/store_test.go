package store

import (
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// newTestStore creates a Store over an empty JSON file in a temp dir.
func newTestStore(t *testing.T) (*Store, *JSONFile) {
	t.Helper()

	medium := NewJSONFile(filepath.Join(t.TempDir(), "data", "db.json"))
	if err := medium.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return New(medium), medium
}

func testGenerator(seed uint64) Generator {
	now := time.Date(2024, 3, 1, 12, 30, 45, 123456789, time.UTC)
	return RandomGenerator(rand.New(rand.NewPCG(seed, seed)), func() time.Time { return now })
}

func samePerson(a, b Person) bool {
	return a.ID == b.ID && a.Name == b.Name && a.Category == b.Category &&
		a.Age == b.Age && a.CreatedAt.Equal(b.CreatedAt)
}

func TestAppendGrowsByOne(t *testing.T) {
	s, _ := newTestStore(t)
	gen := testGenerator(1)

	var prev []Person
	for i := 1; i <= 5; i++ {
		people, err := s.Append(gen)
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		if len(people) != i {
			t.Fatalf("after %d appends got %d people", i, len(people))
		}
		for j, p := range prev {
			if !samePerson(p, people[j]) {
				t.Errorf("append %d changed person %d: %+v -> %+v", i, j, p, people[j])
			}
		}

		loaded, err := s.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(loaded) != i {
			t.Errorf("Load after %d appends = %d people", i, len(loaded))
		}
		prev = people
	}
}

func TestRemoveAt(t *testing.T) {
	s, _ := newTestStore(t)
	gen := testGenerator(2)
	for range 4 {
		if _, err := s.Append(gen); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	before, _ := s.Load()

	after, err := s.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if len(after) != 3 {
		t.Fatalf("got %d people, want 3", len(after))
	}

	want := []Person{before[0], before[2], before[3]}
	loaded, _ := s.Load()
	for i := range want {
		if !samePerson(loaded[i], want[i]) {
			t.Errorf("loaded[%d] = %+v, want %+v", i, loaded[i], want[i])
		}
	}
}

func TestRemoveAtNoOp(t *testing.T) {
	s, medium := newTestStore(t)

	// Empty collection
	people, err := s.RemoveAt(0)
	if err != nil {
		t.Fatalf("RemoveAt on empty: %v", err)
	}
	if len(people) != 0 {
		t.Errorf("got %d people, want 0", len(people))
	}

	gen := testGenerator(3)
	s.Append(gen)
	s.Append(gen)
	raw, _ := os.ReadFile(medium.Path())

	for _, idx := range []int{2, 7, -1} {
		people, err := s.RemoveAt(idx)
		if err != nil {
			t.Fatalf("RemoveAt(%d): %v", idx, err)
		}
		if len(people) != 2 {
			t.Errorf("RemoveAt(%d) left %d people, want 2", idx, len(people))
		}
	}

	after, _ := os.ReadFile(medium.Path())
	if string(raw) != string(after) {
		t.Error("out-of-range RemoveAt rewrote the file")
	}
}

func TestRoundTrip(t *testing.T) {
	_, medium := newTestStore(t)
	gen := testGenerator(4)

	want := []Person{gen(), gen(), gen()}
	if err := medium.Write(want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := medium.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d people, want %d", len(got), len(want))
	}
	for i := range want {
		if !samePerson(got[i], want[i]) {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := New(NewJSONFile(filepath.Join(t.TempDir(), "nope.json")))

	_, err := s.Load()
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want to wrap fs.ErrNotExist", err)
	}
	if errors.Is(err, ErrCorrupt) {
		t.Error("missing file should not be ErrCorrupt")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(`[{"id": "not a number"`), 0644); err != nil {
		t.Fatal(err)
	}
	s := New(NewJSONFile(path))

	if _, err := s.Load(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load err = %v, want ErrCorrupt", err)
	}
	if _, err := s.Append(testGenerator(5)); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Append err = %v, want ErrCorrupt", err)
	}

	raw, _ := os.ReadFile(path)
	if string(raw) != `[{"id": "not a number"` {
		t.Error("failed Append must not rewrite a corrupt file")
	}
}

func TestInitKeepsExistingData(t *testing.T) {
	s, medium := newTestStore(t)
	s.Append(testGenerator(6))

	if err := medium.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	people, _ := s.Load()
	if len(people) != 1 {
		t.Errorf("Init clobbered data: got %d people, want 1", len(people))
	}
}

func TestConcurrentMutationsAreLinearized(t *testing.T) {
	s, _ := newTestStore(t)
	gen := testGenerator(7)

	const initial = 20
	for range initial {
		if _, err := s.Append(gen); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	const appends, removes = 25, 15
	var genMu sync.Mutex
	lockedGen := func() Person {
		genMu.Lock()
		defer genMu.Unlock()
		return gen()
	}

	var wg sync.WaitGroup
	errs := make(chan error, appends+removes)
	for range appends {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Append(lockedGen); err != nil {
				errs <- err
			}
		}()
	}
	for range removes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.RemoveAt(0); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent mutation: %v", err)
	}

	people, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := initial + appends - removes; len(people) != want {
		t.Errorf("got %d people, want %d (lost update)", len(people), want)
	}
}

// interleavingMedium lets a test pause a reader between Read and Write.
type interleavingMedium struct {
	Medium
	afterRead func()
}

func (m *interleavingMedium) Read() ([]Person, error) {
	people, err := m.Medium.Read()
	if m.afterRead != nil {
		hook := m.afterRead
		m.afterRead = nil
		hook()
	}
	return people, err
}

func TestSeparateOwnersLoseUpdates(t *testing.T) {
	_, medium := newTestStore(t)
	gen := testGenerator(8)

	seed := New(medium)
	for range 2 {
		seed.Append(gen)
	}

	// The "listener" owner appends while the "ui" owner is between its
	// read and its write.
	listenerSide := New(medium)
	uiMedium := &interleavingMedium{Medium: medium}
	uiSide := New(uiMedium)
	uiMedium.afterRead = func() {
		if _, err := listenerSide.Append(gen); err != nil {
			t.Errorf("listener Append: %v", err)
		}
	}

	if _, err := uiSide.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}

	people, _ := seed.Load()
	if len(people) != 1 {
		t.Errorf("got %d people, want 1: the last writer should win", len(people))
	}
}

func TestAt(t *testing.T) {
	people := []Person{{ID: 1}, {ID: 2}}

	p, err := At(people, 1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if p.ID != 2 {
		t.Errorf("At(1).ID = %d, want 2", p.ID)
	}

	for _, idx := range []int{-1, 2} {
		if _, err := At(people, idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("At(%d) err = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if _, err := At(nil, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("At(nil, 0) err = %v, want ErrIndexOutOfRange", err)
	}
}
