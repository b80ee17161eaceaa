package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu    sync.Mutex
	lines []string
	err   error
	calls int
}

func (f *fakeSource) ReadLines(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out, nil
}

func (f *fakeSource) set(lines []string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = lines
	f.err = err
}

type fakeSink struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func (f *fakeSink) AppendLine(ctx context.Context, line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.lines = append(f.lines, line)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(src LineSource, sink LineSink, opts ...StoreOption) *Store {
	opts = append([]StoreOption{WithLogger(quietLogger())}, opts...)
	return NewStore(src, sink, opts...)
}

func TestStore_ReadAll_FiltersAndDedupes(t *testing.T) {
	src := &fakeSource{lines: []string{
		"id,nombre,fecha,estado",
		"1,Jane,07/25/1984,TX",
		"",
		"2,John,01/02/1990,CA",
		"1,Jane,07/25/1984,TX",
		"garbage",
		"3,Ana,12/31/1975,CA",
	}}
	store := newTestStore(src, &fakeSink{})

	set, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}

	if set.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", set.Len())
	}

	wantIDs := []int{1, 2, 3}
	for i, v := range set.Vendors() {
		if v.ID != wantIDs[i] {
			t.Errorf("vendor[%d].ID = %d, want %d", i, v.ID, wantIDs[i])
		}
	}

	stats := store.Stats()
	want := LoadStats{Lines: 7, Valid: 4, Records: 3, Duplicates: 1}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
}

func TestStore_ReadAll_EmptySource(t *testing.T) {
	store := newTestStore(&fakeSource{}, &fakeSink{})

	set, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
	if !store.Loaded() {
		t.Error("store should be loaded after an empty successful read")
	}
}

func TestStore_ReadAll_IsSticky(t *testing.T) {
	src := &fakeSource{lines: []string{"1,Jane,07/25/1984,TX"}}
	store := newTestStore(src, &fakeSink{})
	ctx := context.Background()

	first, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}

	src.set([]string{"1,Jane,07/25/1984,TX", "2,John,01/02/1990,CA"}, nil)

	second, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("second ReadAll() error: %v", err)
	}
	if second.Len() != first.Len() {
		t.Errorf("second ReadAll() Len = %d, want cached %d", second.Len(), first.Len())
	}
	if src.calls != 1 {
		t.Errorf("source read %d times, want 1", src.calls)
	}
}

func TestStore_ReadAll_SourceFailureIsRetryable(t *testing.T) {
	src := &fakeSource{err: errors.New("disk on fire")}
	store := newTestStore(src, &fakeSink{})
	ctx := context.Background()

	_, err := store.ReadAll(ctx)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("ReadAll() error = %v, want ErrSourceUnavailable", err)
	}
	if store.Loaded() {
		t.Fatal("store should stay unloaded after a source failure")
	}

	src.set([]string{"1,Jane,07/25/1984,TX"}, nil)

	set, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("retry ReadAll() error: %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("retry Len() = %d, want 1", set.Len())
	}
}

func TestStore_DecodePolicy(t *testing.T) {
	lines := []string{
		"1,Jane,07/25/1984,TX",
		"2,Bad,02/31/1984,TX",
		"3,Ana,12/31/1975,CA",
	}

	t.Run("abort", func(t *testing.T) {
		store := newTestStore(&fakeSource{lines: lines}, &fakeSink{})

		_, err := store.ReadAll(context.Background())
		if !errors.Is(err, ErrImpossibleDate) {
			t.Fatalf("ReadAll() error = %v, want ErrImpossibleDate", err)
		}
		if !errors.Is(err, ErrCorruptSource) {
			t.Errorf("ReadAll() error = %v, want ErrCorruptSource", err)
		}
		if store.Loaded() {
			t.Error("aborted load should leave store unloaded")
		}
	})

	t.Run("skip", func(t *testing.T) {
		store := newTestStore(&fakeSource{lines: lines}, &fakeSink{}, WithDecodePolicy(DecodeSkip))

		set, err := store.ReadAll(context.Background())
		if err != nil {
			t.Fatalf("ReadAll() error: %v", err)
		}
		if set.Len() != 2 {
			t.Errorf("Len() = %d, want 2", set.Len())
		}
		if store.Stats().Skipped != 1 {
			t.Errorf("Stats().Skipped = %d, want 1", store.Stats().Skipped)
		}
	})
}

func TestStore_Append_DoesNotTouchCache(t *testing.T) {
	src := &fakeSource{lines: []string{"1,Jane,07/25/1984,TX"}}
	sink := &fakeSink{}
	store := newTestStore(src, sink)
	ctx := context.Background()

	before, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}

	v := Vendor{ID: 9, Name: "New", BirthDate: Date{2000, time.January, 15}, Region: "NY"}
	if err := store.Append(ctx, v); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	if len(sink.lines) != 1 || sink.lines[0] != "9,New,15/01/2000,NY" {
		t.Errorf("sink lines = %v, want [9,New,15/01/2000,NY]", sink.lines)
	}

	after, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if after.Contains(v) || before.Contains(v) {
		t.Error("appended vendor should not appear in cached sets")
	}
	if after.Len() != before.Len() {
		t.Errorf("Len after append = %d, want %d", after.Len(), before.Len())
	}
}

func TestStore_Append_SinkFailure(t *testing.T) {
	sink := &fakeSink{err: errors.New("read-only file system")}
	store := newTestStore(&fakeSource{}, sink)

	v := Vendor{ID: 1, Name: "Jane", BirthDate: Date{1984, time.July, 25}, Region: "TX"}
	err := store.Append(context.Background(), v)
	if !errors.Is(err, ErrSinkUnavailable) {
		t.Errorf("Append() error = %v, want ErrSinkUnavailable", err)
	}
}

func TestStore_ConcurrentReadAllLoadsOnce(t *testing.T) {
	src := &fakeSource{lines: []string{"1,Jane,07/25/1984,TX"}}
	store := newTestStore(src, &fakeSink{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.ReadAll(context.Background()); err != nil {
				t.Errorf("ReadAll() error: %v", err)
			}
		}()
	}
	wg.Wait()

	if src.calls != 1 {
		t.Errorf("source read %d times, want 1", src.calls)
	}
}

func TestDecodePolicy_Valid(t *testing.T) {
	if !DecodeAbort.Valid() || !DecodeSkip.Valid() {
		t.Error("abort and skip should be valid")
	}
	if DecodePolicy("retry").Valid() {
		t.Error("retry should not be valid")
	}
}
