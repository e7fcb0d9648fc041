package collection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/desertthunder/crate/internal/store"
	tu "github.com/desertthunder/crate/internal/testing"
)

var mezzanineSeed = []models.Album{
	{ID: 0, Title: "Mezzanine", Artist: "Massive Attack", Year: 1998},
}

// newAlbumManager returns a manager over a fresh flaky store seeded with mezzanineSeed.
func newAlbumManager(t *testing.T) (*Manager[models.Album], *tu.FlakyStore) {
	t.Helper()

	logger := shared.NewLogger(&bytes.Buffer{})
	s := tu.NewFlakyStore()
	adapter := store.NewAdapter(s, "albumsData", logger)
	return New(adapter, models.AlbumKind, mezzanineSeed, logger), s
}

func candidate(title, artist string, year int) models.Album {
	return models.Album{Title: title, Artist: artist, Year: year}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store returns seed without writing", func(t *testing.T) {
		m, s := newAlbumManager(t)

		got := m.Load(ctx)
		if !reflect.DeepEqual(got, mezzanineSeed) {
			t.Errorf("expected seed, got %+v", got)
		}
		if s.Puts() != 0 {
			t.Errorf("Load should not write, saw %d puts", s.Puts())
		}
	})

	t.Run("corrupt data falls back to seed", func(t *testing.T) {
		for _, raw := range []string{"{not json", "null", `{"id":1}`, `"albums"`} {
			m, s := newAlbumManager(t)
			if err := s.Store.Put(ctx, "albumsData", []byte(raw)); err != nil {
				t.Fatalf("failed to seed store: %v", err)
			}

			if got := m.Load(ctx); !reflect.DeepEqual(got, mezzanineSeed) {
				t.Errorf("raw %q: expected seed, got %+v", raw, got)
			}
		}
	})

	t.Run("inconsistent data falls back to seed", func(t *testing.T) {
		m, s := newAlbumManager(t)
		raw := `[{"id":1,"title":"A","artist":"B","year":2000},{"id":1,"title":"C","artist":"D","year":2001}]`
		_ = s.Store.Put(ctx, "albumsData", []byte(raw))

		if got := m.Load(ctx); !reflect.DeepEqual(got, mezzanineSeed) {
			t.Errorf("expected seed for duplicate ids, got %+v", got)
		}
	})

	t.Run("blank entities fall back to seed", func(t *testing.T) {
		for _, raw := range []string{
			`[null]`,
			`[{"id":0}]`,
			`[null,{"id":1,"title":"x","artist":"y","year":2000}]`,
			`[{"id":0,"title":"   ","artist":"y","year":2000}]`,
		} {
			m, s := newAlbumManager(t)
			_ = s.Store.Put(ctx, "albumsData", []byte(raw))

			if got := m.Load(ctx); !reflect.DeepEqual(got, mezzanineSeed) {
				t.Errorf("raw %s: expected seed, got %+v", raw, got)
			}
		}
	})

	t.Run("unreadable store falls back to seed", func(t *testing.T) {
		m, s := newAlbumManager(t)
		s.FailReads(errors.New("store inaccessible"))

		if got := m.Load(ctx); !reflect.DeepEqual(got, mezzanineSeed) {
			t.Errorf("expected seed, got %+v", got)
		}
	})

	t.Run("persisted collection wins over seed", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		res, err := m.Add(ctx, candidate("New Album", "New Artist", 2020), m.Load(ctx))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		if got := m.Load(ctx); !reflect.DeepEqual(got, res.Items) {
			t.Errorf("expected persisted collection %+v, got %+v", res.Items, got)
		}
	})

	t.Run("an empty persisted collection is kept", func(t *testing.T) {
		m, s := newAlbumManager(t)
		_ = s.Store.Put(ctx, "albumsData", []byte(`[]`))

		if got := m.Load(ctx); len(got) != 0 {
			t.Errorf("expected empty collection, got %+v", got)
		}
	})
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("appends with next id and default cover", func(t *testing.T) {
		m, s := newAlbumManager(t)
		seed := m.Load(ctx)

		res, err := m.Add(ctx, candidate("New Album", "New Artist", 2020), seed)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		want := append(append([]models.Album{}, mezzanineSeed...), models.Album{
			ID: 1, Title: "New Album", Artist: "New Artist", Year: 2020, Cover: models.DefaultAlbumCover(1),
		})
		if !reflect.DeepEqual(res.Items, want) {
			t.Errorf("expected %+v, got %+v", want, res.Items)
		}
		if !res.Persisted {
			t.Error("expected write-through to succeed")
		}

		stored, err := Decode[models.Album](s.LastPut())
		if err != nil {
			t.Fatalf("stored value should decode: %v", err)
		}
		if !reflect.DeepEqual(stored, res.Items) {
			t.Errorf("store and memory disagree: %+v vs %+v", stored, res.Items)
		}
	})

	t.Run("case-insensitive duplicate is rejected", func(t *testing.T) {
		m, s := newAlbumManager(t)
		first, err := m.Add(ctx, candidate("New Album", "New Artist", 2020), m.Load(ctx))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		puts := s.Puts()

		res, err := m.Add(ctx, candidate("mezzanine", "massive attack", 1998), first.Items)

		var dup *models.DuplicateError
		if !errors.As(err, &dup) {
			t.Fatalf("expected DuplicateError, got %v", err)
		}
		if !errors.Is(err, shared.ErrDuplicate) {
			t.Error("expected error to match ErrDuplicate")
		}
		if !strings.Contains(err.Error(), "Mezzanine") || !strings.Contains(err.Error(), "Massive Attack") {
			t.Errorf("expected message to name the existing album, got %q", err.Error())
		}
		if !reflect.DeepEqual(res.Items, first.Items) {
			t.Error("collection should be unchanged on duplicate")
		}
		if s.Puts() != puts {
			t.Error("a rejected add must not write")
		}
	})

	t.Run("padded duplicate is rejected", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		res, err := m.Add(ctx, candidate("Foo", "Bar", 2000), nil)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		if _, err := m.Add(ctx, candidate("foo", " bar ", 2001), res.Items); !errors.Is(err, shared.ErrDuplicate) {
			t.Errorf("expected duplicate, got %v", err)
		}
	})

	t.Run("first add into empty collection gets id 0", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		res, err := m.Add(ctx, candidate("Foo", "Bar", 2000), []models.Album{})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if res.Items[0].ID != 0 {
			t.Errorf("expected id 0, got %d", res.Items[0].ID)
		}
	})

	t.Run("caller id is discarded", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		c := candidate("Foo", "Bar", 2000)
		c.ID = 42

		res, err := m.Add(ctx, c, m.Load(ctx))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if got := res.Items[len(res.Items)-1].ID; got != 1 {
			t.Errorf("expected assigned id 1, got %d", got)
		}
	})

	t.Run("ids follow the maximum, not the length", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		current := []models.Album{
			{ID: 7, Title: "A", Artist: "B"},
			{ID: 3, Title: "C", Artist: "D"},
		}

		res, err := m.Add(ctx, candidate("E", "F", 2000), current)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if got := res.Items[2].ID; got != 8 {
			t.Errorf("expected id 8, got %d", got)
		}
	})

	t.Run("current is never mutated", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		current := make([]models.Album, 1, 4)
		current[0] = mezzanineSeed[0]

		res, err := m.Add(ctx, candidate("New Album", "New Artist", 2020), current)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if len(current) != 1 {
			t.Errorf("current length changed to %d", len(current))
		}

		res.Items[0].Title = "changed"
		if current[0].Title != "Mezzanine" {
			t.Error("result shares backing array with current")
		}
	})

	t.Run("write failure still succeeds in memory", func(t *testing.T) {
		m, s := newAlbumManager(t)
		s.FailWrites(tu.ErrQuotaExceeded)

		res, err := m.Add(ctx, candidate("New Album", "New Artist", 2020), m.Load(ctx))
		if err != nil {
			t.Fatalf("Add should succeed despite write failure: %v", err)
		}
		if res.Persisted {
			t.Error("expected Persisted to be false")
		}
		if len(res.Items) != 2 {
			t.Errorf("expected 2 albums, got %d", len(res.Items))
		}
	})

	t.Run("separator inside a field is not a duplicate", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		first, err := m.Add(ctx, candidate("a|b", "c", 2000), m.Load(ctx))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if _, err := m.Add(ctx, candidate("a", "b|c", 2000), first.Items); err != nil {
			t.Errorf("expected distinct albums, got %v", err)
		}
	})

	t.Run("inner whitespace is significant", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		first, err := m.Add(ctx, candidate("Foo Bar", "X", 2000), m.Load(ctx))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if _, err := m.Add(ctx, candidate("Foo  Bar", "X", 2000), first.Items); err != nil {
			t.Errorf("expected distinct albums, got %v", err)
		}
		if _, err := m.Add(ctx, candidate(" foo bar ", "x", 2000), first.Items); !errors.Is(err, shared.ErrDuplicate) {
			t.Errorf("expected padded, recased title to be a duplicate, got %v", err)
		}
	})

	t.Run("empty title does not crash", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		if _, err := m.Add(ctx, candidate("", "X", 2000), m.Load(ctx)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestAddProperties(t *testing.T) {
	ctx := context.Background()
	m, _ := newAlbumManager(t)

	titles := []string{"Alpha", "alpha", "Beta", " BETA ", "Gamma", "Delta", "gamma", "Epsilon"}
	artists := []string{"One", "one", "Two", "two", "One", "Three", "one", "Three"}

	current := m.Load(ctx)
	for i := range titles {
		prevMax := NextID(current) - 1

		res, err := m.Add(ctx, candidate(titles[i], artists[i], 2000+i), current)
		if err != nil {
			if !errors.Is(err, shared.ErrDuplicate) {
				t.Fatalf("unexpected error: %v", err)
			}
			continue
		}

		newest := res.Items[len(res.Items)-1]
		if newest.ID != prevMax+1 {
			t.Errorf("expected newest id %d, got %d", prevMax+1, newest.ID)
		}
		current = res.Items
	}

	if err := Check(current); err != nil {
		t.Errorf("invariants violated: %v", err)
	}
	if len(current) != 6 {
		t.Errorf("expected 6 albums (seed + 5 distinct), got %d", len(current))
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("restores and persists the seed", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		if _, err := m.Add(ctx, candidate("New Album", "New Artist", 2020), m.Load(ctx)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		res := m.Reset(ctx)
		if !reflect.DeepEqual(res.Items, mezzanineSeed) {
			t.Errorf("expected seed, got %+v", res.Items)
		}
		if !res.Persisted {
			t.Error("expected reset to persist")
		}
		if got := m.Load(ctx); !reflect.DeepEqual(got, mezzanineSeed) {
			t.Errorf("expected load after reset to return seed, got %+v", got)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		first, second := m.Reset(ctx), m.Reset(ctx)
		if !reflect.DeepEqual(first.Items, second.Items) {
			t.Errorf("resets disagree: %+v vs %+v", first.Items, second.Items)
		}
	})

	t.Run("seed is never mutated through results", func(t *testing.T) {
		m, _ := newAlbumManager(t)
		res := m.Reset(ctx)
		res.Items[0].Title = "changed"

		if m.Seed()[0].Title != "Mezzanine" || mezzanineSeed[0].Title != "Mezzanine" {
			t.Error("seed was mutated")
		}
	})

	t.Run("write failure is reported", func(t *testing.T) {
		m, s := newAlbumManager(t)
		s.FailWrites(tu.ErrQuotaExceeded)

		res := m.Reset(ctx)
		if res.Persisted {
			t.Error("expected Persisted to be false")
		}
		if !reflect.DeepEqual(res.Items, mezzanineSeed) {
			t.Errorf("expected seed, got %+v", res.Items)
		}
	})
}

func TestAppendConcurrent(t *testing.T) {
	ctx := context.Background()
	m, _ := newAlbumManager(t)

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// every title appears twice across the goroutines
			_, err := m.Append(ctx, candidate(fmt.Sprintf("Album %d", i%20), "Artist", 2000))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var dups int
	for err := range errs {
		if errors.Is(err, shared.ErrDuplicate) {
			dups++
		} else if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	final := m.Load(ctx)
	if dups != 20 {
		t.Errorf("expected 20 duplicates, got %d", dups)
	}
	if len(final) != 21 {
		t.Errorf("expected 21 albums, got %d", len(final))
	}
	if err := Check(final); err != nil {
		t.Errorf("invariants violated: %v", err)
	}
}

func TestCodec(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		items := append(models.SeedAlbums(), models.Album{ID: 9, Title: "Ünïcode \"quoted\"", Artist: "A|B", Year: 2001})

		raw, err := Encode(items)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		got, err := Decode[models.Album](raw)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !reflect.DeepEqual(got, items) {
			t.Errorf("round trip mismatch: %+v vs %+v", got, items)
		}
	})

	t.Run("nil encodes as empty array", func(t *testing.T) {
		raw, err := Encode[models.Album](nil)
		if err != nil || raw != "[]" {
			t.Errorf("expected [], got %q (%v)", raw, err)
		}
	})

	t.Run("field names", func(t *testing.T) {
		raw, _ := Encode(mezzanineSeed)
		for _, field := range []string{`"id":0`, `"title":"Mezzanine"`, `"artist":"Massive Attack"`, `"year":1998`} {
			if !strings.Contains(raw, field) {
				t.Errorf("expected %s in %s", field, raw)
			}
		}
	})
}

func TestFavoritesManager(t *testing.T) {
	ctx := context.Background()
	logger := shared.NewLogger(&bytes.Buffer{})
	m := New(store.NewAdapter(store.NewMemory(), "favoritesData", logger), models.FavoriteKind, models.SeedFavorites(), logger)

	fav, err := models.NewFavorite("chickpea curry", "MINIMALIST BAKER", 20, "")
	if err != nil {
		t.Fatalf("NewFavorite failed: %v", err)
	}

	_, err = m.Append(ctx, fav)
	if !errors.Is(err, shared.ErrDuplicate) {
		t.Fatalf("expected duplicate recipe, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "recipe ") {
		t.Errorf("expected message to name the kind, got %q", err.Error())
	}
}
