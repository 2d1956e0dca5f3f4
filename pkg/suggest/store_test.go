package suggest

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func openStore(t *testing.T, lines string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event_names.txt")
	if lines != "" {
		if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpen_MissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nope", "event_names.txt"))
	if err != nil {
		t.Fatalf("Open on missing file: %v", err)
	}
	if got := s.Names(); len(got) != 0 {
		t.Fatalf("expected empty store, got %v", got)
	}
}

func TestOpen_SkipsBlankAndDuplicateLines(t *testing.T) {
	s := openStore(t, "Dentist\n\n  \nDentist\ndentist\nStandup\n")
	want := []string{"Dentist", "Standup"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestAppend_PersistsAndDeduplicates(t *testing.T) {
	s := openStore(t, "Dentist\n")

	for _, name := range []string{"Standup", "standup", "  ", "Dentist"} {
		if err := s.Append(name); err != nil {
			t.Fatalf("Append(%q): %v", name, err)
		}
	}

	want := []string{"Dentist", "Standup"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	reopened, err := Open(s.path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("reopened Names() = %v, want %v", got, want)
	}
}

func TestSuggest_Ranking(t *testing.T) {
	s := openStore(t, "Weekly standup\nStand-up comedy\nStar and moon\nDentist\n")

	got := s.Suggest("stand", 10)
	want := []string{"Stand-up comedy", "Weekly standup", "Star and moon"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Suggest(stand) = %v, want %v", got, want)
	}
}

func TestSuggest_SubsequenceOnly(t *testing.T) {
	s := openStore(t, "Team retrospective\nDentist\n")

	got := s.Suggest("trs", 10)
	want := []string{"Team retrospective"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Suggest(trs) = %v, want %v", got, want)
	}
}

func TestSuggest_LimitAndEmptyQuery(t *testing.T) {
	s := openStore(t, "One\nTwo\nThree\n")

	if got := s.Suggest("t", 1); !reflect.DeepEqual(got, []string{"Two"}) {
		t.Fatalf("Suggest(t, 1) = %v", got)
	}
	// Empty query returns most recent first.
	want := []string{"Three", "Two"}
	if got := s.Suggest("", 2); !reflect.DeepEqual(got, want) {
		t.Fatalf("Suggest(\"\", 2) = %v, want %v", got, want)
	}
	if got := s.Suggest("x", 0); got != nil {
		t.Fatalf("Suggest with limit 0 = %v, want nil", got)
	}
}

func TestAppend_ConcurrentUse(t *testing.T) {
	s := openStore(t, "")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append("Standup")
			_ = s.Suggest("stand", 5)
		}()
	}
	wg.Wait()

	if got := s.Names(); !reflect.DeepEqual(got, []string{"Standup"}) {
		t.Fatalf("Names() = %v, want one entry", got)
	}
}
