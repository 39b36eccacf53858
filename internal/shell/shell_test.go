package shell

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/VictoriaairotciV/ebookstore/internal/prompt"
	"github.com/VictoriaairotciV/ebookstore/internal/storage"
)

// newTestStore opens a freshly seeded store in a temp directory.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// runSession drives a Shell over the store with scripted input and
// returns everything it printed.
func runSession(t *testing.T, store *storage.Store, input string) string {
	t.Helper()

	out := &bytes.Buffer{}
	sh := New(store, prompt.NewPlain(strings.NewReader(input), out), out, zerolog.Nop())
	if err := sh.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestMenuExit(t *testing.T) {
	store := newTestStore(t)

	out := runSession(t, store, "0\n")
	for _, want := range []string{
		"Please choose an option:",
		"1. Enter book",
		"2. Update book",
		"3. Delete book",
		"4. Search books",
		"0. Exit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("menu output missing %q", want)
		}
	}
}

func TestMenuInvalidChoice(t *testing.T) {
	store := newTestStore(t)

	out := runSession(t, store, "7\nhello\n0\n")
	if n := strings.Count(out, "Invalid choice, please try again."); n != 2 {
		t.Errorf("printed %d invalid-choice messages, want 2", n)
	}
}

func TestMenuEndOfInputExits(t *testing.T) {
	store := newTestStore(t)

	// No input at all: the menu prompt hits EOF and the session ends
	// without error.
	runSession(t, store, "")
}

func TestAddWorkflow(t *testing.T) {
	store := newTestStore(t)

	out := runSession(t, store, strings.Join([]string{
		"1",
		"Dune",
		"Frank Herbert",
		"10",
		"n",
		"0",
	}, "\n")+"\n")

	if !strings.Contains(out, "Saved.") {
		t.Error("output missing save confirmation")
	}

	books, err := store.FindMatching("%Dune%")
	if err != nil {
		t.Fatalf("FindMatching failed: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("got %d Dune books, want 1", len(books))
	}
	if books[0].Author != "Frank Herbert" || books[0].Quantity != 10 {
		t.Errorf("stored book = %+v", books[0])
	}
}

func TestAddAnotherLoops(t *testing.T) {
	store := newTestStore(t)

	before, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	runSession(t, store, strings.Join([]string{
		"1",
		"First Book", "Author One", "1", "y",
		"Second Book", "Author Two", "2", "n",
		"0",
	}, "\n")+"\n")

	after, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if after != before+2 {
		t.Errorf("Count = %d, want %d", after, before+2)
	}
}

func TestSearchFindsSeededBook(t *testing.T) {
	store := newTestStore(t)

	out := runSession(t, store, "4\nPotter\n0\n")
	if !strings.Contains(out, "1 result(s)") {
		t.Error("output missing result count")
	}
	if !strings.Contains(out, "Harry Potter and the Philosopher's Stone") {
		t.Error("output missing matched title")
	}
	if !strings.Contains(out, "J. K. Rowling") {
		t.Error("output missing matched author")
	}
}

func TestSearchNoMatches(t *testing.T) {
	store := newTestStore(t)

	out := runSession(t, store, "4\nAsimov\n0\n")
	if !strings.Contains(out, "0 result(s)") {
		t.Error("output missing zero result count")
	}
	if strings.Contains(out, "Stock Level") {
		t.Error("zero matches should not print a table")
	}
}

func TestUpdatePartialKeepsUnsetFields(t *testing.T) {
	store := newTestStore(t)

	// Blank title and author, new quantity only.
	out := runSession(t, store, strings.Join([]string{
		"2",
		"Dickens",
		"1",
		"",
		"",
		"7",
		"0",
	}, "\n")+"\n")

	if !strings.Contains(out, "Updated.") {
		t.Error("output missing update confirmation")
	}

	got, err := store.GetByID(3001)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "A Tale of Two Cities" || got.Author != "Charles Dickens" {
		t.Errorf("blank answers changed text fields: %+v", got)
	}
	if got.Quantity != 7 {
		t.Errorf("Quantity = %d, want 7", got.Quantity)
	}
}

func TestUpdateAllFields(t *testing.T) {
	store := newTestStore(t)

	runSession(t, store, strings.Join([]string{
		"2",
		"Wonderland",
		"1",
		"Through the Looking-Glass",
		"L. Carroll",
		"3",
		"0",
	}, "\n")+"\n")

	got, err := store.GetByID(3005)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Through the Looking-Glass" || got.Author != "L. Carroll" || got.Quantity != 3 {
		t.Errorf("updated book = %+v", got)
	}
}

func TestUpdateAbortsWhenSearchDeclined(t *testing.T) {
	store := newTestStore(t)

	out := runSession(t, store, strings.Join([]string{
		"2",
		"no such book",
		"n",
		"0",
	}, "\n")+"\n")

	if !strings.Contains(out, "Nothing selected.") {
		t.Error("declined search should abort back to the menu")
	}
	if strings.Contains(out, "Updated.") {
		t.Error("nothing should have been updated")
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Count = %d, want 5", count)
	}
}

func TestQueryRetryAfterNoMatches(t *testing.T) {
	store := newTestStore(t)

	out := runSession(t, store, strings.Join([]string{
		"3",
		"no such book",
		"y",
		"Wonderland",
		"1",
		"0",
	}, "\n")+"\n")

	if !strings.Contains(out, "No matches, try again? Y/N ") {
		t.Error("output missing retry prompt")
	}
	if !strings.Contains(out, "Deleted.") {
		t.Error("retried query should reach the delete confirmation")
	}

	got, err := store.GetByID(3005)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("book 3005 still present after delete: %+v", got)
	}
}

func TestSelectionRejectsOutOfRange(t *testing.T) {
	store := newTestStore(t)

	// One match; 0, 2, and -1 are all out of range for a list of one.
	out := runSession(t, store, strings.Join([]string{
		"2",
		"Dickens",
		"0",
		"2",
		"-1",
		"1",
		"",
		"",
		"",
		"0",
	}, "\n")+"\n")

	for _, want := range []string{
		"'0' is not a valid choice, out of range.",
		"'2' is not a valid choice, out of range.",
		"'-1' is not a valid choice, out of range.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.Contains(out, "Updated.") {
		t.Error("in-range selection should complete the workflow")
	}
}

func TestDeleteWorkflow(t *testing.T) {
	store := newTestStore(t)

	out := runSession(t, store, strings.Join([]string{
		"3",
		"Tolkien",
		"1",
		"0",
	}, "\n")+"\n")

	if !strings.Contains(out, "Deleted.") {
		t.Error("output missing delete confirmation")
	}

	got, err := store.GetByID(3004)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("book 3004 still present after delete: %+v", got)
	}
}

func TestDeleteAbortsWhenSearchDeclined(t *testing.T) {
	store := newTestStore(t)

	out := runSession(t, store, strings.Join([]string{
		"3",
		"no such book",
		"n",
		"0",
	}, "\n")+"\n")

	if !strings.Contains(out, "Nothing selected.") {
		t.Error("declined search should abort back to the menu")
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Count = %d, want 5", count)
	}
}

func TestMutationsAreLogged(t *testing.T) {
	store := newTestStore(t)

	logBuf := &bytes.Buffer{}
	out := &bytes.Buffer{}
	logger := zerolog.New(logBuf)

	input := strings.Join([]string{
		"1",
		"Dune", "Frank Herbert", "10", "n",
		"0",
	}, "\n") + "\n"

	sh := New(store, prompt.NewPlain(strings.NewReader(input), out), out, logger)
	if err := sh.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(logBuf.String(), `"message":"book added"`) {
		t.Errorf("log missing add record: %s", logBuf.String())
	}
	if strings.Contains(out.String(), "book added") {
		t.Error("log output leaked into the interactive terminal")
	}
}

// TestEndToEndScenario walks the add, search, update, delete cycle for
// one book across successive sessions on the same store.
func TestEndToEndScenario(t *testing.T) {
	store := newTestStore(t)

	// Add.
	runSession(t, store, "1\nDune\nFrank Herbert\n10\nn\n0\n")

	// Search finds it with the original quantity.
	out := runSession(t, store, "4\nDune\n0\n")
	if !strings.Contains(out, "1 result(s)") {
		t.Fatalf("search after add: %q", out)
	}

	books, err := store.FindMatching("%Dune%")
	if err != nil {
		t.Fatalf("FindMatching failed: %v", err)
	}
	if len(books) != 1 || books[0].Quantity != 10 {
		t.Fatalf("after add: %+v", books)
	}
	id := books[0].ID

	// Update quantity only.
	runSession(t, store, "2\nDune\n1\n\n\n5\n0\n")

	got, err := store.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Dune" || got.Author != "Frank Herbert" || got.Quantity != 5 {
		t.Fatalf("after update: %+v", got)
	}

	// Delete.
	runSession(t, store, "3\nDune\n1\n0\n")

	// Search no longer finds it.
	out = runSession(t, store, "4\nDune\n0\n")
	if !strings.Contains(out, "0 result(s)") {
		t.Errorf("search after delete: %q", out)
	}
}
