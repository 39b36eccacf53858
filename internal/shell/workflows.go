package shell

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/VictoriaairotciV/ebookstore/internal/book"
)

// addBooks prompts for new book details in a loop, inserting each one,
// until the user declines to add another.
func (sh *Shell) addBooks() error {
	fmt.Fprintln(sh.out, "-- Add new books --")
	fmt.Fprintln(sh.out)

	for {
		fmt.Fprintln(sh.out, "Please enter the book details:")
		title, err := sh.prompt.NonEmptyString("Title: ")
		if err != nil {
			return err
		}
		author, err := sh.prompt.NonEmptyString("Author: ")
		if err != nil {
			return err
		}
		// Quantity is not range-checked; negative stock is accepted.
		quantity, err := sh.prompt.Integer("Number in stock: ")
		if err != nil {
			return err
		}

		id, err := sh.store.Insert(title, author, quantity)
		if err != nil {
			return err
		}
		sh.log.Info().
			Int64("id", id).
			Str("title", title).
			Str("author", author).
			Int64("quantity", quantity).
			Msg("book added")

		fmt.Fprintln(sh.out, "Saved.")
		fmt.Fprintln(sh.out)

		again, err := sh.prompt.Confirm("Add another? Y/N ")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// searchBooks prompts for one query and prints the match count and
// table. Zero matches print nothing beyond the count.
func (sh *Shell) searchBooks() error {
	fmt.Fprintln(sh.out, "-- Search --")
	query, err := sh.prompt.String("Query (title or author): ")
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out)

	matches, err := sh.store.FindMatching("%" + query + "%")
	if err != nil {
		return err
	}

	fmt.Fprintf(sh.out, "%d result(s)\n", len(matches))
	fmt.Fprintln(sh.out)
	if len(matches) == 0 {
		return nil
	}

	printBookTable(sh.out, matches, false)
	fmt.Fprintln(sh.out)
	return nil
}

// updateBook searches for a book, lets the user pick one, and applies
// a partial update: blank answers keep the existing values.
func (sh *Shell) updateBook() error {
	fmt.Fprintln(sh.out, "-- Update --")
	fmt.Fprintln(sh.out, "Search for the book to be updated")

	matches, err := sh.queryForBooks()
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		sh.abortSelection()
		return nil
	}

	selected, err := sh.selectFromList(matches)
	if err != nil {
		return err
	}

	newTitle, err := sh.prompt.String("Enter the new title, or blank to skip: ")
	if err != nil {
		return err
	}
	newAuthor, err := sh.prompt.String("Enter the new author, or blank to skip: ")
	if err != nil {
		return err
	}
	newQuantity, haveQuantity, err := sh.prompt.IntegerOrBlank("Enter the new stock level, or blank to skip: ")
	if err != nil {
		return err
	}

	upd := book.Update{}
	if newTitle != "" {
		upd.Title = &newTitle
	}
	if newAuthor != "" {
		upd.Author = &newAuthor
	}
	if haveQuantity {
		upd.Quantity = &newQuantity
	}

	merged := selected.Merge(upd)
	if err := sh.store.Update(merged); err != nil {
		return err
	}
	sh.log.Info().
		Int64("id", merged.ID).
		Str("title", merged.Title).
		Str("author", merged.Author).
		Int64("quantity", merged.Quantity).
		Msg("book updated")

	fmt.Fprintln(sh.out, "Updated.")
	fmt.Fprintln(sh.out)
	return nil
}

// deleteBook searches for a book, lets the user pick one, and removes
// it.
func (sh *Shell) deleteBook() error {
	fmt.Fprintln(sh.out, "-- Delete --")
	fmt.Fprintln(sh.out, "Search for the book to be deleted")

	matches, err := sh.queryForBooks()
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		sh.abortSelection()
		return nil
	}

	selected, err := sh.selectFromList(matches)
	if err != nil {
		return err
	}

	if err := sh.store.Delete(selected.ID); err != nil {
		return err
	}
	sh.log.Info().
		Int64("id", selected.ID).
		Str("title", selected.Title).
		Msg("book deleted")

	fmt.Fprintln(sh.out, "Deleted.")
	fmt.Fprintln(sh.out)
	return nil
}

// queryForBooks prompts for a search query until it matches something,
// or returns an empty slice when the user gives up.
func (sh *Shell) queryForBooks() ([]book.Book, error) {
	for {
		query, err := sh.prompt.String("Query (title or author): ")
		if err != nil {
			return nil, err
		}

		matches, err := sh.store.FindMatching("%" + query + "%")
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return matches, nil
		}

		again, err := sh.prompt.Confirm("No matches, try again? Y/N ")
		if err != nil {
			return nil, err
		}
		if !again {
			return nil, nil
		}
	}
}

// abortSelection is the handled form of the declined-search path:
// update and delete return to the menu instead of selecting from an
// empty list.
func (sh *Shell) abortSelection() {
	fmt.Fprintln(sh.out, "Nothing selected.")
	fmt.Fprintln(sh.out)
}

// selectFromList shows a numbered table and returns the chosen book.
// Numbers outside [1, len(books)] are rejected and re-prompted.
func (sh *Shell) selectFromList(books []book.Book) (book.Book, error) {
	printBookTable(sh.out, books, true)
	fmt.Fprintln(sh.out)

	for {
		n, err := sh.prompt.Integer("Enter the number of the book to update: ")
		if err != nil {
			return book.Book{}, err
		}
		if n < 1 || n > int64(len(books)) {
			fmt.Fprintf(sh.out, "'%d' is not a valid choice, out of range.\n", n)
			continue
		}
		return books[n-1], nil
	}
}

// printBookTable renders books as an aligned table. When numbered is
// true, each row is prefixed with its 1-based position for selection.
func printBookTable(out io.Writer, books []book.Book, numbered bool) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if numbered {
		fmt.Fprintln(w, "#\tTitle\tAuthor\tStock Level")
		for i, b := range books {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, b.Title, b.Author, b.Quantity)
		}
	} else {
		fmt.Fprintln(w, "Title\tAuthor\tStock Level")
		for _, b := range books {
			fmt.Fprintf(w, "%s\t%s\t%d\n", b.Title, b.Author, b.Quantity)
		}
	}
	w.Flush()
}
