// Package shell implements the interactive menu and its workflows.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/VictoriaairotciV/ebookstore/internal/prompt"
	"github.com/VictoriaairotciV/ebookstore/internal/storage"
)

// Shell runs the interactive session: one menu loop dispatching to the
// add, update, delete, and search workflows.
type Shell struct {
	store  *storage.Store
	prompt *prompt.Prompter
	out    io.Writer
	log    zerolog.Logger
}

// New wires a Shell over the given store, input reader, and output
// writer. The logger receives a structured record of every mutation;
// it should never write to the interactive terminal.
func New(store *storage.Store, r prompt.LineReader, out io.Writer, log zerolog.Logger) *Shell {
	return &Shell{
		store:  store,
		prompt: prompt.NewPrompter(r, out),
		out:    out,
		log:    log,
	}
}

// Run displays the main menu until the user chooses to exit. End of
// input (EOF or an aborted prompt) also ends the session cleanly.
func (sh *Shell) Run() error {
	for {
		fmt.Fprintln(sh.out, "Please choose an option:")
		fmt.Fprintln(sh.out, "1. Enter book")
		fmt.Fprintln(sh.out, "2. Update book")
		fmt.Fprintln(sh.out, "3. Delete book")
		fmt.Fprintln(sh.out, "4. Search books")
		fmt.Fprintln(sh.out, "0. Exit")

		choice, err := sh.prompt.String("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.ToLower(choice) {
		case "1":
			err = sh.addBooks()
		case "2":
			err = sh.updateBook()
		case "3":
			err = sh.deleteBook()
		case "4":
			err = sh.searchBooks()
		case "0":
			return nil
		default:
			fmt.Fprintln(sh.out, "Invalid choice, please try again.")
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
