package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dshills/listkit/internal/app"
)

const (
	formatAuto  = "auto"
	formatLines = "lines"
	formatJSON  = "json"
)

// writeResult prints r in format. Auto prints lines to a terminal and JSON
// otherwise. A cancelled run prints nothing in lines format and returns
// errCancelled.
func writeResult(w io.Writer, r app.Result, format string) error {
	if format == formatAuto {
		format = formatJSON
		if isTerminal(w) {
			format = formatLines
		}
	}

	if format == formatJSON {
		doc, err := r.JSON()
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		if _, err := fmt.Fprintln(w, doc); err != nil {
			return err
		}
	} else if !r.Cancelled {
		if _, err := io.WriteString(w, r.Lines()); err != nil {
			return err
		}
	}

	if r.Cancelled {
		return errCancelled
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
