// Package server hosts a local static file server so the dumped JSON (and
// any site built around it) can be inspected in a browser. It is a
// convenience for manual inspection, not part of the extraction core.
package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/protodex/protodex/internal/errors"
)

// Serve blocks, serving dir over HTTP on the given port until the process is
// interrupted.
func Serve(dir string, port int) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.NewServeError(fmt.Sprintf("cannot serve '%s'", dir), err)
	}
	if !info.IsDir() {
		return errors.NewServeError(fmt.Sprintf("'%s' is not a directory", dir), errors.ErrInvalidFilePath)
	}

	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(os.Stderr, "Serving %s at http://localhost:%d\n", dir, port)
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop the server")

	if err := http.ListenAndServe(addr, http.FileServer(http.Dir(dir))); err != nil {
		return errors.NewServeError(fmt.Sprintf("server on %s stopped", addr), err)
	}
	return nil
}
