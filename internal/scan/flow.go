// Package scan implements the scan-write-report flow: obtain a product
// identifier, print it, persist it and print a confirmation.
package scan

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fairyhunter13/product-scanner-simulator/internal/idfile"
	"github.com/fairyhunter13/product-scanner-simulator/internal/model"
	"github.com/fairyhunter13/product-scanner-simulator/internal/obs"
)

// DefaultProductID is the identifier produced by the simulated scanner.
const DefaultProductID model.ProductID = "12345"

// Console lines written by the flow.
const (
	scannedFormat = "Scanned Product ID: %s\n"
	writtenFormat = "Product ID has been written to file: %s\n"
	openErrorLine = "Error opening file!\n"
)

// Source yields the identifier of a scanned product.
type Source interface {
	Scan() model.ProductID
}

// Persister stores a scanned identifier.
type Persister interface {
	Persist(id model.ProductID) error
}

// FixedSource always scans the same identifier.
type FixedSource model.ProductID

// Scan returns the fixed identifier.
func (s FixedSource) Scan() model.ProductID { return model.ProductID(s) }

// Flow runs one scan against Source, reporting on Out and persisting through
// Persister.
type Flow struct {
	Source    Source
	Persister Persister
	Out       io.Writer
	Log       *slog.Logger
}

// New returns a Flow with the reference source and the identifier file at path.
func New(out io.Writer, path string) *Flow {
	return &Flow{
		Source:    FixedSource(DefaultProductID),
		Persister: idfile.File{Path: path},
		Out:       out,
	}
}

// Run executes the flow once and returns the scanned identifier. Persistence
// failures are reported and swallowed; the confirmation line is always
// written.
func (f *Flow) Run() model.ProductID {
	log := f.Log
	if log == nil {
		log = obs.Logger
	}
	id := f.Source.Scan()
	_, _ = fmt.Fprintf(f.Out, scannedFormat, id)

	if err := f.Persister.Persist(id); err != nil {
		if errors.Is(err, idfile.ErrOpen) {
			_, _ = io.WriteString(f.Out, openErrorLine)
		}
		log.Warn("scan_persist_failed", "product_id", id.String(), "error", err)
	} else {
		log.Debug("scan_persisted", "product_id", id.String())
	}

	_, _ = fmt.Fprintf(f.Out, writtenFormat, id)
	log.Debug("scan_completed", "product_id", id.String())
	return id
}
