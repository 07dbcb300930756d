// Package idfile persists a scanned product identifier to a plain text file
// and reads it back.
package idfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fairyhunter13/product-scanner-simulator/internal/model"
)

// DefaultPath is the identifier file name, relative to the working directory.
const DefaultPath = "product_id.txt"

// ErrOpen reports that the identifier file could not be opened for writing.
var ErrOpen = errors.New("open product id file")

// File persists identifiers to Path.
type File struct {
	Path string
}

// Persist writes id to f.Path. See Write.
func (f File) Persist(id model.ProductID) error {
	return Write(f.Path, id)
}

// Write truncates path and stores the raw identifier without a trailing
// newline. Open failures wrap ErrOpen; nothing is created in that case.
func Write(path string, id model.ProductID) (err error) {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close product id file: %w", cerr)
		}
	}()
	if _, err := io.WriteString(fh, id.String()); err != nil {
		return fmt.Errorf("write product id file: %w", err)
	}
	return nil
}

// Read returns the trimmed identifier stored at path. A missing or blank file
// reports ok=false with a nil error.
func Read(path string) (model.ProductID, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read product id file: %w", err)
	}
	id := strings.TrimSpace(string(b))
	if id == "" {
		return "", false, nil
	}
	return model.ProductID(id), true, nil
}
