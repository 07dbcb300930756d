// Package store holds the product catalog that scanned identifiers resolve
// against.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fairyhunter13/product-scanner-simulator/internal/model"
	"github.com/fairyhunter13/product-scanner-simulator/internal/obs"
)

// NotAvailable is the info text for identifiers missing from the catalog.
const NotAvailable = "Product information not available."

// ErrInvalidProduct is returned when a product cannot be added.
var ErrInvalidProduct = errors.New("invalid product")

// Entry pairs a product with its identifier.
type Entry struct {
	ProductID model.ProductID `json:"product_id"`
	model.Product
}

// Store is a thread-safe product catalog, optionally backed by a JSON file.
type Store struct {
	mu   sync.RWMutex
	m    map[model.ProductID]model.Product
	path string
}

// New returns an empty in-memory catalog.
func New() *Store {
	return &Store{m: make(map[model.ProductID]model.Product)}
}

// Open loads the catalog at path. A missing file yields an empty catalog that
// will be created on the first Add.
func Open(path string) (*Store, error) {
	s := New()
	s.path = path
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if err := json.Unmarshal(b, &s.m); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if s.m == nil {
		s.m = make(map[model.ProductID]model.Product)
	}
	obs.Logger.Info("catalog_loaded", "path", path, "products", len(s.m))
	return s, nil
}

// Get returns the product for id.
func (s *Store) Get(id model.ProductID) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
}

// Info returns the product description for id, or NotAvailable.
func (s *Store) Info(id model.ProductID) string {
	p, ok := s.Get(id)
	if !ok {
		return NotAvailable
	}
	return fmt.Sprintf("%s (%s): %s", p.Name, p.Category, p.Description)
}

// List returns all entries sorted by identifier.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.m))
	for id, p := range s.m {
		out = append(out, Entry{ProductID: id, Product: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Add stores p under id, replacing any previous entry, and saves the catalog
// when it is file backed. The in-memory entry is rolled back if the save
// fails.
func (s *Store) Add(id model.ProductID, p model.Product) error {
	if id == "" {
		return fmt.Errorf("%w: product_id is required", ErrInvalidProduct)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.m[id]
	s.m[id] = p
	if err := s.saveLocked(); err != nil {
		if existed {
			s.m[id] = prev
		} else {
			delete(s.m, id)
		}
		return err
	}
	return nil
}

// saveLocked writes the catalog with 4-space indentation through a temp file
// in the same directory.
func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}
	b, err := json.MarshalIndent(s.m, "", "    ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("save catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save catalog: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save catalog: %w", err)
	}
	obs.Logger.Info("catalog_saved", "path", s.path, "products", len(s.m))
	return nil
}
