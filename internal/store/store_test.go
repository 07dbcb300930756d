package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fairyhunter13/product-scanner-simulator/internal/model"
)

func sampleProduct(name string) model.Product {
	return model.Product{
		Name:           name,
		Category:       "Smartphone",
		Description:    name + " description",
		Specifications: "128GB",
		Features:       "Face ID",
		UseCases:       "Photography",
	}
}

func TestStoreAddGet(t *testing.T) {
	s := New()
	want := sampleProduct("Phone")
	if err := s.Add("12345", want); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, ok := s.Get("12345")
	if !ok {
		t.Fatalf("not found")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("product mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreAddOverwrites(t *testing.T) {
	s := New()
	_ = s.Add("1", sampleProduct("Old"))
	_ = s.Add("1", sampleProduct("New"))
	got, _ := s.Get("1")
	if got.Name != "New" {
		t.Fatalf("expected overwrite, got %+v", got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
}

func TestStoreAddRejectsEmptyID(t *testing.T) {
	s := New()
	if err := s.Add("", sampleProduct("X")); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct, got %v", err)
	}
}

func TestStoreInfo(t *testing.T) {
	s := New()
	_ = s.Add("12345", sampleProduct("Phone"))
	if got := s.Info("12345"); got != "Phone (Smartphone): Phone description" {
		t.Fatalf("unexpected info %q", got)
	}
	if got := s.Info("nope"); got != NotAvailable {
		t.Fatalf("unexpected info for missing id %q", got)
	}
}

func TestStoreListSorted(t *testing.T) {
	s := New()
	for _, id := range []model.ProductID{"b", "c", "a"} {
		_ = s.Add(id, sampleProduct(string(id)))
	}
	var ids []model.ProductID
	for _, e := range s.List() {
		ids = append(ids, e.ProductID)
	}
	if diff := cmp.Diff([]model.ProductID{"a", "b", "c"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenMissingFileThenPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty catalog")
	}
	want := sampleProduct("Phone")
	if err := s.Add("12345", want); err != nil {
		t.Fatalf("add: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "\n    \"12345\": {") {
		t.Fatalf("expected 4-space indented catalog, got:\n%s", b)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok := reopened.Get("12345")
	if !ok {
		t.Fatalf("product lost after reopen")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("product mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenMalformedCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestAddRollsBackWhenSaveFails(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "gone", "products.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Add("1", sampleProduct("X")); err == nil {
		t.Fatalf("expected save error")
	}
	if _, ok := s.Get("1"); ok {
		t.Fatalf("entry should be rolled back")
	}
}

func TestStoreConcurrentAdds(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "products.json"))
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		id := model.ProductID(string(rune('a'+i%26)) + strings.Repeat("x", i/26))
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Add(id, sampleProduct(string(id)))
		}()
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Fatalf("expected 50, got %d", s.Len())
	}
}
