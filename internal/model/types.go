// Package model defines domain types used by the scanner and catalog.
package model

// ProductID is the textual code produced by a product scan.
type ProductID string

// String returns the raw identifier.
func (id ProductID) String() string { return string(id) }

// Product is a catalog entry describing a scannable product.
type Product struct {
	Name           string `json:"name" yaml:"name"`
	Category       string `json:"category" yaml:"category"`
	Description    string `json:"description" yaml:"description"`
	Specifications string `json:"specifications" yaml:"specifications"`
	Features       string `json:"features" yaml:"features"`
	UseCases       string `json:"use_cases" yaml:"use_cases"`
	Image          string `json:"image,omitempty" yaml:"image,omitempty"`
}

// ScanReport is the outcome of one simulated scan as served over HTTP.
type ScanReport struct {
	ScanID    string    `json:"scan_id"`
	Output    []string  `json:"output"`
	ProductID ProductID `json:"product_id,omitempty"`
	Found     bool      `json:"found"`
	Product   *Product  `json:"product,omitempty"`
	Info      string    `json:"info"`
	ScannedAt string    `json:"scanned_at"`
}
