// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"io"

	"github.com/sales-dashboard/backend/internal/domain/ingestion"
)

// TableReader decodes an uploaded spreadsheet into a raw table.
type TableReader interface {
	// Supports reports whether the file name has an accepted extension.
	Supports(filename string) bool

	// Read decodes the file content. The format is chosen from the file name.
	Read(filename string, r io.Reader) (*ingestion.Table, error)
}
