package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical storage format of a sale date.
const DateLayout = "2006-01-02"

// SalesRecord is one normalized row of an uploaded sales table.
type SalesRecord struct {
	Date     time.Time
	Product  string
	Quantity float64
	// Price is nil when the source table had no price-bearing column.
	Price *float64
	Total float64
}

// PriceOrZero returns the unit price, or 0 when the table carried none.
func (r SalesRecord) PriceOrZero() float64 {
	if r.Price == nil {
		return 0
	}
	return *r.Price
}

// Upload is an accepted sales table owned by a single user.
// It is never modified after creation.
type Upload struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Filename      string
	UploadedAt    time.Time
	Currency      Currency
	SourceHeaders []string
	Records       []SalesRecord
}

// NewUpload creates an Upload for the given owner.
func NewUpload(userID uuid.UUID, filename string, currency Currency, headers []string, records []SalesRecord) *Upload {
	return &Upload{
		ID:            uuid.New(),
		UserID:        userID,
		Filename:      filename,
		UploadedAt:    time.Now().UTC(),
		Currency:      currency,
		SourceHeaders: headers,
		Records:       records,
	}
}

// IsOwnedBy reports whether the upload belongs to the given user.
func (u *Upload) IsOwnedBy(userID uuid.UUID) bool {
	return u.UserID == userID
}
