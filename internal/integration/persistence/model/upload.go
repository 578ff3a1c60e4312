package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/sales-dashboard/backend/internal/domain/entity"
)

// UploadModel represents the uploads table. Records are stored inline as a
// JSON document.
type UploadModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	Filename      string     `gorm:"type:varchar(255);not null"`
	Currency      string     `gorm:"type:varchar(10);not null;default:'USD'"`
	SourceHeaders HeaderList `gorm:"not null"`
	Records       RecordList `gorm:"not null"`
	RecordCount   int        `gorm:"not null;default:0"`
	UploadedAt    time.Time  `gorm:"index;not null"`
}

// TableName returns the table name for the UploadModel.
func (UploadModel) TableName() string {
	return "uploads"
}

// ToEntity converts an UploadModel to a domain Upload entity.
func (m *UploadModel) ToEntity() *entity.Upload {
	records := make([]entity.SalesRecord, 0, len(m.Records))
	for _, r := range m.Records {
		records = append(records, r.toEntity())
	}

	return &entity.Upload{
		ID:            m.ID,
		UserID:        m.UserID,
		Filename:      m.Filename,
		UploadedAt:    m.UploadedAt.UTC(),
		Currency:      entity.Currency(m.Currency),
		SourceHeaders: []string(m.SourceHeaders),
		Records:       records,
	}
}

// UploadFromEntity creates an UploadModel from a domain Upload entity.
func UploadFromEntity(upload *entity.Upload) *UploadModel {
	records := make(RecordList, 0, len(upload.Records))
	for _, r := range upload.Records {
		records = append(records, recordFromEntity(r))
	}

	headers := HeaderList(upload.SourceHeaders)
	if headers == nil {
		headers = HeaderList{}
	}

	return &UploadModel{
		ID:            upload.ID,
		UserID:        upload.UserID,
		Filename:      upload.Filename,
		Currency:      string(upload.Currency),
		SourceHeaders: headers,
		Records:       records,
		RecordCount:   len(records),
		UploadedAt:    upload.UploadedAt,
	}
}

// HeaderList stores the original column headers of an upload. It maps to a
// native text array on PostgreSQL and to the array literal text elsewhere.
type HeaderList []string

// GormDBDataType selects the column type per dialect.
func (HeaderList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Value implements driver.Valuer.
func (h HeaderList) Value() (driver.Value, error) {
	return pq.StringArray(h).Value()
}

// Scan implements sql.Scanner.
func (h *HeaderList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*h = HeaderList(arr)
	return nil
}

// RecordModel is the stored form of one sales record.
type RecordModel struct {
	Date     string   `json:"date"`
	Product  string   `json:"product"`
	Quantity float64  `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
	Total    float64  `json:"total"`
}

func recordFromEntity(r entity.SalesRecord) RecordModel {
	return RecordModel{
		Date:     r.Date.Format(entity.DateLayout),
		Product:  r.Product,
		Quantity: r.Quantity,
		Price:    r.Price,
		Total:    r.Total,
	}
}

func (r RecordModel) toEntity() entity.SalesRecord {
	// Dates are written by recordFromEntity only, so a parse failure yields the zero time.
	date, _ := time.Parse(entity.DateLayout, r.Date)
	return entity.SalesRecord{
		Date:     date,
		Product:  r.Product,
		Quantity: r.Quantity,
		Price:    r.Price,
		Total:    r.Total,
	}
}

// RecordList stores the records of an upload as a JSON array.
type RecordList []RecordModel

// GormDBDataType selects the column type per dialect.
func (RecordList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

// Value implements driver.Valuer.
func (l RecordList) Value() (driver.Value, error) {
	if l == nil {
		l = RecordList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *RecordList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*l = RecordList{}
		return nil
	default:
		return fmt.Errorf("unsupported records column type %T", src)
	}
	return json.Unmarshal(raw, l)
}
