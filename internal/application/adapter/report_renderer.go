// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/sales-dashboard/backend/internal/domain/analytics"
	"github.com/sales-dashboard/backend/internal/domain/entity"
)

// ReportInput carries everything a report needs; it is read-only.
type ReportInput struct {
	Upload      *entity.Upload
	Summary     analytics.Summary
	View        *analytics.View
	GeneratedAt time.Time
}

// ReportRenderer renders a downloadable sales report.
type ReportRenderer interface {
	// Render returns the encoded report document.
	Render(ctx context.Context, input ReportInput) ([]byte, error)

	// ContentType returns the MIME type of rendered documents.
	ContentType() string

	// Extension returns the file extension of rendered documents, with the dot.
	Extension() string
}
