package upload

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sales-dashboard/backend/internal/application/adapter"
	"github.com/sales-dashboard/backend/internal/domain/entity"
	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
	"github.com/sales-dashboard/backend/internal/domain/ingestion"
)

type memoryUploadRepository struct {
	mu        sync.Mutex
	uploads   map[uuid.UUID]*entity.Upload
	createErr error
}

func newMemoryUploadRepository() *memoryUploadRepository {
	return &memoryUploadRepository{uploads: make(map[uuid.UUID]*entity.Upload)}
}

func (r *memoryUploadRepository) Create(_ context.Context, upload *entity.Upload) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads[upload.ID] = upload
	return nil
}

func (r *memoryUploadRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	upload, ok := r.uploads[id]
	if !ok {
		return nil, domainerror.ErrUploadNotFound
	}
	return upload, nil
}

func (r *memoryUploadRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.Upload, error) {
	uploads, _ := r.ListByUser(ctx, userID)
	if len(uploads) == 0 {
		return nil, domainerror.ErrUploadNotFound
	}
	return uploads[0], nil
}

func (r *memoryUploadRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var uploads []*entity.Upload
	for _, u := range r.uploads {
		if u.UserID == userID {
			uploads = append(uploads, u)
		}
	}
	sort.Slice(uploads, func(i, j int) bool {
		return uploads[i].UploadedAt.After(uploads[j].UploadedAt)
	})
	return uploads, nil
}

func (r *memoryUploadRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.uploads, id)
	return nil
}

func (r *memoryUploadRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.uploads)
}

// stubReader serves a fixed table for ".csv" files.
type stubReader struct {
	table *ingestion.Table
	err   error
}

func (s *stubReader) Supports(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (s *stubReader) Read(_ string, r io.Reader) (*ingestion.Table, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.table, nil
}

type recordingMetrics struct {
	accepted []int
	rejected []string
}

func (m *recordingMetrics) UploadAccepted(rows int)    { m.accepted = append(m.accepted, rows) }
func (m *recordingMetrics) UploadRejected(code string) { m.rejected = append(m.rejected, code) }

type stubRenderer struct {
	input adapter.ReportInput
	err   error
}

func (s *stubRenderer) Render(_ context.Context, input adapter.ReportInput) ([]byte, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return []byte("report"), nil
}

func (s *stubRenderer) ContentType() string { return "application/octet-stream" }
func (s *stubRenderer) Extension() string   { return ".bin" }

var errBoom = errors.New("boom")
