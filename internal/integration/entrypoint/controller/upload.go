package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sales-dashboard/backend/internal/application/usecase/upload"
	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
	"github.com/sales-dashboard/backend/internal/integration/entrypoint/dto"
	"github.com/sales-dashboard/backend/internal/integration/entrypoint/middleware"
)

// multipartOverhead is the room left for multipart boundaries and part headers
// on top of the file size limit.
const multipartOverhead = 64 << 10

// UploadController handles sales file upload endpoints.
type UploadController struct {
	uploadUseCase *upload.UploadSalesFileUseCase
	listUseCase   *upload.ListUploadsUseCase
	deleteUseCase *upload.DeleteUploadUseCase
	maxBytes      int64
}

// NewUploadController creates a new upload controller instance.
func NewUploadController(
	uploadUseCase *upload.UploadSalesFileUseCase,
	listUseCase *upload.ListUploadsUseCase,
	deleteUseCase *upload.DeleteUploadUseCase,
	maxBytes int64,
) *UploadController {
	return &UploadController{
		uploadUseCase: uploadUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
		maxBytes:      maxBytes,
	}
}

// Upload handles POST /uploads requests with a multipart "file" field.
func (c *UploadController) Upload(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxBytes+multipartOverhead)

	header, err := ctx.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			respondFileTooLarge(ctx)
			return
		}
		handleUploadError(ctx, domainerror.NewUploadError(
			domainerror.ErrCodeNoFileSelected,
			"No file selected",
			domainerror.ErrNoFileSelected,
		))
		return
	}
	if header.Size > c.maxBytes {
		respondFileTooLarge(ctx)
		return
	}

	file, err := header.Open()
	if err != nil {
		handleUploadError(ctx, domainerror.NewProcessingFailure(err))
		return
	}
	defer file.Close()

	output, err := c.uploadUseCase.Execute(ctx.Request.Context(), upload.UploadSalesFileInput{
		UserID:   userID,
		Filename: header.Filename,
		Content:  file,
	})
	if err != nil {
		handleUploadError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUploadResponse(output))
}

// List handles GET /uploads requests.
func (c *UploadController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), upload.ListUploadsInput{UserID: userID})
	if err != nil {
		handleUploadError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UploadListResponse{
		Uploads: dto.ToUploadOverviewResponses(output.Uploads),
	})
}

// Delete handles DELETE /uploads/:id requests.
func (c *UploadController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	uploadID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		handleUploadError(ctx, uploadNotFound())
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), upload.DeleteUploadInput{
		UserID:   userID,
		UploadID: uploadID,
	}); err != nil {
		handleUploadError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Upload deleted successfully",
	})
}

// requireUserID reads the authenticated user or answers 401.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseUploadID reads the optional upload_id query parameter.
// A malformed id is reported as an unknown upload.
func parseUploadID(ctx *gin.Context) (*uuid.UUID, error) {
	raw := ctx.Query("upload_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, uploadNotFound()
	}
	return &id, nil
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

func uploadNotFound() *domainerror.UploadError {
	return domainerror.NewUploadError(
		domainerror.ErrCodeUploadNotFound,
		"upload not found",
		domainerror.ErrUploadNotFound,
	)
}

func respondFileTooLarge(ctx *gin.Context) {
	handleUploadError(ctx, domainerror.NewUploadError(
		domainerror.ErrCodeFileTooLarge,
		"File too large",
		domainerror.ErrFileTooLarge,
	))
}

// handleUploadError maps upload errors to HTTP responses. Internal failures
// are reported as "Processing failed" without details.
func handleUploadError(ctx *gin.Context, err error) {
	var uploadErr *domainerror.UploadError
	if !errors.As(err, &uploadErr) {
		slog.Error("Upload request failed", "path", ctx.FullPath(), "error", err)
		uploadErr = domainerror.NewProcessingFailure(err)
	}

	response := dto.ErrorResponse{
		Error: uploadErr.Message,
		Code:  string(uploadErr.Code),
	}
	if uploadErr.Code == domainerror.ErrCodeMissingColumns {
		response.Details = dto.MissingColumnsDetails(uploadErr.Fields)
	}

	ctx.JSON(getStatusCodeForUploadError(uploadErr.Code), response)
}

// getStatusCodeForUploadError maps upload error codes to HTTP status codes.
func getStatusCodeForUploadError(code domainerror.UploadErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingColumns,
		domainerror.ErrCodeMissingPriceOrTotal,
		domainerror.ErrCodeInvalidDateOrQuantity,
		domainerror.ErrCodeColumnMappingFailure,
		domainerror.ErrCodeNoFileSelected,
		domainerror.ErrCodeInvalidFileType:
		return http.StatusBadRequest
	case domainerror.ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeUploadNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUploadForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
