package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sales-dashboard/backend/internal/application/usecase/upload"
)

// ReportController handles report export endpoints.
type ReportController struct {
	exportUseCase *upload.ExportReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(exportUseCase *upload.ExportReportUseCase) *ReportController {
	return &ReportController{
		exportUseCase: exportUseCase,
	}
}

// Export handles GET /reports/export requests and streams the rendered report.
func (c *ReportController) Export(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	uploadID, err := parseUploadID(ctx)
	if err != nil {
		handleUploadError(ctx, err)
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), upload.ExportReportInput{
		UserID:   userID,
		UploadID: uploadID,
	})
	if err != nil {
		handleUploadError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+output.Filename+`"`)
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}
