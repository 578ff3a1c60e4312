package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sales-dashboard/backend/internal/application/usecase/upload"
	"github.com/sales-dashboard/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getDashboardUseCase *upload.GetDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getDashboardUseCase *upload.GetDashboardUseCase) *DashboardController {
	return &DashboardController{
		getDashboardUseCase: getDashboardUseCase,
	}
}

// Get handles GET /dashboard requests. The optional upload_id query
// parameter selects an upload; the latest one is shown otherwise.
func (c *DashboardController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	uploadID, err := parseUploadID(ctx)
	if err != nil {
		handleUploadError(ctx, err)
		return
	}

	output, err := c.getDashboardUseCase.Execute(ctx.Request.Context(), upload.GetDashboardInput{
		UserID:   userID,
		UploadID: uploadID,
	})
	if err != nil {
		handleUploadError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}
