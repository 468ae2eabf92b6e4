// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zerkath/finance-app/internal/application/usecase/report"
	"github.com/Zerkath/finance-app/internal/domain/entity"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
	"github.com/Zerkath/finance-app/internal/integration/entrypoint/dto"
)

// ReportController handles report endpoints.
type ReportController struct {
	basicReportUseCase *report.GetBasicReportUseCase
	reportTypesUseCase *report.GetReportTypesUseCase
	chartUseCase       *report.RenderReportChartUseCase
	timeout            time.Duration
}

// NewReportController creates a new report controller instance.
// Each report request is bounded by timeout.
func NewReportController(
	basicReportUseCase *report.GetBasicReportUseCase,
	reportTypesUseCase *report.GetReportTypesUseCase,
	chartUseCase *report.RenderReportChartUseCase,
	timeout time.Duration,
) *ReportController {
	return &ReportController{
		basicReportUseCase: basicReportUseCase,
		reportTypesUseCase: reportTypesUseCase,
		chartUseCase:       chartUseCase,
		timeout:            timeout,
	}
}

// Types handles GET /reports/types requests.
func (c *ReportController) Types(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToReportTypesResponse(c.reportTypesUseCase.Execute()))
}

// Basic handles GET /reports/basic requests.
func (c *ReportController) Basic(ctx *gin.Context) {
	input, ok := c.bindInput(ctx)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.timeout)
	defer cancel()

	rpt, err := c.basicReportUseCase.Execute(reqCtx, input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBasicReportResponse(rpt))
}

// Chart handles GET /reports/basic/chart requests and replies with a PNG image.
func (c *ReportController) Chart(ctx *gin.Context) {
	input, ok := c.bindInput(ctx)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.timeout)
	defer cancel()

	png, err := c.chartUseCase.Execute(reqCtx, input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

func (c *ReportController) bindInput(ctx *gin.Context) (report.GetBasicReportInput, bool) {
	var query dto.BasicReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "type and date are required",
			Code:    string(domainerror.ErrCodeInvalidReportType),
			Details: err.Error(),
		})
		return report.GetBasicReportInput{}, false
	}

	return report.GetBasicReportInput{
		Granularity:  entity.Granularity(query.Type),
		SelectedDate: query.Date,
	}, true
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		ctx.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{
			Error: "Report took too long to build",
			Code:  string(domainerror.ErrCodeReportStoreFailure),
		})
		return
	}

	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) {
		resp := dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		}
		if rptErr.IsInvalidInput() {
			ctx.JSON(http.StatusBadRequest, resp)
			return
		}
		ctx.JSON(http.StatusInternalServerError, resp)
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
