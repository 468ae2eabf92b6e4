// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zerkath/finance-app/internal/application/usecase/transaction"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
	"github.com/Zerkath/finance-app/internal/integration/entrypoint/dto"
	"github.com/Zerkath/finance-app/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase          *transaction.ListTransactionsUseCase
	createUseCase        *transaction.CreateTransactionUseCase
	deleteUseCase        *transaction.DeleteTransactionUseCase
	setCategoriesUseCase *transaction.SetTransactionCategoriesUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	setCategoriesUseCase *transaction.SetTransactionCategoriesUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:          listUseCase,
		createUseCase:        createUseCase,
		deleteUseCase:        deleteUseCase,
		setCategoriesUseCase: setCategoriesUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	var query dto.ListTransactionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		PageSize:    query.PageSize,
		CurrentPage: query.CurrentPage,
		Search:      query.Search,
		CategoryIDs: query.CategoryIDs,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionPageResponse(output.Page, output.Total))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTransactionFields),
			Details: err.Error(),
		})
		return
	}

	value, _ := req.Value.Float64()
	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		Value:       value,
		Name:        req.Name,
		Description: req.Description,
		DateCreated: req.DateCreated,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	id, ok := c.parseID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: id,
	}); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SetCategories handles PUT /transactions/:id/categories requests.
func (c *TransactionController) SetCategories(ctx *gin.Context) {
	id, ok := c.parseID(ctx)
	if !ok {
		return
	}

	var req dto.SetTransactionCategoriesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTransactionFields),
			Details: err.Error(),
		})
		return
	}

	output, err := c.setCategoriesUseCase.Execute(ctx.Request.Context(), transaction.SetTransactionCategoriesInput{
		TransactionID: id,
		CategoryIDs:   req.CategoryIDs,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SetTransactionCategoriesResponse{CategoryIDs: output.CategoryIDs})
}

func (c *TransactionController) parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return 0, false
	}
	return id, true
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txErr *domainerror.TransactionError
	if errors.As(err, &txErr) {
		statusCode := c.getStatusCodeForTransactionError(txErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: txErr.Message,
			Code:  string(txErr.Code),
		})
		return
	}

	subject, _ := middleware.GetSubjectFromContext(ctx)
	slog.ErrorContext(ctx.Request.Context(), "transaction request failed",
		"error", err,
		"request_id", middleware.GetRequestIDFromContext(ctx),
		"subject", subject,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTransactionNameRequired,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeNameTooLong,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
