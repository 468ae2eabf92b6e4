// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// BasicReportQuery represents the query parameters of a period report.
type BasicReportQuery struct {
	Type string `form:"type" binding:"required"`
	Date string `form:"date" binding:"required"`
}

// BasicReportResponse represents the aggregated summary of one period.
type BasicReportResponse struct {
	Total            float64            `json:"total"`
	Uncategorized    float64            `json:"uncategorized"`
	Dates            map[string]float64 `json:"dates"`
	CategoryIncome   map[string]float64 `json:"category_income"`
	CategoryExpenses map[string]float64 `json:"category_expenses"`
}

// ReportTypesResponse lists the supported report types.
type ReportTypesResponse struct {
	Types []string `json:"types"`
}

// ToBasicReportResponse converts a domain BasicReport to a BasicReportResponse DTO.
func ToBasicReportResponse(rpt *entity.BasicReport) BasicReportResponse {
	return BasicReportResponse{
		Total:            rpt.Total,
		Uncategorized:    rpt.Uncategorized,
		Dates:            rpt.Dates,
		CategoryIncome:   rpt.CategoryIncome,
		CategoryExpenses: rpt.CategoryExpenses,
	}
}

// ToReportTypesResponse converts granularities to a ReportTypesResponse.
func ToReportTypesResponse(types []entity.Granularity) ReportTypesResponse {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return ReportTypesResponse{Types: out}
}
