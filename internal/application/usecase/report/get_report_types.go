package report

import "github.com/Zerkath/finance-app/internal/domain/entity"

// GetReportTypesUseCase lists the granularities a report can be built for.
type GetReportTypesUseCase struct{}

// NewGetReportTypesUseCase creates a new GetReportTypesUseCase instance.
func NewGetReportTypesUseCase() *GetReportTypesUseCase {
	return &GetReportTypesUseCase{}
}

// Execute returns the supported report types in display order.
func (uc *GetReportTypesUseCase) Execute() []entity.Granularity {
	types := make([]entity.Granularity, len(entity.SupportedGranularities))
	copy(types, entity.SupportedGranularities)
	return types
}
