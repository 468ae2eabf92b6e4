package report

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartBarWidth   = 20
	chartBarSpacing = 8
	chartMinWidth   = 480
	chartHeight     = 400
)

// RenderReportChartUseCase renders the zero-filled date series of a report as a PNG bar chart.
type RenderReportChartUseCase struct {
	basicReport *GetBasicReportUseCase
}

// NewRenderReportChartUseCase creates a new RenderReportChartUseCase instance.
func NewRenderReportChartUseCase(basicReport *GetBasicReportUseCase) *RenderReportChartUseCase {
	return &RenderReportChartUseCase{
		basicReport: basicReport,
	}
}

// Execute builds the report for input and returns raw PNG bytes.
func (uc *RenderReportChartUseCase) Execute(ctx context.Context, input GetBasicReportInput) ([]byte, error) {
	rpt, err := uc.basicReport.Execute(ctx, input)
	if err != nil {
		return nil, err
	}
	return RenderDatesChart(fmt.Sprintf("%s report %s", input.Granularity, input.SelectedDate), rpt.Dates)
}

// RenderDatesChart draws one bar per bucket, in bucket order. Income bars are green,
// expense bars red.
func RenderDatesChart(title string, dates map[string]float64) ([]byte, error) {
	if len(dates) == 0 {
		return nil, fmt.Errorf("no buckets to render")
	}

	keys := make([]string, 0, len(dates))
	for k := range dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bars := make([]chart.Value, len(keys))
	lo, hi := 0.0, 0.0
	for i, k := range keys {
		v := dates[k]
		color := drawing.ColorFromHex("16a34a") // green-600
		if v < 0 {
			color = drawing.ColorFromHex("dc2626") // red-600
		}
		bars[i] = chart.Value{
			Label: bucketLabel(k),
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		hi = lo + 1
	}

	graph := chart.BarChart{
		Title:  title,
		Width:  max(chartMinWidth, 80+len(bars)*(chartBarWidth+chartBarSpacing)),
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth:     chartBarWidth,
		BarSpacing:   chartBarSpacing,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// bucketLabel keeps the last field of a bucket key, the month for YEAR and the day for MONTH.
func bucketLabel(key string) string {
	if i := strings.LastIndex(key, "-"); i >= 0 {
		return key[i+1:]
	}
	return key
}
