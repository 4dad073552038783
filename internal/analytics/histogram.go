package analytics

import (
	"github.com/montanaflynn/stats"

	"github.com/zillafan80/inarbit-console/internal/models"
)

// HistogramBins is the fixed bin count of the profit distribution chart.
const HistogramBins = 8

// Histogram is an equal-width profit distribution over [Min, Max].
type Histogram struct {
	Min    float64              `json:"min"`
	Max    float64              `json:"max"`
	Width  float64              `json:"width"`
	Counts [HistogramBins]int   `json:"counts"`
}

// Distribution bins profits into HistogramBins equal-width bins spanning
// [min, max]. When every profit is equal the width defaults to 1 so the
// single populated bin does not divide by zero. Empty input returns the zero
// Histogram.
func Distribution(records []models.PnLRecord) Histogram {
	if len(records) == 0 {
		return Histogram{}
	}

	p := profits(records)
	minP, _ := stats.Min(p)
	maxP, _ := stats.Max(p)

	width := (maxP - minP) / HistogramBins
	if width == 0 {
		width = 1
	}

	h := Histogram{Min: minP, Max: maxP, Width: width}
	for _, v := range p {
		idx := int((v - minP) / width)
		if idx < 0 {
			idx = 0
		}
		if idx > HistogramBins-1 {
			idx = HistogramBins - 1
		}
		h.Counts[idx]++
	}
	return h
}
