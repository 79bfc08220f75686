package postprocess

import (
	"context"
	"fmt"
	"math"

	"github.com/dcf21/star-charter/pkg/logger"
)

// Histogram bins reference magnitudes into fixed-width buckets.
type Histogram struct {
	min, width float64
	counts     []int
	below      int
	above      int
}

// Bin is one histogram bucket with its running total.
type Bin struct {
	Low, High  float64
	Count      int
	Cumulative int
}

// NewHistogram covers [-2, 20) in 0.25-magnitude bins.
func NewHistogram() *Histogram {
	return NewHistogramRange(-2, 20, 0.25)
}

// NewHistogramRange covers [min, max) in bins of width.
func NewHistogramRange(min, max, width float64) *Histogram {
	n := int(math.Round((max - min) / width))
	return &Histogram{min: min, width: width, counts: make([]int, n)}
}

// Add counts one magnitude.
func (h *Histogram) Add(mag float64) {
	i := int(math.Floor((mag - h.min) / h.width))
	switch {
	case i < 0:
		h.below++
	case i >= len(h.counts):
		h.above++
	default:
		h.counts[i]++
	}
}

// Bins returns every bucket with the running total of the buckets up to and
// including it. Records outside the covered range are not counted.
func (h *Histogram) Bins() []Bin {
	bins := make([]Bin, len(h.counts))
	total := 0
	for i, n := range h.counts {
		total += n
		low := h.min + float64(i)*h.width
		bins[i] = Bin{Low: low, High: low + h.width, Count: n, Cumulative: total}
	}
	return bins
}

// OutOfRange returns counts below and above the covered range.
func (h *Histogram) OutOfRange() (below, above int) { return h.below, h.above }

// Log writes one debug line per bucket.
func (h *Histogram) Log(ctx context.Context, l logger.Logger) {
	for _, b := range h.Bins() {
		l.Debug(ctx, fmt.Sprintf("Mag %6.2f to %6.2f -- %7d stars (total %7d stars)", b.Low, b.High, b.Count, b.Cumulative))
	}
}
