package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	gonumstat "gonum.org/v1/gonum/stat"

	"mtstrike/domain/core"
	"mtstrike/domain/strike"
)

// NewHistogram builds a fixed-width count histogram of folded angle samples
// over the active angular domain. Bin k covers [Edges[k], Edges[k+1]); a
// sample sitting exactly on the domain's top edge lands in the last bin.
func NewHistogram(samples []float64, widthDeg float64, domain strike.AngleDomain) strike.Histogram {
	nbins := int(math.Ceil(domain.Width() / widthDeg))
	if nbins < 1 {
		nbins = 1
	}

	edges := make([]float64, nbins+1)
	for k := range edges {
		edges[k] = domain.Min + float64(k)*widthDeg
	}

	counts := make([]int, nbins)
	for _, v := range samples {
		if math.IsNaN(v) {
			continue
		}
		k := int((v - domain.Min) / widthDeg)
		if k == nbins && v <= edges[nbins] {
			k = nbins - 1
		}
		if k < 0 || k >= nbins {
			continue
		}
		counts[k]++
	}

	return strike.Histogram{Edges: edges, Counts: counts, Width: widthDeg}
}

// Statistics derives mean, median and mode for one (decade, estimator)
// sample set. The mode is the left edge of the highest-count histogram bin,
// ties resolved toward the lower angle. Mean and median are arithmetic on
// the folded values; in unfolded mode the mean is instead the vector-based
// circular mean, since an arithmetic mean is wrong near the 0/360 seam.
//
// An empty sample set yields the undefined sentinel and ErrEmptyBin.
func Statistics(samples []float64, hist strike.Histogram, mode strike.FoldMode) (strike.StrikeStatistic, error) {
	clean := make([]float64, 0, len(samples))
	for _, v := range samples {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return strike.Undefined(), core.ErrEmptyBin
	}

	var mean float64
	if mode == strike.Unfolded {
		mean = circularMeanDeg(clean)
	} else {
		mean, _ = stats.Mean(clean)
	}
	median, _ := stats.Median(clean)

	return strike.StrikeStatistic{
		Mean:   mean,
		Median: median,
		Mode:   histogramMode(hist),
		Count:  len(clean),
	}, nil
}

// histogramMode returns the left edge of the first bin holding the maximum
// count.
func histogramMode(hist strike.Histogram) float64 {
	if len(hist.Counts) == 0 {
		return math.NaN()
	}
	best := 0
	for k, c := range hist.Counts {
		if c > hist.Counts[best] {
			best = k
		}
	}
	return hist.Edges[best]
}

// circularMeanDeg computes the vector-sum circular mean of angles in
// degrees, mapped back into [0, 360).
func circularMeanDeg(samples []float64) float64 {
	rad := make([]float64, len(samples))
	for i, v := range samples {
		rad[i] = v * math.Pi / 180
	}
	mean := gonumstat.CircularMean(rad, nil) * 180 / math.Pi
	for mean < 0 {
		mean += 360
	}
	for mean >= 360 {
		mean -= 360
	}
	return mean
}
