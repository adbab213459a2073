// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stats

import "github.com/daemondn/gohandystats/clock"

// HistogramBin is one (center, weight) pair of the adaptive histogram.
// LastUpdate is kept internally to bias merges toward recent data but is
// not part of the published shape (bins render as [center, weight] pairs).
type HistogramBin struct {
	Center     float64
	Weight     float64
	LastUpdate clock.Timestamp
}

// histogram is a Ben-Haim-Tom-Tov-style adaptive-bin histogram: every
// sample becomes its own bin; once the bin count exceeds maxBins, the two
// bins with the smallest center distance are merged, weighted toward
// whichever bin is more recent so the histogram tracks the moving window
// rather than all-time history.
type histogram struct {
	bins    []HistogramBin
	maxBins int
}

func newHistogram(maxBins int) *histogram {
	if maxBins <= 0 {
		maxBins = 1
	}
	return &histogram{maxBins: maxBins}
}

func (h *histogram) add(v float64, t clock.Timestamp) {
	// Insertion point keeping bins sorted by center.
	i := 0
	for i < len(h.bins) && h.bins[i].Center < v {
		i++
	}
	h.bins = append(h.bins, HistogramBin{})
	copy(h.bins[i+1:], h.bins[i:])
	h.bins[i] = HistogramBin{Center: v, Weight: 1, LastUpdate: t}

	for len(h.bins) > h.maxBins {
		h.mergeClosestPair()
	}
}

// mergeClosestPair finds the adjacent pair with the smallest center
// distance and replaces them with their weighted average, recency-biased:
// whichever bin was touched more recently counts for slightly more than
// its raw weight when computing the merged center, so the histogram
// leans toward tracking the current window instead of stale history.
func (h *histogram) mergeClosestPair() {
	if len(h.bins) < 2 {
		return
	}

	best := 0
	bestGap := h.bins[1].Center - h.bins[0].Center
	for i := 1; i < len(h.bins)-1; i++ {
		gap := h.bins[i+1].Center - h.bins[i].Center
		if gap < bestGap {
			bestGap = gap
			best = i
		}
	}

	a, b := h.bins[best], h.bins[best+1]

	const recencyBias = 1.15
	wa, wb := a.Weight, b.Weight
	if a.LastUpdate > b.LastUpdate {
		wa *= recencyBias
	} else if b.LastUpdate > a.LastUpdate {
		wb *= recencyBias
	}

	totalWeight := a.Weight + b.Weight
	merged := HistogramBin{
		Center:     (a.Center*wa + b.Center*wb) / (wa + wb),
		Weight:     totalWeight,
		LastUpdate: max64(a.LastUpdate, b.LastUpdate),
	}

	h.bins[best] = merged
	h.bins = append(h.bins[:best+1], h.bins[best+2:]...)
}

func max64(a, b clock.Timestamp) clock.Timestamp {
	if a > b {
		return a
	}
	return b
}

// snapshot returns an independent copy of the current bins, safe to hand
// to a reader after the registry has moved on.
func (h *histogram) snapshot() []HistogramBin {
	out := make([]HistogramBin, len(h.bins))
	copy(out, h.bins)
	return out
}

// Quantile linearly interpolates cumulative weight to p*totalWeight
// across bins. Exact quantiles would require retaining raw samples;
// this histogram-based approximation is the accepted tradeoff.
func Quantile(bins []HistogramBin, p float64) float64 {
	if len(bins) == 0 {
		return 0
	}
	if len(bins) == 1 {
		return bins[0].Center
	}

	var total float64
	for _, b := range bins {
		total += b.Weight
	}
	if total <= 0 {
		return 0
	}

	target := p * total
	var cum float64
	for i, b := range bins {
		next := cum + b.Weight
		if next >= target || i == len(bins)-1 {
			if i == 0 {
				return b.Center
			}
			prev := bins[i-1]
			// Interpolate between prev.Center and b.Center by how far
			// into this bin's weight the target cumulative weight falls.
			frac := (target - cum) / b.Weight
			if frac < 0 {
				frac = 0
			} else if frac > 1 {
				frac = 1
			}
			return prev.Center + frac*(b.Center-prev.Center)
		}
		cum = next
	}

	return bins[len(bins)-1].Center
}
