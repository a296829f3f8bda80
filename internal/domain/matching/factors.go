package matching

import (
	"math"
	"strings"
)

// Neutral scores returned when a factor has no data to judge on.
const (
	neutralText     = 0.5
	neutralPrice    = 0.7
	neutralQuantity = 0.7
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// scoreCategory compares taxonomy labels. An exact category match is a
// full score; otherwise a fuzzy ratio. A subcategory on both sides adds
// up to +0.2 on top.
func scoreCategory(req BuyerRequirement, off SellerOffering) float64 {
	reqCat := norm(req.Category)
	offCat := norm(off.Category)

	score := fuzzyRatio(reqCat, offCat)
	if reqCat == offCat {
		score = 1
	}

	reqSub := norm(req.Subcategory)
	offSub := norm(off.Subcategory)
	if reqSub != "" && offSub != "" {
		if reqSub == offSub {
			score += 0.2
		} else {
			score += 0.2 * fuzzyRatio(reqSub, offSub)
		}
	}

	return clamp01(score)
}

// scoreText measures free-text similarity between the two title+description
// documents, plus a small tag-overlap bonus. Vectorization failure (no
// usable tokens on either side) degrades to a neutral default.
func scoreText(req BuyerRequirement, off SellerOffering) float64 {
	cos, ok := tfidfCosine(req.Title+" "+req.Description, off.Title+" "+off.Description)
	if !ok {
		return neutralText
	}
	return clamp01(cos + jaccard(req.Tags, off.Tags)*0.1)
}

// scorePrice measures overlap between the budget interval and the price
// interval. Missing bounds extend the interval (no min means 0, no max
// means unbounded). No price data on either side is neutral.
func scorePrice(req BuyerRequirement, off SellerOffering) float64 {
	if req.BudgetMin == nil && req.BudgetMax == nil && off.PriceMin == nil && off.PriceMax == nil {
		return neutralPrice
	}

	reqLo, reqHi := interval(req.BudgetMin, req.BudgetMax)
	offLo, offHi := interval(off.PriceMin, off.PriceMax)

	lo := math.Max(reqLo, offLo)
	hi := math.Min(reqHi, offHi)

	if hi >= lo {
		// Normalize against the tighter of the two ranges so that full
		// containment of one interval in the other scores 1.0.
		overlap := hi - lo
		return math.Max(coverage(overlap, reqLo, reqHi), coverage(overlap, offLo, offHi))
	}

	gap := lo - hi
	ref := referenceBound(reqHi, offHi, reqLo, offLo)
	return math.Max(0, 1-gap/ref)
}

func interval(lo, hi *float64) (float64, float64) {
	l := 0.0
	if lo != nil {
		l = *lo
	}
	h := math.Inf(1)
	if hi != nil {
		h = *hi
	}
	return l, h
}

// coverage is the share of one side's range covered by the overlap. An
// unbounded max falls back to twice the min as the effective range; a
// zero-width range counts as fully covered.
func coverage(overlap, lo, hi float64) float64 {
	rng := hi - lo
	if math.IsInf(hi, 1) {
		rng = lo * 2
	}
	if rng <= 0 {
		return 1
	}
	if math.IsInf(overlap, 1) {
		return 1
	}
	return math.Min(1, overlap/rng)
}

// referenceBound picks the first finite, nonzero bound to normalize the
// gap penalty against, defaulting to 1.
func referenceBound(bounds ...float64) float64 {
	for _, b := range bounds {
		if b > 0 && !math.IsInf(b, 1) {
			return b
		}
	}
	return 1
}

// scoreLocation prefers an exact location match, then service-area
// coverage, then the buyer's preferred locations, then a damped fuzzy
// ratio between the two location strings.
func scoreLocation(req BuyerRequirement, off SellerOffering) float64 {
	reqLoc := norm(req.Location)
	offLoc := norm(off.Location)

	if reqLoc == offLoc {
		return 1
	}
	for _, area := range off.ServiceAreas {
		a := norm(area)
		if a == "" {
			continue
		}
		if strings.Contains(a, reqLoc) || strings.Contains(reqLoc, a) {
			return 0.9
		}
	}
	for _, pref := range req.PreferredLocations {
		p := norm(pref)
		if p == "" {
			continue
		}
		if strings.Contains(offLoc, p) || strings.Contains(p, offLoc) {
			return 0.8
		}
	}
	return fuzzyRatio(reqLoc, offLoc) * 0.6
}

// scoreQuantity compares required quantity against offered capacity.
// Units are never auto-converted: a unit mismatch is a flat penalty.
func scoreQuantity(req BuyerRequirement, off SellerOffering) float64 {
	if req.Quantity == nil || off.Capacity == nil {
		return neutralQuantity
	}

	reqUnit := norm(req.Unit)
	offUnit := norm(off.Unit)
	if reqUnit != "" && offUnit != "" && reqUnit != offUnit {
		return 0.3
	}

	qty := *req.Quantity
	avail := *off.Capacity
	if avail >= qty {
		if avail <= qty*2 {
			return 1
		}
		return 0.8
	}
	return (avail / qty) * 0.6
}

// scoreQuality starts from a neutral base and rewards covered
// certifications and quality requirements.
func scoreQuality(req BuyerRequirement, off SellerOffering) float64 {
	score := 0.5
	if len(req.CertificationsRequired) > 0 {
		score += 0.3 * matchedFraction(req.CertificationsRequired, off.Certifications)
	}
	if len(req.QualityRequirements) > 0 {
		score += 0.2 * matchedFraction(req.QualityRequirements, off.QualityStandards)
	}
	return clamp01(score)
}
