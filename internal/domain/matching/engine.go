package matching

import (
	"fmt"
	"math"
	"time"
)

// Weights control how the six factor scores combine into the overall
// score. They must sum to exactly 1.0.
type Weights struct {
	Category float64
	Text     float64
	Price    float64
	Location float64
	Quantity float64
	Quality  float64
}

func DefaultWeights() Weights {
	return Weights{
		Category: 0.25,
		Text:     0.20,
		Price:    0.20,
		Location: 0.15,
		Quantity: 0.10,
		Quality:  0.10,
	}
}

func (w Weights) Sum() float64 {
	return w.Category + w.Text + w.Price + w.Location + w.Quantity + w.Quality
}

func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("matching: weights must sum to 1.0, got %v", w.Sum())
	}
	return nil
}

// Confidence tier boundaries over the overall score.
const (
	confidenceHighMin   = 0.8
	confidenceMediumMin = 0.6
	confidenceLowMin    = 0.4
)

// Engine scores (requirement, offering) pairs. It carries configuration
// only; Score is a pure function and safe for concurrent use.
type Engine struct {
	weights Weights
	now     func() time.Time
}

func NewEngine(weights Weights) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: weights, now: time.Now}, nil
}

func (e *Engine) Weights() Weights {
	return e.weights
}

// Score evaluates one pair across all six factors and aggregates them
// into a MatchResult. The result does not depend on which side of the
// marketplace initiated the match.
func (e *Engine) Score(req BuyerRequirement, off SellerOffering) MatchResult {
	factors := FactorScores{
		Category: scoreCategory(req, off),
		Text:     scoreText(req, off),
		Price:    scorePrice(req, off),
		Location: scoreLocation(req, off),
		Quantity: scoreQuantity(req, off),
		Quality:  scoreQuality(req, off),
	}

	overall := clamp01(e.weights.Category*factors.Category +
		e.weights.Text*factors.Text +
		e.weights.Price*factors.Price +
		e.weights.Location*factors.Location +
		e.weights.Quantity*factors.Quantity +
		e.weights.Quality*factors.Quality)

	return MatchResult{
		MatchID:            MatchID(req.RequirementID, off.OfferingID),
		RequirementID:      req.RequirementID,
		OfferingID:         off.OfferingID,
		BuyerID:            req.BuyerID,
		SellerID:           off.SellerID,
		Score:              overall,
		Factors:            factors,
		Confidence:         ConfidenceFor(overall),
		SuccessProbability: successProbability(overall, factors),
		Reasons:            reasonsFor(factors),
		Issues:             issuesFor(factors),
		CreatedAt:          e.now().UTC(),
	}
}

func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= confidenceHighMin:
		return ConfidenceHigh
	case score >= confidenceMediumMin:
		return ConfidenceMedium
	case score >= confidenceLowMin:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// successProbability estimates how likely a scored match turns into a
// transaction: the overall score damped to 0.8, with small boosts for
// strong price, location and quality alignment.
func successProbability(overall float64, f FactorScores) float64 {
	p := 0.8 * overall
	if f.Price > 0.8 {
		p += 0.1
	}
	if f.Location > 0.8 {
		p += 0.05
	}
	if f.Quality > 0.8 {
		p += 0.05
	}
	return math.Min(1, p)
}

func reasonsFor(f FactorScores) []string {
	reasons := make([]string, 0, 4)
	if f.Category > 0.8 {
		reasons = append(reasons, "Perfect category match")
	}
	if f.Text > 0.6 {
		reasons = append(reasons, "Listing descriptions are closely related")
	}
	if f.Price > 0.8 {
		reasons = append(reasons, "Budget and pricing are well aligned")
	}
	if f.Location > 0.8 {
		reasons = append(reasons, "Location is a strong fit")
	}
	if f.Quantity > 0.8 {
		reasons = append(reasons, "Capacity covers the required quantity")
	}
	if f.Quality > 0.8 {
		reasons = append(reasons, "Certification and quality requirements are met")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Basic compatibility match")
	}
	return reasons
}

func issuesFor(f FactorScores) []string {
	issues := make([]string, 0, 4)
	if f.Price < 0.5 {
		issues = append(issues, "Budget and pricing may not align")
	}
	if f.Location < 0.6 {
		issues = append(issues, "Location may pose logistical challenges")
	}
	if f.Quantity < 0.6 {
		issues = append(issues, "Capacity may not cover the required quantity")
	}
	if f.Quality < 0.7 {
		issues = append(issues, "Some certification or quality requirements are unmet")
	}
	return issues
}
