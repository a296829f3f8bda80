package matching

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultWeights())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	if w.Sum() != 1.0 {
		t.Fatalf("weights sum to %v, want exactly 1.0", w.Sum())
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("default weights must validate: %v", err)
	}
}

func TestNewEngineRejectsUnbalancedWeights(t *testing.T) {
	w := DefaultWeights()
	w.Category = 0.5
	if _, err := NewEngine(w); err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}
}

func TestConfidenceBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Confidence
	}{
		{score: 0.8, want: ConfidenceHigh},
		{score: 0.95, want: ConfidenceHigh},
		{score: 0.6, want: ConfidenceMedium},
		{score: 0.79, want: ConfidenceMedium},
		{score: 0.4, want: ConfidenceLow},
		{score: 0.59, want: ConfidenceLow},
		{score: 0.39, want: ConfidenceVeryLow},
		{score: 0, want: ConfidenceVeryLow},
	}
	for _, tc := range tests {
		if got := ConfidenceFor(tc.score); got != tc.want {
			t.Fatalf("ConfidenceFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestScoreIdenticalPairIsNearPerfect(t *testing.T) {
	e := newTestEngine(t)

	req := baseRequirement()
	req.BudgetMin = fp(50000)
	req.BudgetMax = fp(100000)
	req.Quantity = fp(500)
	req.Unit = "kg"
	req.CertificationsRequired = []string{"ISO9001"}
	req.QualityRequirements = []string{"Grade A"}

	off := baseOffering()
	off.Title = req.Title
	off.Description = req.Description
	off.PriceMin = req.BudgetMin
	off.PriceMax = req.BudgetMax
	off.Location = req.Location
	off.Capacity = req.Quantity
	off.Unit = req.Unit
	off.Certifications = req.CertificationsRequired
	off.QualityStandards = req.QualityRequirements

	res := e.Score(req, off)
	if res.Score < 0.95 {
		t.Fatalf("identical pair scored %v, want >= 0.95", res.Score)
	}
	if res.Confidence != ConfidenceHigh {
		t.Fatalf("identical pair confidence %q, want high", res.Confidence)
	}
}

func TestScoreManufacturingScenario(t *testing.T) {
	e := newTestEngine(t)

	req := baseRequirement()
	req.Category = "manufacturing"
	req.BudgetMin = fp(50000)
	req.BudgetMax = fp(100000)
	req.Location = "Pune"
	req.Quantity = fp(500)
	req.Unit = "kg"
	req.CertificationsRequired = []string{"ISO9001"}

	off := baseOffering()
	off.Category = "manufacturing"
	off.PriceMin = fp(60000)
	off.PriceMax = fp(90000)
	off.Location = "Pune"
	off.Capacity = fp(600)
	off.Unit = "kg"
	off.Certifications = []string{"ISO9001", "ISO14001"}

	res := e.Score(req, off)

	if res.Factors.Category != 1.0 {
		t.Fatalf("category factor = %v, want 1.0", res.Factors.Category)
	}
	if res.Factors.Price != 1.0 {
		t.Fatalf("price factor = %v, want 1.0 for contained interval", res.Factors.Price)
	}
	if res.Factors.Location != 1.0 {
		t.Fatalf("location factor = %v, want 1.0", res.Factors.Location)
	}
	if res.Factors.Quantity != 1.0 {
		t.Fatalf("quantity factor = %v, want 1.0 for 600 against 500", res.Factors.Quantity)
	}
	if res.Factors.Quality < 0.8 {
		t.Fatalf("quality factor = %v, want >= 0.8", res.Factors.Quality)
	}
	if res.Score < 0.85 {
		t.Fatalf("overall score = %v, want >= 0.85", res.Score)
	}
	if res.Confidence != ConfidenceHigh {
		t.Fatalf("confidence = %q, want high", res.Confidence)
	}
}

func TestScoreUnitMismatchPenalty(t *testing.T) {
	e := newTestEngine(t)

	req := baseRequirement()
	req.Quantity = fp(500)
	req.Unit = "kg"
	off := baseOffering()
	off.Capacity = fp(600)
	off.Unit = "kg"

	matched := e.Score(req, off)

	off.Unit = "tons"
	mismatched := e.Score(req, off)

	if mismatched.Factors.Quantity != 0.3 {
		t.Fatalf("unit mismatch quantity factor = %v, want exactly 0.3", mismatched.Factors.Quantity)
	}
	if mismatched.Score >= matched.Score {
		t.Fatalf("unit mismatch score %v must be strictly below matching-unit score %v",
			mismatched.Score, matched.Score)
	}
}

func TestScoreResultFieldsWithinRange(t *testing.T) {
	e := newTestEngine(t)
	res := e.Score(baseRequirement(), baseOffering())

	if res.Score < 0 || res.Score > 1 {
		t.Fatalf("score %v out of range", res.Score)
	}
	if res.SuccessProbability < 0 || res.SuccessProbability > 1 {
		t.Fatalf("success probability %v out of range", res.SuccessProbability)
	}
	for name, f := range map[string]float64{
		"category": res.Factors.Category,
		"text":     res.Factors.Text,
		"price":    res.Factors.Price,
		"location": res.Factors.Location,
		"quantity": res.Factors.Quantity,
		"quality":  res.Factors.Quality,
	} {
		if f < 0 || f > 1 || math.IsNaN(f) {
			t.Fatalf("factor %s = %v out of range", name, f)
		}
	}
	if len(res.Reasons) == 0 {
		t.Fatal("a result always carries at least one reason")
	}
	if res.CreatedAt.IsZero() {
		t.Fatal("created_at must be set")
	}
}

func TestReasonsAndIssues(t *testing.T) {
	strong := FactorScores{Category: 0.9, Text: 0.9, Price: 0.9, Location: 0.9, Quantity: 0.9, Quality: 0.9}
	reasons := reasonsFor(strong)
	if len(reasons) != 6 {
		t.Fatalf("expected all six reasons, got %v", reasons)
	}
	if issues := issuesFor(strong); len(issues) != 0 {
		t.Fatalf("strong factors should raise no issues, got %v", issues)
	}

	weak := FactorScores{Category: 0.2, Text: 0.2, Price: 0.2, Location: 0.2, Quantity: 0.2, Quality: 0.2}
	reasons = reasonsFor(weak)
	if len(reasons) != 1 || reasons[0] != "Basic compatibility match" {
		t.Fatalf("weak factors should fall back to the default reason, got %v", reasons)
	}
	if issues := issuesFor(weak); len(issues) != 4 {
		t.Fatalf("expected price, location, quantity and quality issues, got %v", issues)
	}
}

func TestMatchIDDeterministic(t *testing.T) {
	reqID := uuid.New()
	offID := uuid.New()

	if MatchID(reqID, offID) != MatchID(reqID, offID) {
		t.Fatal("same pair must always produce the same match id")
	}
	if MatchID(reqID, offID) == MatchID(offID, reqID) {
		t.Fatal("distinct pairs must produce distinct match ids")
	}
}
