package matching

import (
	"time"

	"github.com/google/uuid"
)

// BuyerRequirement is a buyer-side sourcing request. The engine never
// mutates it; repositories load it, the engine only reads it.
type BuyerRequirement struct {
	RequirementID          uuid.UUID
	BuyerID                uuid.UUID
	Title                  string
	Description            string
	Category               string
	Subcategory            string
	BudgetMin              *float64
	BudgetMax              *float64
	Location               string
	PreferredLocations     []string
	Quantity               *float64
	Unit                   string
	QualityRequirements    []string
	CertificationsRequired []string
	Tags                   []string
	CreatedAt              time.Time
}

// SellerOffering is a seller-side listing.
type SellerOffering struct {
	OfferingID       uuid.UUID
	SellerID         uuid.UUID
	Title            string
	Description      string
	Category         string
	Subcategory      string
	PriceMin         *float64
	PriceMax         *float64
	Location         string
	ServiceAreas     []string
	Capacity         *float64
	Unit             string
	Certifications   []string
	QualityStandards []string
	Tags             []string
	Rating           *float64
	CreatedAt        time.Time
}

// FactorScores holds the six per-signal sub-scores, each in [0,1].
type FactorScores struct {
	Category float64 `json:"category"`
	Text     float64 `json:"text"`
	Price    float64 `json:"price"`
	Location float64 `json:"location"`
	Quantity float64 `json:"quantity"`
	Quality  float64 `json:"quality"`
}

type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceVeryLow Confidence = "very_low"
)

// MatchResult is an immutable scoring snapshot for one
// (requirement, offering) pair.
type MatchResult struct {
	MatchID            uuid.UUID
	RequirementID      uuid.UUID
	OfferingID         uuid.UUID
	BuyerID            uuid.UUID
	SellerID           uuid.UUID
	Score              float64
	Factors            FactorScores
	Confidence         Confidence
	SuccessProbability float64
	Reasons            []string
	Issues             []string
	CreatedAt          time.Time
}

// matchNamespace seeds the deterministic match id: the same
// (requirement, offering) pair always yields the same MatchID.
var matchNamespace = uuid.MustParse("7b0d3c6e-4a91-4d2f-9c55-1f8e2a6b0d49")

func MatchID(requirementID, offeringID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(matchNamespace, []byte(requirementID.String()+":"+offeringID.String()))
}
