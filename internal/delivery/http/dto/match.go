package dto

import "time"

type MatchFilters struct {
	Location  string   `json:"location"`
	MaxPrice  *float64 `json:"max_price"`
	MinBudget *float64 `json:"min_budget"`
}

type MatchRequest struct {
	Type          string        `json:"type"`
	EntityID      string        `json:"entity_id"`
	Limit         int           `json:"limit"`
	Filters       *MatchFilters `json:"filters"`
	IncludeScores *bool         `json:"include_scores"`
}

type MatchFactorsResponse struct {
	Category float64 `json:"category"`
	Text     float64 `json:"text"`
	Price    float64 `json:"price"`
	Location float64 `json:"location"`
	Quantity float64 `json:"quantity"`
	Quality  float64 `json:"quality"`
}

type MatchResultResponse struct {
	MatchID                     string                `json:"match_id"`
	RequirementID               string                `json:"requirement_id"`
	OfferingID                  string                `json:"offering_id"`
	MatchScore                  float64               `json:"match_score"`
	MatchFactors                *MatchFactorsResponse `json:"match_factors,omitempty"`
	ConfidenceLevel             string                `json:"confidence_level"`
	EstimatedSuccessProbability float64               `json:"estimated_success_probability"`
	MatchReasons                []string              `json:"match_reasons"`
	PotentialIssues             []string              `json:"potential_issues"`
	CreatedAt                   time.Time             `json:"created_at"`
}

type MatchResponse struct {
	Matches          []MatchResultResponse `json:"matches"`
	TotalMatches     int                   `json:"total_matches"`
	ProcessingTimeMs float64               `json:"processing_time_ms"`
}
