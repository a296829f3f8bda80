package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRequirementRequest struct {
	BuyerID                uuid.UUID `json:"buyer_id"`
	Title                  string    `json:"title"`
	Description            string    `json:"description"`
	Category               string    `json:"category"`
	Subcategory            string    `json:"subcategory"`
	BudgetMin              *float64  `json:"budget_min"`
	BudgetMax              *float64  `json:"budget_max"`
	Location               string    `json:"location"`
	PreferredLocations     []string  `json:"preferred_locations"`
	Quantity               *float64  `json:"quantity"`
	Unit                   string    `json:"unit"`
	QualityRequirements    []string  `json:"quality_requirements"`
	CertificationsRequired []string  `json:"certifications_required"`
	Tags                   []string  `json:"tags"`
}

type RequirementResponse struct {
	RequirementID          uuid.UUID `json:"requirement_id"`
	BuyerID                uuid.UUID `json:"buyer_id"`
	Title                  string    `json:"title"`
	Description            string    `json:"description"`
	Category               string    `json:"category"`
	Subcategory            string    `json:"subcategory,omitempty"`
	BudgetMin              *float64  `json:"budget_min"`
	BudgetMax              *float64  `json:"budget_max"`
	Location               string    `json:"location"`
	PreferredLocations     []string  `json:"preferred_locations"`
	Quantity               *float64  `json:"quantity"`
	Unit                   string    `json:"unit,omitempty"`
	QualityRequirements    []string  `json:"quality_requirements"`
	CertificationsRequired []string  `json:"certifications_required"`
	Tags                   []string  `json:"tags"`
	CreatedAt              time.Time `json:"created_at"`
}

type CreateOfferingRequest struct {
	SellerID         uuid.UUID `json:"seller_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory"`
	PriceMin         *float64  `json:"price_min"`
	PriceMax         *float64  `json:"price_max"`
	Location         string    `json:"location"`
	ServiceAreas     []string  `json:"service_areas"`
	Capacity         *float64  `json:"capacity"`
	Unit             string    `json:"unit"`
	Certifications   []string  `json:"certifications"`
	QualityStandards []string  `json:"quality_standards"`
	Tags             []string  `json:"tags"`
	Rating           *float64  `json:"rating"`
}

type OfferingResponse struct {
	OfferingID       uuid.UUID `json:"offering_id"`
	SellerID         uuid.UUID `json:"seller_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory,omitempty"`
	PriceMin         *float64  `json:"price_min"`
	PriceMax         *float64  `json:"price_max"`
	Location         string    `json:"location"`
	ServiceAreas     []string  `json:"service_areas"`
	Capacity         *float64  `json:"capacity"`
	Unit             string    `json:"unit,omitempty"`
	Certifications   []string  `json:"certifications"`
	QualityStandards []string  `json:"quality_standards"`
	Tags             []string  `json:"tags"`
	Rating           *float64  `json:"rating"`
	CreatedAt        time.Time `json:"created_at"`
}
