package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ListingType string

const (
	ListingSale            ListingType = "SALE"
	ListingRent            ListingType = "RENT"
	ListingSaleRent        ListingType = "SALE_RENT"
	ListingPermutationSale ListingType = "PERMUTATION_SALE"
	ListingPermutationRent ListingType = "PERMUTATION_RENT"
)

func ParseListingType(s string) (ListingType, error) {
	switch ListingType(s) {
	case ListingSale, ListingRent, ListingSaleRent, ListingPermutationSale, ListingPermutationRent:
		return ListingType(s), nil
	default:
		return "", fmt.Errorf("invalid listing type: %q", s)
	}
}

// RequiresSalePrice reports whether the listing type makes the sale
// price mandatory.
func (lt ListingType) RequiresSalePrice() bool {
	return lt == ListingSale || lt == ListingSaleRent || lt == ListingPermutationSale
}

// RequiresRentPrice reports whether the listing type makes the rent
// price mandatory.
func (lt ListingType) RequiresRentPrice() bool {
	return lt == ListingRent || lt == ListingSaleRent || lt == ListingPermutationRent
}

// Property is a listing. Money fields are integer cents; Slug is unique
// across the whole system, not per organization.
type Property struct {
	ID               uuid.UUID   `json:"id"`
	OrganizationID   uuid.UUID   `json:"organization_id"`
	AgentID          uuid.UUID   `json:"agent_id"`
	OwnerID          *uuid.UUID  `json:"owner_id,omitempty"`
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	SequenceCode     string      `json:"sequence_code"`
	ListingType      ListingType `json:"listing_type"`
	SalePriceCents   *int64      `json:"sale_price_cents,omitempty"`
	RentPriceCents   *int64      `json:"rent_price_cents,omitempty"`
	TaxCents         *int64      `json:"tax_cents,omitempty"`
	FeePercent       *float64    `json:"fee_percent,omitempty"`
	Address          string      `json:"address"`
	City             string      `json:"city"`
	Latitude         float64     `json:"latitude,omitempty"`
	Longitude        float64     `json:"longitude,omitempty"`
	Bedrooms         int         `json:"bedrooms"`
	Bathrooms        int         `json:"bathrooms"`
	ParkingSpaces    int         `json:"parking_spaces"`
	Floor            int         `json:"floor"`
	AreaM2           *float64    `json:"area_m2,omitempty"`
	ConstructionYear *int        `json:"construction_year,omitempty"`
	Description      string      `json:"description"`
	CreatedAt        time.Time   `json:"created_at"`
}
