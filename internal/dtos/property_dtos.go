package dtos

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

// FlexInt accepts both JSON numbers and numeric strings. Form layers
// frequently send numeric fields as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %s", s)
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

// MediaItemPayload is one photo in a property submission. ID is absent
// for new items; IsDeleted is only meaningful on the update path.
type MediaItemPayload struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	RemoteID     string     `json:"remote_id,omitempty"`
	Filename     string     `json:"filename,omitempty"`
	IsCoverPhoto bool       `json:"is_cover_photo"`
	IsDeleted    bool       `json:"is_deleted,omitempty"`
}

// VideoLinkPayload is one video link in a property submission.
type VideoLinkPayload struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	URL       string     `json:"url"`
	Platform  string     `json:"platform,omitempty"`
	IsDeleted bool       `json:"is_deleted,omitempty"`
}

// OwnerPayload carries the inline owner fields used when no OwnerID is
// supplied. At most one mobile and one home number.
type OwnerPayload struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email,omitempty"`
	MobilePhone   string `json:"mobile_phone,omitempty"`
	HomePhone     string `json:"home_phone,omitempty"`
	WhatsApp      bool   `json:"whatsapp,omitempty"`
	ReceivesEmail bool   `json:"receives_email"`
}

// PropertyPayload is the create/update submission shape. Money fields
// arrive as decimal currency units and are converted to integer cents
// at persistence time.
type PropertyPayload struct {
	Title            string           `json:"title"`
	ListingType      string           `json:"listing_type"`
	SalePriceDollars *decimal.Decimal `json:"sale_price_dollars,omitempty"`
	RentPriceDollars *decimal.Decimal `json:"rent_price_dollars,omitempty"`
	TaxDollars       *decimal.Decimal `json:"tax_dollars,omitempty"`
	FeePercent       *float64         `json:"fee_percent,omitempty"`

	Address string `json:"address"`
	City    string `json:"city,omitempty"`

	Bedrooms         FlexInt  `json:"bedrooms"`
	Bathrooms        FlexInt  `json:"bathrooms"`
	ParkingSpaces    FlexInt  `json:"parking_spaces"`
	Floor            FlexInt  `json:"floor"`
	AreaM2           *float64 `json:"area_m2,omitempty"`
	ConstructionYear *FlexInt `json:"construction_year,omitempty"`

	Description string `json:"description"`

	AgentID    *uuid.UUID    `json:"agent_id,omitempty"`
	OwnerID    *uuid.UUID    `json:"owner_id,omitempty"`
	Owner      *OwnerPayload `json:"owner,omitempty"`

	Media      []MediaItemPayload `json:"media,omitempty"`
	VideoLinks []VideoLinkPayload `json:"video_links,omitempty"`

	ShareWithCEUS bool `json:"share_with_ceus,omitempty"`
}

// Normalize trims free-text fields in place.
func (p *PropertyPayload) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	p.Description = strings.TrimSpace(p.Description)
	if p.Owner != nil {
		p.Owner.FirstName = strings.TrimSpace(p.Owner.FirstName)
		p.Owner.LastName = strings.TrimSpace(p.Owner.LastName)
		p.Owner.Email = strings.TrimSpace(p.Owner.Email)
		p.Owner.MobilePhone = strings.TrimSpace(p.Owner.MobilePhone)
		p.Owner.HomePhone = strings.TrimSpace(p.Owner.HomePhone)
	}
	for i := range p.VideoLinks {
		p.VideoLinks[i].URL = strings.TrimSpace(p.VideoLinks[i].URL)
	}
}

// Validate normalizes the payload and checks every field rule, returning
// every violation at once rather than stopping at the first.
func (p *PropertyPayload) Validate() utils.FieldErrors {
	p.Normalize()
	errs := utils.FieldErrors{}

	if p.Title == "" {
		errs["title"] = "title is required"
	}
	if p.Address == "" {
		errs["address"] = "address is required"
	}
	if len(p.Description) < 20 {
		errs["description"] = "description must be at least 20 characters"
	}

	lt, err := models.ParseListingType(p.ListingType)
	if err != nil {
		errs["listing_type"] = "unknown listing type"
	} else {
		if lt.RequiresSalePrice() && p.SalePriceDollars == nil {
			errs["sale_price_dollars"] = "sale price is required for this listing type"
		}
		if lt.RequiresRentPrice() && p.RentPriceDollars == nil {
			errs["rent_price_dollars"] = "rent price is required for this listing type"
		}
	}
	if p.SalePriceDollars != nil && p.SalePriceDollars.IsNegative() {
		errs["sale_price_dollars"] = "sale price must not be negative"
	}
	if p.RentPriceDollars != nil && p.RentPriceDollars.IsNegative() {
		errs["rent_price_dollars"] = "rent price must not be negative"
	}
	if p.TaxDollars != nil && p.TaxDollars.IsNegative() {
		errs["tax_dollars"] = "tax must not be negative"
	}

	checkRange := func(field string, v, min, max int) {
		if v < min || v > max {
			errs[field] = fmt.Sprintf("%s must be between %d and %d", field, min, max)
		}
	}
	checkRange("bathrooms", int(p.Bathrooms), 0, 10)
	checkRange("bedrooms", int(p.Bedrooms), 0, 15)
	checkRange("parking_spaces", int(p.ParkingSpaces), 0, 20)
	checkRange("floor", int(p.Floor), 0, 25)

	if p.ConstructionYear != nil {
		year := int(*p.ConstructionYear)
		if year < 1900 || year > time.Now().Year() {
			errs["construction_year"] = fmt.Sprintf("construction year must be between 1900 and %d", time.Now().Year())
		}
	}

	covers := 0
	for _, m := range p.Media {
		if m.IsCoverPhoto && !m.IsDeleted {
			covers++
		}
	}
	if covers > 1 {
		errs["media"] = "at most one photo may be the cover photo"
	}

	for i, v := range p.VideoLinks {
		if v.IsDeleted {
			continue
		}
		if !isKnownVideoHost(v.URL) {
			errs[fmt.Sprintf("video_links.%d.url", i)] = "url must point to a supported video platform"
		}
	}

	if p.OwnerID == nil && p.Owner != nil {
		if p.Owner.FirstName == "" {
			errs["owner.first_name"] = "owner first name is required"
		}
		if p.Owner.LastName == "" {
			errs["owner.last_name"] = "owner last name is required"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func isKnownVideoHost(url string) bool {
	lower := strings.ToLower(url)
	for _, token := range utils.VideoHostTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// DetectVideoPlatform maps a URL to its platform tag. Validation has
// already guaranteed the URL contains a known host token.
func DetectVideoPlatform(url string) models.VideoPlatform {
	lower := strings.ToLower(url)
	if strings.Contains(lower, "vimeo.com") {
		return models.VideoPlatformVimeo
	}
	return models.VideoPlatformYouTube
}

/* ---------- responses ---------- */

// PropertySaveResponse is returned by create and update. Warnings carry
// non-fatal media failures (skipped uploads, stale ids).
type PropertySaveResponse struct {
	ID       uuid.UUID `json:"id"`
	Slug     string    `json:"slug"`
	Warnings []string  `json:"warnings,omitempty"`
}

// PropertyResponse is the read shape, with media and videos attached.
type PropertyResponse struct {
	Property *models.Property        `json:"property"`
	Photos   []*models.PropertyPhoto `json:"photos"`
	Videos   []*models.PropertyVideo `json:"videos"`
}
