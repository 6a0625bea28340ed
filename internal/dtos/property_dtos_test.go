package dtos

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() PropertyPayload {
	price := decimal.NewFromInt(250000)
	return PropertyPayload{
		Title:            "Casa Bonita",
		ListingType:      "SALE",
		SalePriceDollars: &price,
		Address:          "Calle Mayor 1",
		Description:      "A lovely three bedroom house in the center",
		Bedrooms:         3,
		Bathrooms:        2,
	}
}

func TestValidateAcceptsValidPayload(t *testing.T) {
	p := validPayload()
	assert.Nil(t, p.Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	p := validPayload()
	p.Title = "   "
	p.Address = ""
	p.Description = "too short"

	errs := p.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "address")
	assert.Contains(t, errs, "description")
}

func TestValidateSalePriceRequiredForSale(t *testing.T) {
	p := validPayload()
	p.SalePriceDollars = nil

	errs := p.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "sale_price_dollars")
}

func TestValidateSaleRentRequiresBothPrices(t *testing.T) {
	p := validPayload()
	p.ListingType = "SALE_RENT"
	p.SalePriceDollars = nil
	p.RentPriceDollars = nil

	errs := p.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "sale_price_dollars")
	assert.Contains(t, errs, "rent_price_dollars")

	sale := decimal.NewFromInt(100000)
	rent := decimal.NewFromInt(900)
	p.SalePriceDollars = &sale
	p.RentPriceDollars = &rent
	assert.Nil(t, p.Validate())
}

func TestValidateRentPriceRequiredForRent(t *testing.T) {
	p := validPayload()
	p.ListingType = "RENT"
	p.SalePriceDollars = nil

	errs := p.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "rent_price_dollars")
}

func TestValidateNumericRanges(t *testing.T) {
	p := validPayload()
	p.Bathrooms = 11
	p.Bedrooms = 16
	p.ParkingSpaces = 21
	p.Floor = 26

	errs := p.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "bathrooms")
	assert.Contains(t, errs, "bedrooms")
	assert.Contains(t, errs, "parking_spaces")
	assert.Contains(t, errs, "floor")
}

func TestValidateConstructionYear(t *testing.T) {
	p := validPayload()
	year := FlexInt(1850)
	p.ConstructionYear = &year
	errs := p.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "construction_year")

	year = FlexInt(1990)
	assert.Nil(t, p.Validate())
}

func TestValidateAtMostOneCoverPhoto(t *testing.T) {
	p := validPayload()
	p.Media = []MediaItemPayload{
		{RemoteID: "a", IsCoverPhoto: true},
		{RemoteID: "b", IsCoverPhoto: true},
	}
	errs := p.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "media")

	p.Media[1].IsCoverPhoto = false
	assert.Nil(t, p.Validate())
}

func TestValidateDeletedCoverPhotoDoesNotCount(t *testing.T) {
	id := uuid.New()
	p := validPayload()
	p.Media = []MediaItemPayload{
		{ID: &id, IsCoverPhoto: true, IsDeleted: true},
		{RemoteID: "b", IsCoverPhoto: true},
	}
	assert.Nil(t, p.Validate())
}

func TestValidateVideoHosts(t *testing.T) {
	p := validPayload()
	p.VideoLinks = []VideoLinkPayload{
		{URL: "https://www.youtube.com/watch?v=abc"},
		{URL: "https://vimeo.com/12345"},
		{URL: "https://example.com/video.mp4"},
	}
	errs := p.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "video_links.2.url")
}

func TestValidateInlineOwnerNames(t *testing.T) {
	p := validPayload()
	p.Owner = &OwnerPayload{FirstName: "", LastName: " "}

	errs := p.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "owner.first_name")
	assert.Contains(t, errs, "owner.last_name")
}

func TestFlexIntAcceptsStringsAndNumbers(t *testing.T) {
	var got struct {
		A FlexInt  `json:"a"`
		B FlexInt  `json:"b"`
		C *FlexInt `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 3, "b": "7", "c": "1990"}`), &got))
	assert.Equal(t, FlexInt(3), got.A)
	assert.Equal(t, FlexInt(7), got.B)
	require.NotNil(t, got.C)
	assert.Equal(t, FlexInt(1990), *got.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a": "abc"}`), &got))
}

func TestDetectVideoPlatform(t *testing.T) {
	assert.Equal(t, "VIMEO", string(DetectVideoPlatform("https://vimeo.com/1")))
	assert.Equal(t, "YOUTUBE", string(DetectVideoPlatform("https://youtu.be/abc")))
}
