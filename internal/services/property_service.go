package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/repositories"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

// GeocodeFunc resolves a street address to coordinates. Geocoding is
// best effort; failures never block a save.
type GeocodeFunc func(ctx context.Context, address string) (float64, float64, error)

// PropertyService is the create/update orchestrator: validation, slug
// resolution, owner resolution, scalar persistence and media
// reconciliation, in that order. Owner resolution and the property
// write share one transaction so a contact collision leaves no partial
// state behind.
type PropertyService struct {
	store              repositories.TxRunner
	media              *MediaReconciler
	notifier           Notifier
	geocode            GeocodeFunc
	marketplaceEnabled bool
}

func NewPropertyService(
	store repositories.TxRunner,
	media *MediaReconciler,
	notifier Notifier,
	geocode GeocodeFunc,
	marketplaceEnabled bool,
) *PropertyService {
	return &PropertyService{
		store:              store,
		media:              media,
		notifier:           notifier,
		geocode:            geocode,
		marketplaceEnabled: marketplaceEnabled,
	}
}

/* ---------- create ---------- */

func (s *PropertyService) CreateProperty(
	ctx context.Context,
	orgID, agentID uuid.UUID,
	payload *dtos.PropertyPayload,
) (*dtos.PropertySaveResponse, error) {
	if fields := payload.Validate(); fields != nil {
		return nil, utils.NewValidationError(fields)
	}

	slug, err := utils.GenerateSlug(ctx, payload.Title, s.store.Repos().Properties.SlugExists)
	if err != nil {
		return nil, err
	}

	prop := &models.Property{
		ID:             uuid.New(),
		OrganizationID: orgID,
		AgentID:        agentID,
		Slug:           slug,
	}
	if payload.AgentID != nil {
		prop.AgentID = *payload.AgentID
	}
	if err := applyPayload(prop, payload); err != nil {
		return nil, err
	}

	// Best effort and outside the transaction; a geocoder outage must
	// not block the save.
	if s.geocode != nil {
		if lat, lng, err := s.geocode(ctx, prop.Address); err != nil {
			utils.Logger.WithError(err).WithField("address", prop.Address).
				Warn("geocoding failed")
		} else {
			prop.Latitude = lat
			prop.Longitude = lng
		}
	}

	err = s.store.WithTx(ctx, func(r *repositories.Repos) error {
		ownerID, err := resolveOwner(ctx, r, orgID, payload)
		if err != nil {
			return err
		}
		prop.OwnerID = ownerID
		if err := r.Properties.Create(ctx, prop); err != nil {
			if repositories.IsUniqueViolation(err) {
				return utils.ErrDuplicate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	warnings, err := s.reconcileMedia(ctx, prop.ID, payload)
	if err != nil {
		return nil, err
	}

	if payload.ShareWithCEUS && s.marketplaceEnabled && s.notifier != nil {
		// Contained: a failed notification never fails the save.
		if err := s.notifier.NotifyNewListing(ctx, prop); err != nil {
			utils.Logger.WithError(err).WithField("property_id", prop.ID).
				Error("marketplace notification failed")
		}
	}

	return &dtos.PropertySaveResponse{ID: prop.ID, Slug: prop.Slug, Warnings: warnings}, nil
}

/* ---------- update ---------- */

func (s *PropertyService) UpdateProperty(
	ctx context.Context,
	orgID, propertyID uuid.UUID,
	payload *dtos.PropertyPayload,
) (*dtos.PropertySaveResponse, error) {
	if fields := payload.Validate(); fields != nil {
		return nil, utils.NewValidationError(fields)
	}

	existing, err := s.store.Repos().Properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.OrganizationID != orgID {
		return nil, utils.ErrNotFound
	}

	slug := existing.Slug
	if payload.Title != existing.Title {
		slug, err = utils.GenerateSlug(ctx, payload.Title, s.store.Repos().Properties.SlugExists)
		if err != nil {
			return nil, err
		}
	}

	prop := *existing
	prop.Slug = slug
	if payload.AgentID != nil {
		prop.AgentID = *payload.AgentID
	}
	if err := applyPayload(&prop, payload); err != nil {
		return nil, err
	}

	if s.geocode != nil && prop.Address != existing.Address {
		if lat, lng, err := s.geocode(ctx, prop.Address); err != nil {
			utils.Logger.WithError(err).WithField("address", prop.Address).
				Warn("geocoding failed")
		} else {
			prop.Latitude = lat
			prop.Longitude = lng
		}
	}

	err = s.store.WithTx(ctx, func(r *repositories.Repos) error {
		// Touch the owner link only when the update names one; a
		// payload without owner fields keeps the existing owner.
		if payload.OwnerID != nil || payload.Owner != nil {
			ownerID, err := resolveOwner(ctx, r, orgID, payload)
			if err != nil {
				return err
			}
			prop.OwnerID = ownerID
		}
		if err := r.Properties.Update(ctx, &prop); err != nil {
			if repositories.IsUniqueViolation(err) {
				return utils.ErrDuplicate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	warnings, err := s.reconcileMedia(ctx, prop.ID, payload)
	if err != nil {
		return nil, err
	}

	return &dtos.PropertySaveResponse{ID: prop.ID, Slug: prop.Slug, Warnings: warnings}, nil
}

/* ---------- reads / delete ---------- */

func (s *PropertyService) GetProperty(ctx context.Context, orgID, propertyID uuid.UUID) (*dtos.PropertyResponse, error) {
	r := s.store.Repos()
	prop, err := r.Properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || prop.OrganizationID != orgID {
		return nil, utils.ErrNotFound
	}

	photos, err := r.Photos.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	videos, err := r.Videos.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return &dtos.PropertyResponse{Property: prop, Photos: photos, Videos: videos}, nil
}

func (s *PropertyService) ListProperties(ctx context.Context, orgID uuid.UUID) ([]*models.Property, error) {
	return s.store.Repos().Properties.ListByOrganizationID(ctx, orgID)
}

// DeleteProperty removes the listing and everything it owns: notes,
// photo rows (with best-effort remote cleanup) and video rows.
func (s *PropertyService) DeleteProperty(ctx context.Context, orgID, propertyID uuid.UUID) error {
	prop, err := s.store.Repos().Properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if prop == nil || prop.OrganizationID != orgID {
		return utils.ErrNotFound
	}

	photos, err := s.store.Repos().Photos.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return err
	}

	err = s.store.WithTx(ctx, func(r *repositories.Repos) error {
		rows, err := r.Notes.ListByPropertyID(ctx, propertyID)
		if err != nil {
			return err
		}
		for _, n := range rows {
			if err := r.Notes.Delete(ctx, n.ID); err != nil {
				return err
			}
		}
		if err := r.Photos.DeleteByPropertyID(ctx, propertyID); err != nil {
			return err
		}
		if err := r.Videos.DeleteByPropertyID(ctx, propertyID); err != nil {
			return err
		}
		return r.Properties.Delete(ctx, propertyID)
	})
	if err != nil {
		return err
	}

	for _, ph := range photos {
		if err := s.media.storage.DeleteObject(ctx, ph.RemoteID); err != nil {
			utils.Logger.WithError(err).WithField("remote_id", ph.RemoteID).
				Warn("failed to delete remote object")
		}
	}
	return nil
}

/* ---------- internals ---------- */

// applyPayload copies the scalar fields onto the model, converting
// money to integer cents.
func applyPayload(p *models.Property, payload *dtos.PropertyPayload) error {
	lt, err := models.ParseListingType(payload.ListingType)
	if err != nil {
		return utils.NewValidationError(utils.FieldErrors{"listing_type": "unknown listing type"})
	}

	p.Title = payload.Title
	p.ListingType = lt
	p.Address = payload.Address
	p.City = payload.City
	p.Bedrooms = int(payload.Bedrooms)
	p.Bathrooms = int(payload.Bathrooms)
	p.ParkingSpaces = int(payload.ParkingSpaces)
	p.Floor = int(payload.Floor)
	p.AreaM2 = payload.AreaM2
	p.Description = payload.Description
	p.FeePercent = payload.FeePercent

	if payload.ConstructionYear != nil {
		year := int(*payload.ConstructionYear)
		p.ConstructionYear = &year
	} else {
		p.ConstructionYear = nil
	}

	p.SalePriceCents = nil
	if payload.SalePriceDollars != nil {
		cents, err := utils.ToCents(*payload.SalePriceDollars)
		if err != nil {
			return utils.NewValidationError(utils.FieldErrors{"sale_price_dollars": err.Error()})
		}
		p.SalePriceCents = &cents
	}
	p.RentPriceCents = nil
	if payload.RentPriceDollars != nil {
		cents, err := utils.ToCents(*payload.RentPriceDollars)
		if err != nil {
			return utils.NewValidationError(utils.FieldErrors{"rent_price_dollars": err.Error()})
		}
		p.RentPriceCents = &cents
	}
	p.TaxCents = nil
	if payload.TaxDollars != nil {
		cents, err := utils.ToCents(*payload.TaxDollars)
		if err != nil {
			return utils.NewValidationError(utils.FieldErrors{"tax_dollars": err.Error()})
		}
		p.TaxCents = &cents
	}
	return nil
}

// resolveOwner returns the owner client id for the save. An explicit
// OwnerID is verified and linked without contact checks. Inline owner
// fields trigger the organization-wide contact collision check and, if
// clear, create a new OWNER client. The two paths are mutually
// exclusive; the collision check runs strictly before any write.
func resolveOwner(
	ctx context.Context,
	r *repositories.Repos,
	orgID uuid.UUID,
	payload *dtos.PropertyPayload,
) (*uuid.UUID, error) {
	if payload.OwnerID != nil {
		owner, err := r.Clients.GetByID(ctx, *payload.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.OrganizationID != orgID {
			return nil, utils.ErrNotFound
		}
		return payload.OwnerID, nil
	}

	if payload.Owner == nil {
		return nil, nil
	}

	o := payload.Owner
	numbers := []string{o.MobilePhone, o.HomePhone}
	emails := []string{o.Email}

	matches, err := r.Clients.FindByContact(ctx, orgID, numbers, emails, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return nil, utils.ErrDuplicateContact
	}

	client := &models.Client{
		ID:             uuid.New(),
		OrganizationID: orgID,
		FirstName:      o.FirstName,
		LastName:       o.LastName,
		Type:           models.ClientTypeOwner,
		ReceivesEmail:  o.ReceivesEmail,
	}
	if o.MobilePhone != "" {
		client.Phones = append(client.Phones, models.ClientPhone{
			Number: o.MobilePhone, Type: models.PhoneTypeMobile, WhatsApp: o.WhatsApp,
		})
	}
	if o.HomePhone != "" {
		client.Phones = append(client.Phones, models.ClientPhone{
			Number: o.HomePhone, Type: models.PhoneTypeHome,
		})
	}
	if o.Email != "" {
		client.Emails = append(client.Emails, models.ClientEmail{Address: o.Email})
	}

	if err := r.Clients.Create(ctx, client); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.ErrDuplicateContact
		}
		return nil, err
	}
	return &client.ID, nil
}

// reconcileMedia runs the photo and video diffs, collecting warnings
// from both.
func (s *PropertyService) reconcileMedia(
	ctx context.Context,
	propertyID uuid.UUID,
	payload *dtos.PropertyPayload,
) ([]string, error) {
	var warnings []string

	if len(payload.Media) > 0 {
		w, err := s.media.ReconcilePhotos(ctx, s.store.Repos(), propertyID, payload.Media)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
	}
	if len(payload.VideoLinks) > 0 {
		w, err := s.media.ReconcileVideos(ctx, s.store.Repos(), propertyID, payload.VideoLinks)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
	}
	return warnings, nil
}
