package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/repositories"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
	"github.com/integration-ia/ceus-crm-backend/internal/utils/hosting"
)

// HostingProvider is the slice of the provider API the domain flow
// uses.
type HostingProvider interface {
	AddDomain(ctx context.Context, name string) (*hosting.Domain, error)
	GetDomainStatus(ctx context.Context, name string) (*hosting.DomainStatus, error)
	RemoveDomain(ctx context.Context, name string) error
}

// DomainService registers custom web domains with the hosting provider
// and reconciles their verification status, on demand and via the
// periodic sweep.
type DomainService struct {
	store    repositories.TxRunner
	provider HostingProvider
}

func NewDomainService(store repositories.TxRunner, provider HostingProvider) *DomainService {
	return &DomainService{store: store, provider: provider}
}

// RegisterDomain claims the domain at the provider and records it as
// PENDING. A provider-side conflict (claimed by another account) or a
// local duplicate surfaces as a conflict error.
func (s *DomainService) RegisterDomain(ctx context.Context, orgID uuid.UUID, name string) (*models.CustomDomain, error) {
	existing, err := s.store.Repos().Domains.GetByDomain(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrDomainConflict
	}

	if _, err := s.provider.AddDomain(ctx, name); err != nil {
		var conflict *hosting.ConflictError
		if errors.As(err, &conflict) {
			return nil, utils.ErrDomainConflict
		}
		return nil, utils.ErrExternalServiceFailure
	}

	d := &models.CustomDomain{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Domain:         name,
		Status:         models.DomainStatusPending,
	}
	if err := s.store.Repos().Domains.Create(ctx, d); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.ErrDomainConflict
		}
		return nil, err
	}
	return d, nil
}

// VerifyDomain polls the provider once and persists the resulting
// status.
func (s *DomainService) VerifyDomain(ctx context.Context, orgID, domainID uuid.UUID) (*models.CustomDomain, error) {
	d, err := s.getVisible(ctx, orgID, domainID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, d)
}

func (s *DomainService) ListDomains(ctx context.Context, orgID uuid.UUID) ([]*models.CustomDomain, error) {
	return s.store.Repos().Domains.ListByOrganizationID(ctx, orgID)
}

// RemoveDomain detaches at the provider and deletes the local record.
// A provider 404 counts as already detached.
func (s *DomainService) RemoveDomain(ctx context.Context, orgID, domainID uuid.UUID) error {
	d, err := s.getVisible(ctx, orgID, domainID)
	if err != nil {
		return err
	}

	if err := s.provider.RemoveDomain(ctx, d.Domain); err != nil {
		var notFound *hosting.NotFoundError
		if !errors.As(err, &notFound) {
			return utils.ErrExternalServiceFailure
		}
	}
	return s.store.Repos().Domains.Delete(ctx, d.ID)
}

// VerifyAll walks every non-active domain and refreshes its status.
// Individual provider failures are logged and skipped so one bad domain
// never stalls the sweep.
func (s *DomainService) VerifyAll(ctx context.Context) {
	pending, err := s.store.Repos().Domains.ListNonActive(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("domain sweep: listing pending domains failed")
		return
	}
	for _, d := range pending {
		if _, err := s.refresh(ctx, d); err != nil {
			utils.Logger.WithError(err).WithField("domain", d.Domain).
				Warn("domain sweep: refresh failed")
		}
	}
}

/* ---------- internals ---------- */

func (s *DomainService) refresh(ctx context.Context, d *models.CustomDomain) (*models.CustomDomain, error) {
	status, err := s.provider.GetDomainStatus(ctx, d.Domain)
	if err != nil {
		var notFound *hosting.NotFoundError
		if errors.As(err, &notFound) {
			// The provider lost the registration; flag it rather than
			// silently re-adding.
			return s.persistStatus(ctx, d, models.DomainStatusError)
		}
		return nil, utils.ErrExternalServiceFailure
	}

	next := mapProviderStatus(status)
	return s.persistStatus(ctx, d, next)
}

func (s *DomainService) persistStatus(ctx context.Context, d *models.CustomDomain, status models.DomainStatus) (*models.CustomDomain, error) {
	if err := s.store.Repos().Domains.UpdateStatus(ctx, d.ID, status); err != nil {
		return nil, err
	}
	d.Status = status
	return d, nil
}

// mapProviderStatus reduces the provider's DNS/certificate view to the
// local lifecycle state.
func mapProviderStatus(st *hosting.DomainStatus) models.DomainStatus {
	switch {
	case len(st.Conflicts) > 0:
		return models.DomainStatusConflict
	case st.Misconfigured:
		return models.DomainStatusError
	case st.Verified && st.CertIssued:
		return models.DomainStatusActive
	default:
		return models.DomainStatusVerifying
	}
}

func (s *DomainService) getVisible(ctx context.Context, orgID, domainID uuid.UUID) (*models.CustomDomain, error) {
	d, err := s.store.Repos().Domains.GetByID(ctx, domainID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.OrganizationID != orgID {
		return nil, utils.ErrNotFound
	}
	return d, nil
}
