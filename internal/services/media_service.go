package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
	"github.com/integration-ia/ceus-crm-backend/internal/utils/storage"
)

// MediaService issues presigned upload slots ahead of a property save.
// The storage key doubles as the photo's remote id.
type MediaService struct {
	storage storage.Client
}

func NewMediaService(st storage.Client) *MediaService {
	return &MediaService{storage: st}
}

func (s *MediaService) GenerateUploadURLs(ctx context.Context, orgID uuid.UUID, count int) (*dtos.UploadURLsResponse, error) {
	expiry := time.Duration(utils.UploadURLExpiryMinutes) * time.Minute

	slots := make([]dtos.UploadSlot, 0, count)
	for i := 0; i < count; i++ {
		key := fmt.Sprintf("properties/%s/%s", orgID, uuid.New())
		url, err := s.storage.GenerateUploadURL(ctx, key, expiry)
		if err != nil {
			return nil, utils.ErrExternalServiceFailure
		}
		slots = append(slots, dtos.UploadSlot{RemoteID: key, UploadURL: url})
	}
	return &dtos.UploadURLsResponse{Slots: slots}, nil
}
