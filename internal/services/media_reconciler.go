package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/repositories"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
	"github.com/integration-ia/ceus-crm-backend/internal/utils/storage"
)

// PhotoDiff partitions a submitted media list into the three disjoint
// sets applied against the store. An item lands in exactly one set.
type PhotoDiff struct {
	ToDelete []dtos.MediaItemPayload
	ToAdd    []dtos.MediaItemPayload
	ToUpdate []dtos.MediaItemPayload
}

// PartitionPhotos classifies each submitted item: flagged-deleted items
// with a known id are deletions, id-less items are additions, the rest
// are in-place updates. Pure function, no store access.
func PartitionPhotos(submitted []dtos.MediaItemPayload) PhotoDiff {
	var d PhotoDiff
	for _, m := range submitted {
		switch {
		case m.IsDeleted && m.ID != nil:
			d.ToDelete = append(d.ToDelete, m)
		case m.ID == nil && !m.IsDeleted:
			d.ToAdd = append(d.ToAdd, m)
		case m.ID != nil:
			d.ToUpdate = append(d.ToUpdate, m)
		}
	}
	return d
}

// VideoDiff is the video-link counterpart of PhotoDiff.
type VideoDiff struct {
	ToDelete []dtos.VideoLinkPayload
	ToAdd    []dtos.VideoLinkPayload
	ToUpdate []dtos.VideoLinkPayload
}

func PartitionVideos(submitted []dtos.VideoLinkPayload) VideoDiff {
	var d VideoDiff
	for _, v := range submitted {
		switch {
		case v.IsDeleted && v.ID != nil:
			d.ToDelete = append(d.ToDelete, v)
		case v.ID == nil && !v.IsDeleted:
			d.ToAdd = append(d.ToAdd, v)
		case v.ID != nil:
			d.ToUpdate = append(d.ToUpdate, v)
		}
	}
	return d
}

// MediaReconciler applies photo and video diffs against the store and
// object storage. Media failures degrade to warnings; they never fail
// the property save.
type MediaReconciler struct {
	storage storage.Client
}

func NewMediaReconciler(st storage.Client) *MediaReconciler {
	return &MediaReconciler{storage: st}
}

// ReconcilePhotos applies deletions, then additions, then updates.
// Additions are confirmed against object storage with up to
// MediaUploadMaxAttempts checks per photo before the item is skipped
// with a warning. Updates whose id no longer exists are skipped with a
// warning instead of failing the batch.
func (m *MediaReconciler) ReconcilePhotos(
	ctx context.Context,
	r *repositories.Repos,
	propertyID uuid.UUID,
	submitted []dtos.MediaItemPayload,
) ([]string, error) {
	previous, err := r.Photos.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	existing := make(map[uuid.UUID]*models.PropertyPhoto, len(previous))
	for _, ph := range previous {
		existing[ph.ID] = ph
	}

	diff := PartitionPhotos(submitted)
	var warnings []string

	for _, item := range diff.ToDelete {
		ph, ok := existing[*item.ID]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("photo %s no longer exists, delete skipped", item.ID))
			continue
		}
		if err := r.Photos.Delete(ctx, ph.ID); err != nil {
			return warnings, err
		}
		// Remote cleanup is best effort; the row is already gone.
		if err := m.storage.DeleteObject(ctx, ph.RemoteID); err != nil {
			utils.Logger.WithError(err).WithField("remote_id", ph.RemoteID).
				Warn("failed to delete remote object")
		}
	}

	for _, item := range diff.ToAdd {
		if !m.confirmUpload(ctx, item.RemoteID) {
			warnings = append(warnings, fmt.Sprintf("photo %q upload not confirmed, skipped", item.Filename))
			continue
		}
		ph := &models.PropertyPhoto{
			ID:         uuid.New(),
			PropertyID: propertyID,
			RemoteID:   item.RemoteID,
			Filename:   item.Filename,
			IsCover:    item.IsCoverPhoto,
		}
		if err := r.Photos.Create(ctx, ph); err != nil {
			return warnings, err
		}
	}

	for _, item := range diff.ToUpdate {
		if _, ok := existing[*item.ID]; !ok {
			warnings = append(warnings, fmt.Sprintf("photo %s no longer exists, update skipped", item.ID))
			continue
		}
		if err := r.Photos.UpdateFlags(ctx, *item.ID, item.IsCoverPhoto); err != nil {
			return warnings, err
		}
	}

	return warnings, nil
}

// confirmUpload polls object storage for the uploaded object, up to
// MediaUploadMaxAttempts times with no backoff.
func (m *MediaReconciler) confirmUpload(ctx context.Context, remoteID string) bool {
	for attempt := 1; attempt <= utils.MediaUploadMaxAttempts; attempt++ {
		ok, err := m.storage.ObjectExists(ctx, remoteID)
		if err != nil {
			utils.Logger.WithError(err).WithField("remote_id", remoteID).
				Warnf("upload confirmation attempt %d failed", attempt)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// ReconcileVideos applies the video diff with the same ordering as
// photos. No object-storage round trip is involved.
func (m *MediaReconciler) ReconcileVideos(
	ctx context.Context,
	r *repositories.Repos,
	propertyID uuid.UUID,
	submitted []dtos.VideoLinkPayload,
) ([]string, error) {
	previous, err := r.Videos.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	existing := make(map[uuid.UUID]*models.PropertyVideo, len(previous))
	for _, v := range previous {
		existing[v.ID] = v
	}

	diff := PartitionVideos(submitted)
	var warnings []string

	for _, item := range diff.ToDelete {
		if _, ok := existing[*item.ID]; !ok {
			warnings = append(warnings, fmt.Sprintf("video %s no longer exists, delete skipped", item.ID))
			continue
		}
		if err := r.Videos.Delete(ctx, *item.ID); err != nil {
			return warnings, err
		}
	}

	for _, item := range diff.ToAdd {
		v := &models.PropertyVideo{
			ID:         uuid.New(),
			PropertyID: propertyID,
			URL:        item.URL,
			Platform:   dtos.DetectVideoPlatform(item.URL),
		}
		if err := r.Videos.Create(ctx, v); err != nil {
			return warnings, err
		}
	}

	for _, item := range diff.ToUpdate {
		if _, ok := existing[*item.ID]; !ok {
			warnings = append(warnings, fmt.Sprintf("video %s no longer exists, update skipped", item.ID))
			continue
		}
		v := &models.PropertyVideo{
			ID:         *item.ID,
			PropertyID: propertyID,
			URL:        item.URL,
			Platform:   dtos.DetectVideoPlatform(item.URL),
		}
		if err := r.Videos.Update(ctx, v); err != nil {
			return warnings, err
		}
	}

	return warnings, nil
}
