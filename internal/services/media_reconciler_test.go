package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

func TestPartitionPhotos(t *testing.T) {
	idA := uuid.New()
	idB := uuid.New()

	submitted := []dtos.MediaItemPayload{
		{ID: &idA, IsDeleted: true},
		{RemoteID: "c", Filename: "c.jpg"},
		{ID: &idB, IsCoverPhoto: true},
	}

	d := PartitionPhotos(submitted)
	require.Len(t, d.ToDelete, 1)
	require.Len(t, d.ToAdd, 1)
	require.Len(t, d.ToUpdate, 1)
	assert.Equal(t, idA, *d.ToDelete[0].ID)
	assert.Equal(t, "c", d.ToAdd[0].RemoteID)
	assert.Equal(t, idB, *d.ToUpdate[0].ID)

	// No id overlap across the three sets.
	assert.NotEqual(t, *d.ToDelete[0].ID, *d.ToUpdate[0].ID)
}

func TestPartitionPhotosDeletedWithoutIDDropped(t *testing.T) {
	d := PartitionPhotos([]dtos.MediaItemPayload{{IsDeleted: true}})
	assert.Empty(t, d.ToDelete)
	assert.Empty(t, d.ToAdd)
	assert.Empty(t, d.ToUpdate)
}

func TestReconcilePhotosDeleteAddUpdate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	st := newFakeStorage()
	m := NewMediaReconciler(st)

	propID := uuid.New()
	prevA := &models.PropertyPhoto{ID: uuid.New(), PropertyID: propID, RemoteID: "obj-a"}
	prevB := &models.PropertyPhoto{ID: uuid.New(), PropertyID: propID, RemoteID: "obj-b"}
	require.NoError(t, store.photos().Create(ctx, prevA))
	require.NoError(t, store.photos().Create(ctx, prevB))

	st.objects["obj-c"] = true

	submitted := []dtos.MediaItemPayload{
		{ID: &prevA.ID, IsDeleted: true},
		{RemoteID: "obj-c", Filename: "c.jpg"},
		{ID: &prevB.ID, IsCoverPhoto: true},
	}

	warnings, err := m.ReconcilePhotos(ctx, store.Repos(), propID, submitted)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	remaining, err := store.photos().ListByPropertyID(ctx, propID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	byRemote := map[string]*models.PropertyPhoto{}
	for _, ph := range remaining {
		byRemote[ph.RemoteID] = ph
	}
	assert.NotContains(t, byRemote, "obj-a")
	assert.Contains(t, byRemote, "obj-c")
	assert.True(t, byRemote["obj-b"].IsCover)
	assert.Contains(t, st.deletedKeys, "obj-a")
}

func TestReconcilePhotosUploadFailureSkipsWithWarning(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	st := newFakeStorage() // "obj-x" never appears in storage
	m := NewMediaReconciler(st)

	propID := uuid.New()
	warnings, err := m.ReconcilePhotos(ctx, store.Repos(), propID, []dtos.MediaItemPayload{
		{RemoteID: "obj-x", Filename: "x.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, st.existsCalls)

	remaining, err := store.photos().ListByPropertyID(ctx, propID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestReconcilePhotosStorageOutageRetriedThenSkipped(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	st := newFakeStorage()
	st.failExists = true // every HeadObject-equivalent errors out
	m := NewMediaReconciler(st)

	propID := uuid.New()
	warnings, err := m.ReconcilePhotos(ctx, store.Repos(), propID, []dtos.MediaItemPayload{
		{RemoteID: "obj-y", Filename: "y.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, st.existsCalls)

	remaining, err := store.photos().ListByPropertyID(ctx, propID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestReconcilePhotosStaleUpdateIDSkipped(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := NewMediaReconciler(newFakeStorage())

	propID := uuid.New()
	stale := uuid.New()
	warnings, err := m.ReconcilePhotos(ctx, store.Repos(), propID, []dtos.MediaItemPayload{
		{ID: &stale, IsCoverPhoto: true},
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "update skipped")
}

func TestReconcileVideos(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := NewMediaReconciler(newFakeStorage())

	propID := uuid.New()
	prev := &models.PropertyVideo{
		ID: uuid.New(), PropertyID: propID,
		URL: "https://youtu.be/old", Platform: models.VideoPlatformYouTube,
	}
	require.NoError(t, store.videos().Create(ctx, prev))

	warnings, err := m.ReconcileVideos(ctx, store.Repos(), propID, []dtos.VideoLinkPayload{
		{ID: &prev.ID, URL: "https://vimeo.com/999"},
		{URL: "https://www.youtube.com/watch?v=new"},
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	videos, err := store.videos().ListByPropertyID(ctx, propID)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	byURL := map[string]*models.PropertyVideo{}
	for _, v := range videos {
		byURL[v.URL] = v
	}
	assert.Equal(t, models.VideoPlatformVimeo, byURL["https://vimeo.com/999"].Platform)
	assert.Equal(t, models.VideoPlatformYouTube, byURL["https://www.youtube.com/watch?v=new"].Platform)
}

func TestReconcileVideosDeleteStaleIDSkipped(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := NewMediaReconciler(newFakeStorage())

	stale := uuid.New()
	warnings, err := m.ReconcileVideos(ctx, store.Repos(), uuid.New(), []dtos.VideoLinkPayload{
		{ID: &stale, IsDeleted: true},
	})
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
}
