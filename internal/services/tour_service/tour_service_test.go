package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ceylon_travel/internal/cache"
	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/domain/normalizer"
	"ceylon_travel/internal/repository"
	"ceylon_travel/internal/services/dispatch"
	"ceylon_travel/internal/services/mocks"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/storage/filestorage"
	"ceylon_travel/internal/storage/selector"
)

func newFileService(t *testing.T) (*TourService, *filestorage.Collection) {
	t.Helper()

	files := filestorage.New(t.TempDir()).Collection(filestorage.FileTours, filestorage.UUIDs)
	svc := NewTourService(slog.Default(), dispatch.New(slog.Default(), selector.Input{}), nil, files, cache.NewMemory(time.Minute))
	return svc, files
}

func seed(t *testing.T, files *filestorage.Collection, tours ...models.Tour) {
	t.Helper()
	for _, tour := range tours {
		_, err := files.Insert(context.Background(), normalizer.TourRow(tour))
		require.NoError(t, err)
	}
}

func at(hour int) *time.Time {
	ts := time.Date(2026, 3, 1, hour, 0, 0, 0, time.UTC)
	return &ts
}

func TestTourService_CreateIgnoresPayloadID(t *testing.T) {
	svc, _ := newFileService(t)

	tour, out, err := svc.Create(context.Background(), models.Tour{
		ID:   "client-chosen",
		Name: "Cultural Triangle",
		Itinerary: []models.Day{
			{Day: 4, Title: "Sigiriya"},
			{Day: 4, Title: "Dambulla"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, selector.File, out.Backend)
	assert.True(t, tour.ID.Valid())
	assert.NotEqual(t, models.ID("client-chosen"), tour.ID)
	assert.Equal(t, models.TourActive, tour.Status)
	require.Len(t, tour.Itinerary, 2)
	assert.Equal(t, 1, tour.Itinerary[0].Day)
	assert.Equal(t, 2, tour.Itinerary[1].Day)
}

func TestTourService_Validation(t *testing.T) {
	tests := []struct {
		name string
		tour models.Tour
	}{
		{name: "missing name", tour: models.Tour{Name: "  "}},
		{name: "unknown status", tour: models.Tour{Name: "x", Status: "published"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := new(mocks.RemoteTable)
			in := selector.Input{RemoteURL: "postgres://app@db.example.com/travel", ServiceKey: "0123456789abcdef", MinKeyLength: 16}
			svc := NewTourService(slog.Default(), dispatch.New(slog.Default(), in), remote, nil, nil)

			_, _, err := svc.Create(context.Background(), tt.tour)
			assert.ErrorIs(t, err, storage.ErrValidation)

			_, _, err = svc.Update(context.Background(), "t1", tt.tour)
			assert.ErrorIs(t, err, storage.ErrValidation)

			remote.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
			remote.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTourService_UpdateUsesRouteID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFileService(t)

	created, _, err := svc.Create(ctx, models.Tour{Name: "Hill Country"})
	require.NoError(t, err)

	updated, _, err := svc.Update(ctx, created.ID.String(), models.Tour{ID: "somebody-else", Name: "Hill Country Escape"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Hill Country Escape", updated.Name)

	_, err = svc.files.Get(ctx, "somebody-else")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, _, err = svc.Update(ctx, "missing", models.Tour{Name: "x"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTourService_RemoteUpdateIsStrict(t *testing.T) {
	ctx := context.Background()
	remote := new(mocks.RemoteTable)
	in := selector.Input{RemoteURL: "postgres://app@db.example.com/travel", ServiceKey: "0123456789abcdef", MinKeyLength: 16}
	svc := NewTourService(slog.Default(), dispatch.New(slog.Default(), in), remote, nil, nil)

	remote.On("Update", mock.Anything, models.ID("t-1"), mock.Anything, mock.Anything).
		Return(repository.WriteResult{}, fmt.Errorf("repository.table.Update: %w", storage.ErrNotFound)).Once()

	_, out, err := svc.Update(ctx, "t-1", models.Tour{Name: "Whale Watching"})

	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, selector.Remote, out.Backend)
	remote.AssertExpectations(t)
}

func TestTourService_CreateFallsBackWhenRemoteUnavailable(t *testing.T) {
	ctx := context.Background()
	remote := new(mocks.RemoteTable)
	files := filestorage.New(t.TempDir()).Collection(filestorage.FileTours, filestorage.UUIDs)
	in := selector.Input{RemoteURL: "postgres://app@db.example.com/travel", ServiceKey: "0123456789abcdef", MinKeyLength: 16}
	svc := NewTourService(slog.Default(), dispatch.New(slog.Default(), in), remote, files, nil)

	remote.On("Insert", mock.Anything, mock.Anything, mock.Anything).
		Return(repository.WriteResult{}, errors.Join(storage.ErrBackendUnavailable, context.DeadlineExceeded)).Once()

	tour, out, err := svc.Create(ctx, models.Tour{Name: "Yala Safari"})
	require.NoError(t, err)
	assert.Equal(t, dispatch.Outcome{Backend: selector.File, Degraded: true}, out)

	rows, err := files.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, tour.ID, models.IDFromAny(rows[0]["id"]))
}

func TestTourService_ListFilters(t *testing.T) {
	ctx := context.Background()
	svc, files := newFileService(t)
	seed(t, files,
		models.Tour{Name: "a", Status: models.TourActive, Featured: true},
		models.Tour{Name: "b", Status: models.TourDraft},
		models.Tour{Name: "c", Status: models.TourActive},
	)

	yes := true
	tests := []struct {
		name   string
		filter TourFilter
		want   []string
	}{
		{name: "all", filter: TourFilter{}, want: []string{"a", "b", "c"}},
		{name: "status", filter: TourFilter{Status: "ACTIVE"}, want: []string{"a", "c"}},
		{name: "featured", filter: TourFilter{Featured: &yes}, want: []string{"a"}},
		{name: "limit", filter: TourFilter{Limit: 2}, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tours, _, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(tours))
			for _, tour := range tours {
				names = append(names, tour.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	_, _, err := svc.List(ctx, TourFilter{Status: "sold-out"})
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestTourService_RemoteStatusFilterIgnoresCase(t *testing.T) {
	ctx := context.Background()
	remote := new(mocks.RemoteTable)
	in := selector.Input{RemoteURL: "postgres://app@db.example.com/travel", ServiceKey: "0123456789abcdef", MinKeyLength: 16}
	svc := NewTourService(slog.Default(), dispatch.New(slog.Default(), in), remote, nil, nil)

	remote.On("List", mock.Anything, mock.MatchedBy(func(f repository.Filter) bool {
		_, byStatus := f.Eq["status"]
		return !byStatus
	})).Return([]map[string]any{
		{"id": "t-1", "name": "Legacy", "status": "Active"},
		{"id": "t-2", "name": "Current", "status": "active"},
		{"id": "t-3", "name": "Hidden", "status": "draft"},
	}, nil).Once()

	tours, out, err := svc.List(ctx, TourFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, selector.Remote, out.Backend)

	names := make([]string, 0, len(tours))
	for _, tour := range tours {
		names = append(names, tour.Name)
	}
	assert.Equal(t, []string{"Legacy", "Current"}, names)
	remote.AssertExpectations(t)
}

func TestTourService_Featured(t *testing.T) {
	ctx := context.Background()
	svc, files := newFileService(t)
	seed(t, files,
		models.Tour{Name: "featured", Status: models.TourActive, Featured: true},
		models.Tour{Name: "featured draft", Status: models.TourDraft, Featured: true},
		models.Tour{Name: "plain", Status: models.TourActive},
	)

	tours, _, err := svc.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "featured", tours[0].Name)

	seed(t, files, models.Tour{Name: "featured later", Status: models.TourActive, Featured: true})

	cached, out, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, tours, cached, "served from cache")
	assert.Empty(t, out.Backend)
}

func TestTourService_FeaturedFallsBackToRecentActive(t *testing.T) {
	ctx := context.Background()
	svc, files := newFileService(t)

	for i := 0; i < 8; i++ {
		seed(t, files, models.Tour{Name: fmt.Sprintf("tour %d", i), Status: models.TourActive, CreatedAt: at(i)})
	}
	seed(t, files, models.Tour{Name: "archived", Status: models.TourArchived, CreatedAt: at(20)})

	tours, _, err := svc.Featured(ctx)
	require.NoError(t, err)

	require.Len(t, tours, featuredFallbackLimit)
	assert.Equal(t, "tour 7", tours[0].Name)
	assert.Equal(t, "tour 2", tours[5].Name)
}

func TestTourService_FeaturedEmptyIsNotCached(t *testing.T) {
	ctx := context.Background()
	svc, files := newFileService(t)

	tours, _, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Empty(t, tours)

	seed(t, files, models.Tour{Name: "first", Status: models.TourActive, Featured: true})

	tours, _, err = svc.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "first", tours[0].Name)
}

func TestTourService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFileService(t)

	created, _, err := svc.Create(ctx, models.Tour{Name: "Kandy Day Trip"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, created.ID.String())
	require.NoError(t, err)

	_, _, err = svc.Get(ctx, created.ID.String())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = svc.Delete(ctx, "0")
	assert.ErrorIs(t, err, storage.ErrValidation)
}
