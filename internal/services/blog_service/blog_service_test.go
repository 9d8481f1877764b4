package services

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/repository"
	"ceylon_travel/internal/services/dispatch"
	"ceylon_travel/internal/services/mocks"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/storage/filestorage"
	"ceylon_travel/internal/storage/selector"
)

var remoteConfig = selector.Input{
	RemoteURL:    "postgres://app@db.example.com/travel",
	ServiceKey:   "0123456789abcdef",
	MinKeyLength: 16,
}

func newFileService(t *testing.T) *BlogService {
	t.Helper()

	files := filestorage.New(t.TempDir()).Collection(filestorage.FileBlogPosts, filestorage.NumericIDs)
	svc := NewBlogService(slog.Default(), dispatch.New(slog.Default(), selector.Input{}), nil, files)
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestBlogService_IDGuardBeforeIO(t *testing.T) {
	for _, id := range []models.ID{"0", "", " ", "0.0"} {
		t.Run("id "+string(id), func(t *testing.T) {
			remote := new(mocks.RemoteTable)
			svc := NewBlogService(slog.Default(), dispatch.New(slog.Default(), remoteConfig), remote, nil)

			_, err := svc.Delete(context.Background(), id)
			assert.ErrorIs(t, err, storage.ErrValidation)

			_, _, err = svc.Update(context.Background(), models.BlogPost{ID: id, Title: "x"})
			assert.ErrorIs(t, err, storage.ErrValidation)

			_, _, err = svc.Get(context.Background(), id)
			assert.ErrorIs(t, err, storage.ErrValidation)

			remote.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			remote.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			remote.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		})
	}
}

func TestBlogService_CreateRejectsZeroID(t *testing.T) {
	svc := newFileService(t)

	_, _, err := svc.Create(context.Background(), models.BlogPost{ID: "0", Title: "Stale"})
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestBlogService_CreateFillsDefaults(t *testing.T) {
	svc := newFileService(t)
	content := strings.Repeat("word ", 401)

	post, out, err := svc.Create(context.Background(), models.BlogPost{
		Title:   gofakeit.Sentence(4),
		Author:  gofakeit.Name(),
		Content: content,
	})
	require.NoError(t, err)

	assert.Equal(t, selector.File, out.Backend)
	assert.Equal(t, models.ID("1"), post.ID)
	assert.Equal(t, "3 min read", post.ReadTime)
	assert.Equal(t, models.PostDraft, post.Status)
	assert.Equal(t, "2026-05-04", post.Date)
}

func TestBlogService_KeepsSuppliedReadTime(t *testing.T) {
	svc := newFileService(t)

	post, _, err := svc.Create(context.Background(), models.BlogPost{Title: "Tea", ReadTime: "12 min read", Status: models.PostPublished})
	require.NoError(t, err)

	assert.Equal(t, "12 min read", post.ReadTime)
	assert.Equal(t, models.PostPublished, post.Status)
}

func TestBlogService_NumericIDsSkipGaps(t *testing.T) {
	ctx := context.Background()
	svc := newFileService(t)

	for i := 0; i < 3; i++ {
		_, _, err := svc.Create(ctx, models.BlogPost{Title: gofakeit.Sentence(3)})
		require.NoError(t, err)
	}
	_, err := svc.Delete(ctx, "2")
	require.NoError(t, err)

	post, _, err := svc.Create(ctx, models.BlogPost{Title: "After the gap"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("4"), post.ID)
}

func TestBlogService_UpdateAndFilter(t *testing.T) {
	ctx := context.Background()
	svc := newFileService(t)

	created, _, err := svc.Create(ctx, models.BlogPost{Title: "Sigiriya at dawn", Category: "Culture"})
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, models.BlogPost{Title: "Surfing Arugam Bay", Category: "Beaches", Status: models.PostPublished})
	require.NoError(t, err)

	created.Status = models.PostPublished
	updated, _, err := svc.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, models.PostPublished, updated.Status)

	published, _, err := svc.List(ctx, BlogFilter{Status: models.PostPublished})
	require.NoError(t, err)
	assert.Len(t, published, 2)

	culture, _, err := svc.List(ctx, BlogFilter{Category: "culture"})
	require.NoError(t, err)
	require.Len(t, culture, 1)
	assert.Equal(t, "Sigiriya at dawn", culture[0].Title)

	_, _, err = svc.Update(ctx, models.BlogPost{ID: "42", Title: "nope"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBlogService_RemoteOpaqueID(t *testing.T) {
	ctx := context.Background()
	remote := new(mocks.RemoteTable)
	svc := NewBlogService(slog.Default(), dispatch.New(slog.Default(), remoteConfig), remote, nil)

	remote.On("Insert", mock.Anything, mock.MatchedBy(func(row map[string]any) bool {
		_, hasID := row["id"]
		return !hasID && row["read_time"] == "1 min read"
	}), mock.Anything).Return(repository.WriteResult{Row: map[string]any{
		"id":    "9b2f6c1e-0d4a-4f51-a1de-5f0f2b1c7d10",
		"title": "Ella rock",
		"slug":  "ella-rock",
	}}, nil).Once()

	post, out, err := svc.Create(ctx, models.BlogPost{Title: "Ella rock"})
	require.NoError(t, err)

	assert.Equal(t, selector.Remote, out.Backend)
	assert.Equal(t, models.ID("9b2f6c1e-0d4a-4f51-a1de-5f0f2b1c7d10"), post.ID)
	remote.AssertExpectations(t)
}

func TestBlogService_RemoteFiltersIgnoreCase(t *testing.T) {
	ctx := context.Background()
	remote := new(mocks.RemoteTable)
	svc := NewBlogService(slog.Default(), dispatch.New(slog.Default(), remoteConfig), remote, nil)

	remote.On("List", mock.Anything, repository.Filter{}).Return([]map[string]any{
		{"id": 1, "title": "Tea country", "status": "Published", "category": "Travel Tips"},
		{"id": 2, "title": "Old draft", "status": "Draft", "category": "travel tips"},
		{"id": 3, "title": "Surf", "status": "published", "category": "travel tips"},
	}, nil).Once()

	posts, _, err := svc.List(ctx, BlogFilter{Status: "Published", Category: "TRAVEL TIPS"})
	require.NoError(t, err)

	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"Tea country", "Surf"}, titles)
	remote.AssertExpectations(t)
}

func TestBlogService_Validation(t *testing.T) {
	svc := newFileService(t)

	_, _, err := svc.Create(context.Background(), models.BlogPost{Title: ""})
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, _, err = svc.Create(context.Background(), models.BlogPost{Title: "x", Status: "draft"})
	assert.ErrorIs(t, err, storage.ErrValidation)
}
