package repository_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/repository"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/storage/postgresql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testCtx = context.Background()
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf(
		"postgres://test:test@%s:%s/testdb?sslmode=disable",
		host, port.Port(),
	)

	pool, err := postgresql.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, postgresql.Migrate(ctx, pool))

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return pool
}

func TestRepositories(t *testing.T) {
	pool := setupTestDB(t)

	t.Run("migrations are idempotent", func(t *testing.T) {
		require.NoError(t, postgresql.Migrate(testCtx, pool))
	})

	t.Run("category", func(t *testing.T) { testCategoryRepo(t, repository.NewCategoryRepository(pool)) })
	t.Run("blog", func(t *testing.T) { testBlogRepo(t, repository.NewBlogRepository(pool)) })
	t.Run("menu", func(t *testing.T) { testMenuRepo(t, repository.NewMenuRepository(pool)) })
	t.Run("rate list", func(t *testing.T) { testRateListRepo(t, repository.NewRateListRepository(pool)) })
	t.Run("reel", func(t *testing.T) { testReelRepo(t, repository.NewReelRepository(pool)) })
	t.Run("review", func(t *testing.T) { testReviewRepo(t, repository.NewReviewRepository(pool)) })
	t.Run("event", func(t *testing.T) { testEventRepo(t, repository.NewEventRepository(pool)) })
	t.Run("gallery", func(t *testing.T) { testGalleryRepo(t, repository.NewGalleryRepository(pool)) })
}

func testCategoryRepo(t *testing.T, repo *repository.CategoryRepo) {
	id, err := repo.CreateCategory(testCtx, models.Category{Name: "Cakes", IsActive: true})
	require.NoError(t, err)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := repo.CreateCategory(testCtx, models.Category{Name: "Cakes", IsActive: true})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("inactive hidden from public list", func(t *testing.T) {
		_, err := repo.CreateCategory(testCtx, models.Category{Name: "Secret", IsActive: false})
		require.NoError(t, err)

		public, err := repo.GetCategories(testCtx, true)
		require.NoError(t, err)
		for _, c := range public {
			assert.True(t, c.IsActive)
		}

		all, err := repo.GetCategories(testCtx, false)
		require.NoError(t, err)
		assert.Greater(t, len(all), len(public))
	})

	t.Run("update and fetch", func(t *testing.T) {
		err := repo.UpdateCategoryFields(testCtx, id, map[string]interface{}{"description": "Layered"})
		require.NoError(t, err)

		c, err := repo.GetCategoryByID(testCtx, id)
		require.NoError(t, err)
		assert.Equal(t, "Layered", c.Description)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		err := repo.UpdateCategoryFields(testCtx, id, map[string]interface{}{"id": uuid.New()})
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetCategoryByID(testCtx, uuid.New())
		assert.ErrorIs(t, err, storage.ErrNotFound)

		err = repo.DeleteCategory(testCtx, uuid.New())
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func testBlogRepo(t *testing.T, repo *repository.BlogRepo) {
	base := models.BlogPost{
		Title:       "Sourdough basics",
		Slug:        "sourdough-basics",
		Excerpt:     "Start here",
		Content:     "<p>flour water salt</p>",
		Author:      "Sweetcrumb Bakery",
		PublishedAt: time.Now().UTC(),
		ReadTime:    1,
		Tags:        []string{"bread", "basics"},
		IsPublished: true,
		IsActive:    true,
	}

	id, err := repo.SaveBlogPost(testCtx, base)
	require.NoError(t, err)

	draft := base
	draft.Slug = "draft-post"
	draft.IsPublished = false
	draft.Tags = nil
	_, err = repo.SaveBlogPost(testCtx, draft)
	require.NoError(t, err)

	t.Run("duplicate slug", func(t *testing.T) {
		_, err := repo.SaveBlogPost(testCtx, base)
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("value wider than its column", func(t *testing.T) {
		long := base
		long.Slug = "too-long-seo"
		long.SEOTitle = strings.Repeat("s", 71)
		_, err := repo.SaveBlogPost(testCtx, long)
		assert.ErrorIs(t, err, storage.ErrInvalidInput)
	})

	t.Run("slug exists", func(t *testing.T) {
		exists, err := repo.SlugExists(testCtx, "sourdough-basics", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.SlugExists(testCtx, "sourdough-basics", id)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("public listing hides drafts and counts with filter", func(t *testing.T) {
		posts, total, err := repo.GetBlogPosts(testCtx, models.BlogFilter{PublicOnly: true})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, posts, 1)
		assert.Equal(t, "sourdough-basics", posts[0].Slug)

		_, total, err = repo.GetBlogPosts(testCtx, models.BlogFilter{})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("tag filter", func(t *testing.T) {
		posts, _, err := repo.GetBlogPosts(testCtx, models.BlogFilter{Tag: "bread"})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.ElementsMatch(t, []string{"bread", "basics"}, posts[0].Tags)
	})

	t.Run("views", func(t *testing.T) {
		require.NoError(t, repo.IncrementViews(testCtx, id))
		require.NoError(t, repo.IncrementViews(testCtx, id))

		post, err := repo.GetBlogPostBySlug(testCtx, "sourdough-basics")
		require.NoError(t, err)
		assert.Equal(t, 2, post.Views)
	})

	t.Run("public slugs", func(t *testing.T) {
		posts, err := repo.PublicSlugs(testCtx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "sourdough-basics", posts[0].Slug)
	})
}

func testMenuRepo(t *testing.T, repo *repository.MenuRepo) {
	item := models.MenuItem{
		Name:          "Croissant",
		Price:         decimal.RequireFromString("4.50"),
		DiscountPrice: decimal.NewNullDecimal(decimal.RequireFromString("3.60")),
		Unit:          models.UnitPiece,
		IsActive:      true,
	}

	id, err := repo.CreateMenuItem(testCtx, item)
	require.NoError(t, err)

	got, err := repo.GetMenuItemByID(testCtx, id)
	require.NoError(t, err)
	assert.True(t, item.Price.Equal(got.Price))
	assert.True(t, got.DiscountPrice.Valid)
	assert.False(t, got.CategoryID.Valid)
	assert.Equal(t, 20, got.DiscountPercentage())

	t.Run("discount must be below price", func(t *testing.T) {
		bad := item
		bad.DiscountPrice = decimal.NewNullDecimal(decimal.RequireFromString("9"))
		_, err := repo.CreateMenuItem(testCtx, bad)
		assert.ErrorIs(t, err, storage.ErrInvalidInput)
	})

	t.Run("clear discount", func(t *testing.T) {
		err := repo.UpdateMenuItemFields(testCtx, id, map[string]interface{}{"discount_price": nil})
		require.NoError(t, err)

		got, err := repo.GetMenuItemByID(testCtx, id)
		require.NoError(t, err)
		assert.False(t, got.HasDiscount())
	})

	t.Run("filter by category", func(t *testing.T) {
		items, err := repo.GetMenuItems(testCtx, true, uuid.NullUUID{UUID: uuid.New(), Valid: true})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func testRateListRepo(t *testing.T, repo *repository.RateListRepo) {
	mk := func(category, name string, order int) uuid.UUID {
		id, err := repo.CreateEntry(testCtx, models.RateListEntry{
			Category:    category,
			ItemName:    name,
			Price:       decimal.NewFromInt(10),
			Unit:        models.UnitKg,
			IsAvailable: true,
			Order:       order,
		})
		require.NoError(t, err)
		return id
	}

	a := mk("Cakes", "Black Forest", 0)
	b := mk("Cakes", "Red Velvet", 1)
	other := mk("Breads", "Baguette", 1)

	t.Run("next order is scoped per category", func(t *testing.T) {
		next, err := repo.NextOrder(testCtx, "Cakes")
		require.NoError(t, err)
		assert.Equal(t, 2, next)

		next, err = repo.NextOrder(testCtx, "Pastry")
		require.NoError(t, err)
		assert.Equal(t, 0, next)
	})

	t.Run("find by order ignores other categories", func(t *testing.T) {
		found, ok, err := repo.FindByOrder(testCtx, "Cakes", 1, a)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, b, found.ID)

		_, ok, err = repo.FindByOrder(testCtx, "Cakes", 7, a)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("swap commits both writes", func(t *testing.T) {
		err := repo.UpdateEntry(testCtx, a, map[string]interface{}{"display_order": 1},
			&models.OrderSwap{CounterpartID: b, NewOrder: 0})
		require.NoError(t, err)

		ga, err := repo.GetEntryByID(testCtx, a)
		require.NoError(t, err)
		gb, err := repo.GetEntryByID(testCtx, b)
		require.NoError(t, err)
		go2, err := repo.GetEntryByID(testCtx, other)
		require.NoError(t, err)

		assert.Equal(t, 1, ga.Order)
		assert.Equal(t, 0, gb.Order)
		assert.Equal(t, 1, go2.Order)
	})

	t.Run("swap rolls back when acting entry is gone", func(t *testing.T) {
		err := repo.UpdateEntry(testCtx, uuid.New(), map[string]interface{}{"display_order": 5},
			&models.OrderSwap{CounterpartID: b, NewOrder: 9})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		gb, err := repo.GetEntryByID(testCtx, b)
		require.NoError(t, err)
		assert.Equal(t, 0, gb.Order)
	})

	t.Run("available filter", func(t *testing.T) {
		err := repo.UpdateEntry(testCtx, other, map[string]interface{}{"is_available": false}, nil)
		require.NoError(t, err)

		entries, err := repo.GetEntries(testCtx, true, "")
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotEqual(t, other, e.ID)
		}
	})
}

func testReelRepo(t *testing.T, repo *repository.ReelRepo) {
	next, err := repo.NextOrder(testCtx)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	mk := func(caption string, order int) uuid.UUID {
		id, err := repo.CreateReel(testCtx, models.Reel{
			VideoURL:          "https://example.com/" + caption,
			ThumbnailURL:      "https://cdn.example.com/" + caption + ".jpg",
			ThumbnailPublicID: "reels/" + caption,
			Caption:           caption,
			Order:             order,
			IsActive:          true,
		})
		require.NoError(t, err)
		return id
	}

	r0 := mk("first", 0)
	r1 := mk("second", 1)

	err = repo.UpdateReel(testCtx, r1, map[string]interface{}{"display_order": 0},
		&models.OrderSwap{CounterpartID: r0, NewOrder: 1})
	require.NoError(t, err)

	reels, err := repo.GetReels(testCtx, true)
	require.NoError(t, err)
	require.Len(t, reels, 2)
	assert.Equal(t, r1, reels[0].ID)
	assert.Equal(t, r0, reels[1].ID)

	next, err = repo.NextOrder(testCtx)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}

func testReviewRepo(t *testing.T, repo *repository.ReviewRepo) {
	id, err := repo.CreateReview(testCtx, models.Review{
		Name:   "Ana",
		Email:  "ana@example.com",
		Rating: 5,
		Review: "Lovely cake",
	})
	require.NoError(t, err)

	got, err := repo.GetReviewByID(testCtx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Avatar)
	assert.False(t, got.IsApproved)

	public, err := repo.GetReviews(testCtx, models.ReviewFilter{PublicOnly: true})
	require.NoError(t, err)
	assert.Empty(t, public)

	require.NoError(t, repo.UpdateReviewFields(testCtx, id, map[string]interface{}{
		"is_approved": true,
		"is_featured": true,
	}))

	featured, err := repo.GetReviews(testCtx, models.ReviewFilter{PublicOnly: true, FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)

	t.Run("rating outside range rejected", func(t *testing.T) {
		_, err := repo.CreateReview(testCtx, models.Review{Name: "x", Email: "x@example.com", Rating: 6, Review: "x"})
		assert.ErrorIs(t, err, storage.ErrInvalidInput)
	})
}

func testEventRepo(t *testing.T, repo *repository.EventRepo) {
	id, err := repo.CreateEvent(testCtx, models.Event{
		Title:          "Harvest fair",
		Venue:          "Town square",
		Date:           time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
		ImageURLs:      []string{"https://cdn/a.jpg", "https://cdn/b.jpg"},
		ImagePublicIDs: []string{"events/a", "events/b"},
		CoverImage:     "https://cdn/a.jpg",
		IsActive:       true,
	})
	require.NoError(t, err)

	event, err := repo.GetEventByID(testCtx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"events/a", "events/b"}, event.ImagePublicIDs)

	event.RemoveImages([]string{"events/a"})
	require.NoError(t, repo.UpdateEventFields(testCtx, id, map[string]interface{}{
		"image_urls":       event.ImageURLs,
		"image_public_ids": event.ImagePublicIDs,
		"cover_image":      event.CoverImage,
	}))

	event, err = repo.GetEventByID(testCtx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/b.jpg"}, event.ImageURLs)
	assert.Equal(t, "https://cdn/b.jpg", event.CoverImage)
}

func testGalleryRepo(t *testing.T, repo *repository.GalleryRepo) {
	id, err := repo.CreateImage(testCtx, models.GalleryImage{
		ImageURL: "https://cdn/g.jpg",
		PublicID: "gallery/g",
		Caption:  "Wedding cake",
		IsActive: false,
	})
	require.NoError(t, err)

	public, err := repo.GetImages(testCtx, true)
	require.NoError(t, err)
	assert.Empty(t, public)

	require.NoError(t, repo.DeleteImage(testCtx, id))

	_, err = repo.GetImageByID(testCtx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
