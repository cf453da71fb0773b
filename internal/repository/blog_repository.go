package repository

import (
	"context"
	"fmt"

	"sweetcrumb/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

const blogTable = "blog_posts"

var blogColumns = []string{
	"id", "title", "slug", "excerpt", "content",
	"cover_image_url", "cover_image_public_id", "author", "published_at",
	"read_time", "tags", "category", "views", "is_published", "is_active",
	"display_order", "seo_title", "seo_description", "created_at", "updated_at",
}

var blogUpdatable = map[string]bool{
	"title":                 true,
	"slug":                  true,
	"excerpt":               true,
	"content":               true,
	"cover_image_url":       true,
	"cover_image_public_id": true,
	"author":                true,
	"published_at":          true,
	"read_time":             true,
	"tags":                  true,
	"category":              true,
	"is_published":          true,
	"is_active":             true,
	"display_order":         true,
	"seo_title":             true,
	"seo_description":       true,
}

type BlogRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewBlogRepository(db *pgxpool.Pool) *BlogRepo {
	return &BlogRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (b *BlogRepo) SaveBlogPost(ctx context.Context, post models.BlogPost) (uuid.UUID, error) {
	const op = "repository.blog_repository.SaveBlogPost"

	builder := b.sb.Insert(blogTable).
		Columns(
			"title",
			"slug",
			"excerpt",
			"content",
			"cover_image_url",
			"cover_image_public_id",
			"author",
			"published_at",
			"read_time",
			"tags",
			"category",
			"is_published",
			"is_active",
			"display_order",
			"seo_title",
			"seo_description",
		).
		Values(
			post.Title,
			post.Slug,
			post.Excerpt,
			post.Content,
			post.CoverImageURL,
			post.CoverImagePublicID,
			post.Author,
			post.PublishedAt,
			post.ReadTime,
			nonNil(post.Tags),
			post.Category,
			post.IsPublished,
			post.IsActive,
			post.Order,
			post.SEOTitle,
			post.SEODescription,
		)

	return insertReturningID(ctx, b.db, op, builder)
}

func (b *BlogRepo) UpdateBlogPostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.blog_repository.UpdateBlogPostFields"

	return updateFields(ctx, b.db, b.sb, op, blogTable, postID, blogUpdatable, updates)
}

// DeleteBlogPost removes the row permanently.
func (b *BlogRepo) DeleteBlogPost(ctx context.Context, postID uuid.UUID) error {
	const op = "repository.blog_repository.DeleteBlogPost"

	return deleteByID(ctx, b.db, b.sb, op, blogTable, postID)
}

func (b *BlogRepo) GetBlogPostByID(ctx context.Context, postID uuid.UUID) (*models.BlogPost, error) {
	const op = "repository.blog_repository.GetBlogPostByID"

	return b.getOne(ctx, op, sq.Eq{"id": postID})
}

func (b *BlogRepo) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	const op = "repository.blog_repository.GetBlogPostBySlug"

	return b.getOne(ctx, op, sq.Eq{"slug": slug})
}

func (b *BlogRepo) getOne(ctx context.Context, op string, where sq.Sqlizer) (*models.BlogPost, error) {
	query, args, err := b.sb.Select(blogColumns...).
		From(blogTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post, err := scanBlogPost(b.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapErr(op, err)
	}

	return &post, nil
}

// SlugExists reports whether another post already uses slug.
func (b *BlogRepo) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	const op = "repository.blog_repository.SlugExists"

	builder := b.sb.Select("1").From(blogTable).Where(sq.Eq{"slug": slug})
	if excludeID != uuid.Nil {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}

	query, args, err := builder.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var exists bool
	if err := b.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (b *BlogRepo) GetBlogPosts(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, int, error) {
	const op = "repository.blog_repository.GetBlogPosts"

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 10
	}

	where := sq.And{}
	if filter.PublicOnly {
		where = append(where, sq.Eq{"is_published": true, "is_active": true})
	}
	if filter.Category != "" {
		where = append(where, sq.Eq{"category": filter.Category})
	}
	if filter.Tag != "" {
		where = append(where, sq.Expr("tags @> ?", pq.Array([]string{filter.Tag})))
	}

	total, err := b.count(ctx, where)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := b.sb.Select(blogColumns...).
		From(blogTable).
		Where(where).
		OrderBy("display_order ASC", "published_at DESC").
		Limit(uint64(filter.PerPage)).
		Offset(uint64((filter.Page - 1) * filter.PerPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := b.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	posts := make([]models.BlogPost, 0)
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, total, nil
}

func (b *BlogRepo) count(ctx context.Context, where sq.Sqlizer) (int, error) {
	query, args, err := b.sb.Select("COUNT(*)").From(blogTable).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	if err := b.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error execute query: %w (SQL: %s)", err, query)
	}

	return count, nil
}

func (b *BlogRepo) IncrementViews(ctx context.Context, postID uuid.UUID) error {
	const op = "repository.blog_repository.IncrementViews"

	query, args, err := b.sb.Update(blogTable).
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := b.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// PublicSlugs lists slug and last update of every visible post, for the
// sitemap.
func (b *BlogRepo) PublicSlugs(ctx context.Context) ([]models.BlogPost, error) {
	const op = "repository.blog_repository.PublicSlugs"

	query, args, err := b.sb.Select("slug", "updated_at").
		From(blogTable).
		Where(sq.Eq{"is_published": true, "is_active": true}).
		OrderBy("published_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := b.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		var post models.BlogPost
		if err := rows.Scan(&post.Slug, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func scanBlogPost(row pgx.Row) (models.BlogPost, error) {
	var post models.BlogPost

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.CoverImageURL,
		&post.CoverImagePublicID,
		&post.Author,
		&post.PublishedAt,
		&post.ReadTime,
		&post.Tags,
		&post.Category,
		&post.Views,
		&post.IsPublished,
		&post.IsActive,
		&post.Order,
		&post.SEOTitle,
		&post.SEODescription,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	return post, err
}
