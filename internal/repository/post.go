package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/model"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// ListByUser returns up to limit posts of userID, newest first, strictly older
// than the cursor post when one is given.
func (r *PostRepository) ListByUser(ctx context.Context, userID string, limit int, cursor string) ([]model.Post, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "ListByUser")

	logger.DebugWithContext(ctx, "Listing posts").
		String("owner_id", userID).
		Int("limit", limit).
		String("cursor", cursor).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if cursor != "" {
		query = query.Where("id < ?", cursor)
	}

	posts := make([]model.Post, 0, limit)
	if err := query.Order("id DESC").Limit(limit).Find(&posts).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to list posts").
			String("owner_id", userID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Posts listed").
		Int("returned_count", len(posts)).
		Duration(time.Since(start)).
		Log()

	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByID")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var post model.Post
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&post)
	duration := time.Since(start)

	if result.Error != nil {
		logger.WarnWithContext(ctx, "Failed to get post by ID").
			String("post_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &post, nil
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Create")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(post)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create post").
			String("owner_id", post.UserID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Post created successfully").
		String("post_id", post.ID).
		String("owner_id", post.UserID).
		Duration(duration).
		Log()

	return nil
}

func (r *PostRepository) Update(ctx context.Context, id, title, text string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Update")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(map[string]any{
		"title":      title,
		"text":       text,
		"updated_at": time.Now(),
	})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update post").
			String("post_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Post updated successfully").
		String("post_id", id).
		Duration(duration).
		Log()

	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Delete")

	start := time.Now()
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete post").
			String("post_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Post deleted successfully").
		String("post_id", id).
		Duration(duration).
		Log()

	return nil
}
