package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/model"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/Payphone-Digital/admin-panel/pkg/pagination"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

// UserChanges lists the columns an update writes. Name is written only
// when SetName is true, so an absent name leaves the column untouched.
type UserChanges struct {
	Role    string
	Name    *string
	SetName bool
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ pagination.Source[model.User] = (*UserRepository)(nil)

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByID")

	logger.DebugWithContext(ctx, "Getting user by ID").
		String("target_user_id", id).
		Log()

	// Check if context is cancelled
	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	var user model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.WarnWithContext(ctx, "Failed to get user by ID").
			String("target_user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		String("target_user_id", id).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByEmail finds user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByEmail")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "User not retrieved by email").
			String("email", email).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully by email").
		String("email", email).
		String("target_user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// EmailExists reports whether any user already owns email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "EmailExists")

	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to check email").
			String("email", email).
			Err(err).
			Log()
		return false, err
	}
	return count > 0, nil
}

// Exists reports whether a user with id exists
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "Exists")

	if err := ctx.Err(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to check user existence").
			String("target_user_id", id).
			Err(err).
			Log()
		return false, err
	}
	return count > 0, nil
}

// FindMany returns up to q.Limit users ordered by id, strictly beyond q.After
// in the requested order.
func (r *UserRepository) FindMany(ctx context.Context, q pagination.Query) ([]model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "FindMany")

	logger.DebugWithContext(ctx, "Fetching users page").
		String("after", q.After).
		Bool("descending", q.Descending).
		Int("limit", q.Limit).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	query := r.db.WithContext(ctx).Model(&model.User{})

	if q.Descending {
		if q.After != "" {
			query = query.Where("id < ?", q.After)
		}
		query = query.Order("id DESC")
	} else {
		if q.After != "" {
			query = query.Where("id > ?", q.After)
		}
		query = query.Order("id ASC")
	}

	users := make([]model.User, 0, q.Limit)
	if err := query.Limit(q.Limit).Find(&users).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch users").
			String("after", q.After).
			Int("limit", q.Limit).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Users page fetched").
		Int("returned_count", len(users)).
		Duration(time.Since(start)).
		Log()

	return users, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Create")

	logger.DebugWithContext(ctx, "Creating new user").
		String("email", user.Email).
		String("role", user.Role).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("email", user.Email).
		String("target_user_id", user.ID).
		Duration(duration).
		Log()

	return nil
}

// Update sets the role and, when requested, the name. Email and password are never touched here.
func (r *UserRepository) Update(ctx context.Context, id string, changes UserChanges) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Update")

	start := time.Now()
	columns := map[string]any{
		"role":       changes.Role,
		"updated_at": time.Now(),
	}
	if changes.SetName {
		columns["name"] = changes.Name
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(columns)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user").
			String("target_user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to update").
			String("target_user_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User updated successfully").
		String("target_user_id", id).
		String("role", changes.Role).
		Bool("name_changed", changes.SetName).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}

// Delete removes a user; posts go with it through the cascade.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Delete")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// sqlite ignores FK cascades unless foreign_keys is on, so delete posts explicitly
		if err := tx.Where("user_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete user").
			String("target_user_id", id).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "User deleted successfully").
		String("target_user_id", id).
		Duration(duration).
		Log()

	return nil
}

// GetAuthState returns the current token version and role of a user
func (r *UserRepository) GetAuthState(ctx context.Context, id string) (int, string, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetAuthState")

	var user model.User
	err := r.db.WithContext(ctx).Select("token_version", "role").Where("id = ?", id).First(&user).Error
	if err != nil {
		logger.DebugWithContext(ctx, "Failed to get auth state").
			String("target_user_id", id).
			Err(err).
			Log()
		return 0, "", err
	}
	return user.TokenVersion, user.Role, nil
}

// IncrementTokenVersion revokes every token issued before the call
func (r *UserRepository) IncrementTokenVersion(ctx context.Context, id string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "IncrementTokenVersion")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to increment token version").
			String("target_user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Token version incremented").
		String("target_user_id", id).
		Duration(duration).
		Log()

	return nil
}
