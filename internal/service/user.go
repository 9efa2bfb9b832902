package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Payphone-Digital/admin-panel/internal/dto"
	apperrors "github.com/Payphone-Digital/admin-panel/internal/errors"
	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/Payphone-Digital/admin-panel/internal/repository"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/Payphone-Digital/admin-panel/pkg/pagination"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repoUser  *repository.UserRepository
	cache     *UserCache
	paginator *pagination.Paginator[model.User]
}

// NewUserService wires the user repository into the cursor paginator. cache may be nil.
func NewUserService(repo *repository.UserRepository, cache *UserCache) *UserService {
	return &UserService{
		repoUser:  repo,
		cache:     cache,
		paginator: pagination.New[model.User](repo, func(u model.User) string { return u.ID }),
	}
}

func requireSession(session *Session) error {
	if session == nil || session.UserID == "" {
		return apperrors.ErrUnauthorized
	}
	return nil
}

func requireAdmin(session *Session) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if !session.IsAdmin() {
		return apperrors.ErrUnauthorized
	}
	return nil
}

func userNotFound(id string) error {
	return apperrors.WithMessage(apperrors.ErrUserNotFound, "user not found with %s", id)
}

// load reads a user through the cache.
func (s *UserService) load(ctx context.Context, id string) (*model.User, error) {
	if u, ok := s.cache.Get(ctx, id); ok {
		return u, nil
	}

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Set(ctx, user)
	return user, nil
}

// Me returns the signed-in user's record
func (s *UserService) Me(ctx context.Context, session *Session) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Me")

	if err := requireSession(session); err != nil {
		return nil, err
	}

	user, err := s.load(ctx, session.UserID)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to load session user").
			Err(err).
			Log()
		return nil, err
	}

	res := dto.ToUserResponse(*user)
	return &res, nil
}

// List pages through all users ordered by id
func (s *UserService) List(ctx context.Context, session *Session, q dto.ListUsersQuery) (*pagination.Page[dto.UserResponse], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "List")

	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	direction, err := pagination.ParseDirection(q.Direction)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "%s", err.Error())
	}

	logger.InfoWithContext(ctx, "List users").
		Int("page_size", q.PageSize).
		String("cursor", q.Cursor).
		String("direction", string(direction)).
		Log()

	page, err := s.paginator.Paginate(ctx, pagination.Request{
		PageSize:  q.PageSize,
		Cursor:    q.Cursor,
		Direction: direction,
	})
	if err != nil {
		switch {
		case errors.Is(err, pagination.ErrInvalidPageSize), errors.Is(err, pagination.ErrInvalidDirection):
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "%s", err.Error())
		case errors.Is(err, pagination.ErrInvalidCursor):
			return nil, apperrors.WrapError(apperrors.ErrInvalidCursor, err)
		default:
			logger.ErrorWithContext(ctx, "Failed to list users").
				Err(err).
				Log()
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	logger.InfoWithContext(ctx, "Users listed successfully").
		Int("returned_count", len(page.Items)).
		Bool("has_next", page.NextCursor != nil).
		Bool("has_prev", page.PrevCursor != nil).
		Log()

	return pagination.Map(page, dto.ToUserResponse), nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Create adds a user; emails are unique case-insensitively
func (s *UserService) Create(ctx context.Context, session *Session, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Create")

	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repoUser.EmailExists(ctx, email)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if exists {
		logger.InfoWithContext(ctx, "Email already registered").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailExists
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Email:        email,
		Name:         req.Name.Ptr(),
		Password:     hashed,
		Role:         req.Role,
		TokenVersion: 1,
	}
	if err := s.repoUser.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := dto.ToUserResponse(*user)
	return &res, nil
}

func (s *UserService) GetByID(ctx context.Context, session *Session, id string) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetByID")

	if err := requireSession(session); err != nil {
		return nil, err
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	res := dto.ToUserResponse(*user)
	return &res, nil
}

// Update changes the role of an existing user, and the name when the request carries one
func (s *UserService) Update(ctx context.Context, session *Session, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Update")

	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	changes := repository.UserChanges{
		Role:    req.Role,
		Name:    req.Name.Ptr(),
		SetName: req.NameSet,
	}
	if err := s.repoUser.Update(ctx, id, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, id)

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User updated").
		String("target_user_id", id).
		String("role", req.Role).
		Log()

	res := dto.ToUserResponse(*user)
	return &res, nil
}

// Delete removes a user and their posts; admins cannot remove themselves
func (s *UserService) Delete(ctx context.Context, session *Session, id string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Delete")

	if err := requireAdmin(session); err != nil {
		return err
	}

	exists, err := s.repoUser.Exists(ctx, id)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !exists {
		return userNotFound(id)
	}

	if id == session.UserID {
		logger.WarnWithContext(ctx, "Self deletion attempt blocked").
			String("target_user_id", id).
			Log()
		return apperrors.ErrSelfDeletion
	}

	if err := s.repoUser.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return userNotFound(id)
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, id)

	logger.InfoWithContext(ctx, "User deleted").
		String("target_user_id", id).
		Log()

	return nil
}
