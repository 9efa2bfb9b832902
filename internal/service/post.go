package service

import (
	"context"
	"errors"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/internal/dto"
	apperrors "github.com/Payphone-Digital/admin-panel/internal/errors"
	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/Payphone-Digital/admin-panel/internal/repository"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"gorm.io/gorm"
)

type PostService struct {
	repoPost *repository.PostRepository
	repoUser *repository.UserRepository
}

func NewPostService(posts *repository.PostRepository, users *repository.UserRepository) *PostService {
	return &PostService{repoPost: posts, repoUser: users}
}

func postNotFound(id string) error {
	return apperrors.WithMessage(apperrors.ErrPostNotFound, "No post with id '%s'", id)
}

// requireUser confirms the session user still exists
func (s *PostService) requireUser(ctx context.Context, session *Session) error {
	if err := requireSession(session); err != nil {
		return err
	}
	exists, err := s.repoUser.Exists(ctx, session.UserID)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !exists {
		return apperrors.WithMessage(apperrors.ErrUserNotFound, "User not found")
	}
	return nil
}

// accessible loads a post the session may act on. Posts of other users are
// reported as missing unless the caller is an admin.
func (s *PostService) accessible(ctx context.Context, session *Session, id string) (*model.Post, error) {
	post, err := s.repoPost.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, postNotFound(id)
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if post.UserID != session.UserID && !session.IsAdmin() {
		logger.WarnWithContext(ctx, "Post access denied").
			String("post_id", id).
			String("owner_id", post.UserID).
			Log()
		return nil, postNotFound(id)
	}
	return post, nil
}

// List returns the session user's posts newest first. NextCursor is the last
// post on the page and the next call returns posts strictly older than it.
func (s *PostService) List(ctx context.Context, session *Session, q dto.ListPostsQuery) (*dto.PostListResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "List")

	if err := requireSession(session); err != nil {
		return nil, err
	}
	if q.Limit < constants.MinPostLimit || q.Limit > constants.MaxPostLimit {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be between %d and %d", constants.MinPostLimit, constants.MaxPostLimit)
	}

	posts, err := s.repoPost.ListByUser(ctx, session.UserID, q.Limit+1, q.Cursor)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := &dto.PostListResponse{Items: make([]dto.PostResponse, 0, len(posts))}
	if len(posts) > q.Limit {
		posts = posts[:q.Limit]
		next := posts[len(posts)-1].ID
		res.NextCursor = &next
	}
	for _, p := range posts {
		res.Items = append(res.Items, dto.ToPostResponse(p))
	}

	logger.DebugWithContext(ctx, "Posts listed").
		Int("returned_count", len(res.Items)).
		Bool("has_next", res.NextCursor != nil).
		Log()

	return res, nil
}

func (s *PostService) GetByID(ctx context.Context, session *Session, id string) (*dto.PostResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetByID")

	if err := s.requireUser(ctx, session); err != nil {
		return nil, err
	}

	post, err := s.accessible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	res := dto.ToPostResponse(*post)
	return &res, nil
}

func (s *PostService) Create(ctx context.Context, session *Session, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Create")

	if err := s.requireUser(ctx, session); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:  req.Title,
		Text:   req.Text,
		UserID: session.UserID,
	}
	if err := s.repoPost.Create(ctx, post); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := dto.ToPostResponse(*post)
	return &res, nil
}

func (s *PostService) Update(ctx context.Context, session *Session, id string, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Update")

	if err := requireSession(session); err != nil {
		return nil, err
	}

	if _, err := s.accessible(ctx, session, id); err != nil {
		return nil, err
	}

	if err := s.repoPost.Update(ctx, id, req.Title, req.Text); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, postNotFound(id)
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	post, err := s.repoPost.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := dto.ToPostResponse(*post)
	return &res, nil
}

func (s *PostService) Delete(ctx context.Context, session *Session, id string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Delete")

	if err := requireSession(session); err != nil {
		return err
	}

	if _, err := s.accessible(ctx, session, id); err != nil {
		return err
	}

	if err := s.repoPost.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return postNotFound(id)
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}
