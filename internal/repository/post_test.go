package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/Payphone-Digital/admin-panel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_ListByUserNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", "pw", model.RoleUser)
	other := testutil.CreateUser(t, db, "other@example.com", "pw", model.RoleUser)

	p1 := testutil.CreatePost(t, db, owner.ID, "one")
	p2 := testutil.CreatePost(t, db, owner.ID, "two")
	p3 := testutil.CreatePost(t, db, owner.ID, "three")
	testutil.CreatePost(t, db, other.ID, "foreign")
	ctx := context.Background()

	posts, err := repo.ListByUser(ctx, owner.ID, 10, "")
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{p3.ID, p2.ID, p1.ID}, []string{posts[0].ID, posts[1].ID, posts[2].ID})

	older, err := repo.ListByUser(ctx, owner.ID, 10, p3.ID)
	require.NoError(t, err)
	require.Len(t, older, 2)
	assert.Equal(t, p2.ID, older[0].ID)
}

func TestPostRepository_CRUD(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", "pw", model.RoleUser)
	ctx := context.Background()

	post := &model.Post{Title: "draft", Text: "body", UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, post))
	require.NotEmpty(t, post.ID)

	require.NoError(t, repo.Update(ctx, post.ID, "final", "new body"))
	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "new body", got.Text)

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.GetByID(ctx, post.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.True(t, errors.Is(repo.Update(ctx, post.ID, "x", "y"), gorm.ErrRecordNotFound))
}
