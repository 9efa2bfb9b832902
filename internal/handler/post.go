package handler

import (
	"net/http"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/internal/dto"
	"github.com/Payphone-Digital/admin-panel/internal/service"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(service *service.PostService) *PostHandler {
	return &PostHandler{postService: service}
}

func (h *PostHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListPosts")

	var query dto.ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	page, err := h.postService.List(ctx, session(c), query)
	if err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PostHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreatePost")

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	post, err := h.postService.Create(ctx, session(c), &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetPost")

	post, err := h.postService.GetByID(ctx, session(c), c.Param("id"))
	if err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdatePost")

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	post, err := h.postService.Update(ctx, session(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeletePost")

	if err := h.postService.Delete(ctx, session(c), c.Param("id")); err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
