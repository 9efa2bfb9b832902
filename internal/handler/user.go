package handler

import (
	"net/http"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/internal/dto"
	"github.com/Payphone-Digital/admin-panel/internal/service"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{userService: service}
}

func (h *UserHandler) Me(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Me")

	user, err := h.userService.Me(ctx, session(c))
	if err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List returns one cursor page of users
func (h *UserHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "List")

	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	logger.InfoWithContext(ctx, "List users request").
		Int("page_size", query.PageSize).
		String("cursor", query.Cursor).
		String("direction", query.Direction).
		Log()

	page, err := h.userService.List(ctx, session(c), query)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(page.Items, page.NextCursor, page.PrevCursor))
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Create")

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	user, err := h.userService.Create(ctx, session(c), &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("target_user_id", user.ID).
		Log()

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetByID")

	user, err := h.userService.GetByID(ctx, session(c), c.Param("id"))
	if err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Update")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	user, err := h.userService.Update(ctx, session(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Delete")

	if err := h.userService.Delete(ctx, session(c), c.Param("id")); err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
