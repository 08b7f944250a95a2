package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

type FollowHandler struct {
	follows ports.FollowService
}

func NewFollowHandler(follows ports.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

type followRequest struct {
	FollowedID string `json:"followed_id" validate:"required"`
}

type isFollowingResponse struct {
	IsFollowing bool `json:"is_following"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// Follow handles POST /api/follows. The caller is always the follower.
//
// @Summary      Follow a user
// @Tags         follows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      followRequest  true  "User to follow"
// @Success      201   {object}  domain.FollowEdge
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/follows [post]
func (h *FollowHandler) Follow(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req followRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	edge, err := h.follows.Follow(c.Request().Context(), ident.UserID, req.FollowedID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, edge)
}

// Unfollow handles DELETE /api/follows/:followedId.
//
// @Summary      Unfollow a user
// @Tags         follows
// @Security     BearerAuth
// @Param        followedId  path  string  true  "User to unfollow"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/follows/{followedId} [delete]
func (h *FollowHandler) Unfollow(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.follows.Unfollow(c.Request().Context(), ident.UserID, c.Param("followedId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Following handles GET /api/follows/following/:userId.
//
// @Summary      List who a user follows
// @Tags         follows
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {array}   domain.FollowEdge
// @Failure      404     {object}  map[string]string
// @Router       /api/follows/following/{userId} [get]
func (h *FollowHandler) Following(c echo.Context) error {
	edges, err := h.follows.ListFollowing(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	if edges == nil {
		edges = []*domain.FollowEdge{}
	}
	return c.JSON(http.StatusOK, edges)
}

// Followers handles GET /api/follows/followers/:userId.
//
// @Summary      List a user's followers
// @Tags         follows
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {array}   domain.FollowEdge
// @Failure      404     {object}  map[string]string
// @Router       /api/follows/followers/{userId} [get]
func (h *FollowHandler) Followers(c echo.Context) error {
	edges, err := h.follows.ListFollowers(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	if edges == nil {
		edges = []*domain.FollowEdge{}
	}
	return c.JSON(http.StatusOK, edges)
}

// IsFollowing handles GET /api/follows/is-following/:followerId/:followedId.
//
// @Summary      Check whether one user follows another
// @Tags         follows
// @Produce      json
// @Param        followerId  path      string  true  "Potential follower"
// @Param        followedId  path      string  true  "Potentially followed user"
// @Success      200         {object}  isFollowingResponse
// @Router       /api/follows/is-following/{followerId}/{followedId} [get]
func (h *FollowHandler) IsFollowing(c echo.Context) error {
	following, err := h.follows.IsFollowing(c.Request().Context(), c.Param("followerId"), c.Param("followedId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, isFollowingResponse{IsFollowing: following})
}

// FollowerCount handles GET /api/follows/followers/count/:userId.
//
// @Summary      Count a user's followers
// @Tags         follows
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  countResponse
// @Router       /api/follows/followers/count/{userId} [get]
func (h *FollowHandler) FollowerCount(c echo.Context) error {
	n, err := h.follows.FollowerCount(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}

// FollowingCount handles GET /api/follows/following/count/:userId.
//
// @Summary      Count how many users a user follows
// @Tags         follows
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  countResponse
// @Router       /api/follows/following/count/{userId} [get]
func (h *FollowHandler) FollowingCount(c echo.Context) error {
	n, err := h.follows.FollowingCount(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}
