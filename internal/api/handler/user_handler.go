package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=32"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Country   *string `json:"country"`
	City      *string `json:"city"`
}

type listUsersResponse struct {
	Users []*domain.User `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// List handles GET /api/users, an admin-only paged listing.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listUsersResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := h.users.List(c.Request().Context(), ident, ports.ListUsersFilter{Page: page, Limit: limit})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse{Users: users, Total: total, Page: page, Limit: limit})
}

// Me handles GET /api/users/me and returns the caller's own account.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(c.Request().Context(), ident.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetByUsername handles GET /api/users/:username.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      404       {object}  map[string]string
// @Router       /api/users/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.users.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/users/:id. Self or admin.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Update(c.Request().Context(), ident, c.Param("id"), ports.UpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Country:   req.Country,
		City:      req.City,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id. Self or admin.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), ident, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type activateResponse struct {
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

// Activate handles PUT /api/users/activate/:username, toggling the account's
// activation flag. Admin only.
//
// @Summary      Toggle a user's activation flag
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  activateResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/activate/{username} [put]
func (h *UserHandler) Activate(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	username := c.Param("username")
	active, err := h.users.Activate(c.Request().Context(), ident, username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activateResponse{Username: username, IsActive: active})
}
