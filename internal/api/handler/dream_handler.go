package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

type DreamHandler struct {
	dreams ports.DreamService
}

func NewDreamHandler(dreams ports.DreamService) *DreamHandler {
	return &DreamHandler{dreams: dreams}
}

type createDreamRequest struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Content    string   `json:"content" validate:"required"`
	Tags       []string `json:"tags"`
	Visibility string   `json:"visibility" validate:"omitempty,oneof=public private"`
}

type updateDreamRequest struct {
	Title      *string   `json:"title" validate:"omitempty,max=200"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	Visibility *string   `json:"visibility" validate:"omitempty,oneof=public private"`
}

type reactionRequest struct {
	Kind string `json:"kind" validate:"required"`
}

type reactionCountResponse struct {
	DreamID string `json:"dream_id"`
	Kind    string `json:"kind,omitempty"`
	Count   int    `json:"count"`
}

// Create handles POST /api/dreams.
//
// @Summary      Publish a dream
// @Tags         dreams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDreamRequest  true  "Dream content"
// @Success      201   {object}  domain.Dream
// @Failure      400   {object}  map[string]string
// @Router       /api/dreams [post]
func (h *DreamHandler) Create(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createDreamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dream, err := h.dreams.Create(c.Request().Context(), ident, ports.CreateDreamInput{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Visibility: req.Visibility,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dream)
}

// Get handles GET /api/dreams/:id.
//
// @Summary      Get a dream
// @Tags         dreams
// @Produce      json
// @Param        id  path      string  true  "Dream id"
// @Success      200  {object}  domain.Dream
// @Failure      404  {object}  map[string]string
// @Router       /api/dreams/{id} [get]
func (h *DreamHandler) Get(c echo.Context) error {
	dream, err := h.dreams.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dream)
}

// List handles GET /api/dreams. With ?author=<id> it lists that author's
// dreams, otherwise all public ones.
//
// @Summary      List dreams
// @Tags         dreams
// @Produce      json
// @Param        author  query     string  false  "Filter by author id"
// @Success      200     {array}   domain.Dream
// @Router       /api/dreams [get]
func (h *DreamHandler) List(c echo.Context) error {
	var (
		dreams []*domain.Dream
		err    error
	)
	if author := c.QueryParam("author"); author != "" {
		dreams, err = h.dreams.ListByAuthor(c.Request().Context(), author)
	} else {
		dreams, err = h.dreams.ListPublic(c.Request().Context())
	}
	if err != nil {
		return err
	}
	if dreams == nil {
		dreams = []*domain.Dream{}
	}
	return c.JSON(http.StatusOK, dreams)
}

// Update handles PUT /api/dreams/:id. Author or admin.
//
// @Summary      Edit a dream
// @Tags         dreams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Dream id"
// @Param        body  body      updateDreamRequest  true  "Fields to update"
// @Success      200   {object}  domain.Dream
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/dreams/{id} [put]
func (h *DreamHandler) Update(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateDreamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dream, err := h.dreams.Update(c.Request().Context(), ident, c.Param("id"), ports.UpdateDreamInput{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Visibility: req.Visibility,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dream)
}

// Delete handles DELETE /api/dreams/:id. Author or admin.
//
// @Summary      Delete a dream
// @Tags         dreams
// @Security     BearerAuth
// @Param        id  path  string  true  "Dream id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/dreams/{id} [delete]
func (h *DreamHandler) Delete(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.dreams.Delete(c.Request().Context(), ident, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// React handles PUT /api/dreams/:id/reaction, inserting or replacing the
// caller's single reaction on the dream.
//
// @Summary      React to a dream
// @Tags         dreams
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string           true  "Dream id"
// @Param        body  body  reactionRequest  true  "Reaction kind"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/dreams/{id}/reaction [put]
func (h *DreamHandler) React(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req reactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.dreams.React(c.Request().Context(), c.Param("id"), ident.UserID, req.Kind); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unreact handles DELETE /api/dreams/:id/reaction. Removing an absent
// reaction still succeeds.
//
// @Summary      Remove the caller's reaction
// @Tags         dreams
// @Security     BearerAuth
// @Param        id  path  string  true  "Dream id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/dreams/{id}/reaction [delete]
func (h *DreamHandler) Unreact(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.dreams.Unreact(c.Request().Context(), c.Param("id"), ident.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReactionCount handles GET /api/dreams/:id/reactions/count. With ?kind= it
// counts one kind (case-insensitively), otherwise all reactions.
//
// @Summary      Count reactions on a dream
// @Tags         dreams
// @Produce      json
// @Param        id    path      string  true   "Dream id"
// @Param        kind  query     string  false  "Reaction kind"
// @Success      200   {object}  reactionCountResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/dreams/{id}/reactions/count [get]
func (h *DreamHandler) ReactionCount(c echo.Context) error {
	id := c.Param("id")
	kind := c.QueryParam("kind")

	var (
		n   int
		err error
	)
	if kind != "" {
		n, err = h.dreams.CountByKind(c.Request().Context(), id, kind)
	} else {
		n, err = h.dreams.TotalCount(c.Request().Context(), id)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reactionCountResponse{DreamID: id, Kind: kind, Count: n})
}
