package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type addCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// Add handles POST /api/dreams/:id/comments.
//
// @Summary      Comment on a dream
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Dream id"
// @Param        body  body      addCommentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/dreams/{id}/comments [post]
func (h *CommentHandler) Add(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Add(c.Request().Context(), ident, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListByDream handles GET /api/dreams/:id/comments.
//
// @Summary      List a dream's comments
// @Tags         comments
// @Produce      json
// @Param        id  path      string  true  "Dream id"
// @Success      200  {array}   domain.Comment
// @Failure      404  {object}  map[string]string
// @Router       /api/dreams/{id}/comments [get]
func (h *CommentHandler) ListByDream(c echo.Context) error {
	comments, err := h.comments.ListByDream(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

// Delete handles DELETE /api/comments/:id. Author or admin.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id  path  string  true  "Comment id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.comments.Delete(c.Request().Context(), ident, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
