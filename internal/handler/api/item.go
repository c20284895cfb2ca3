package api

import (
	"net/http"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	q    queries.ItemQueries
	page config.PageConfig
}

func NewItemHandler(q queries.ItemQueries, page config.PageConfig) *ItemHandler {
	return &ItemHandler{q: q, page: page}
}

// @Summary Get item
// @Description Item with comments. Last and next approved bookings are shown to the owner only.
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param itemId path int true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{itemId} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized")
		return
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid item id")
		return
	}
	view, err := h.q.GetItem(c.Request.Context(), itemID, userID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromItemView(view)
	if err != nil {
		httperr.AbortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List own items
// @Description Items owned by the caller ordered by id, each with last and next approved bookings.
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param from query int false "Offset of the first element" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items [get]
func (h *ItemHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized")
		return
	}
	var q reqdto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortBinding(c, err, "Invalid pagination parameters")
		return
	}
	page, err := resolvePage(q, h.page)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	views, err := h.q.ListOwnItems(c.Request.Context(), userID, page)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromItemViews(views)
	if err != nil {
		httperr.AbortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
