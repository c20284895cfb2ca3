package api

import (
	"net/http"
	"strconv"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
	page config.PageConfig
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, page config.PageConfig) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, page: page}
}

// @Summary Create booking
// @Description Request an item for a time range. The booking starts in WAITING status.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized")
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBinding(c, err, "Invalid request")
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Decide booking
// @Description Item owner approves or rejects a booking. An approved booking cannot be decided again.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingId path int true "Booking ID"
// @Param approved query bool true "Approve (true) or reject (false)"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{bookingId} [patch]
func (h *BookingHandler) Decide(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized")
		return
	}
	bookingID, err := parseID(c, "bookingId")
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid booking id")
		return
	}
	var q reqdto.DecideQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortBinding(c, err, "approved must be true or false")
		return
	}
	view, err := h.cmds.Decide(c.Request.Context(), bookingID, *q.Approved, userID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Visible to the booker and to the item owner only.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingId path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{bookingId} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized")
		return
	}
	bookingID, err := parseID(c, "bookingId")
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid booking id")
		return
	}
	view, err := h.q.GetBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Description Bookings made by the caller, newest start first.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Offset of the first element" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListByBooker(c *gin.Context) {
	h.list(c, queries.RoleBooker)
}

// @Summary List bookings of own items
// @Description Bookings of items owned by the caller, newest start first.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Offset of the first element" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/owner [get]
func (h *BookingHandler) ListByOwner(c *gin.Context) {
	h.list(c, queries.RoleItemOwner)
}

func (h *BookingHandler) list(c *gin.Context, role queries.Role) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized")
		return
	}
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortBinding(c, err, "Invalid pagination parameters")
		return
	}
	state, err := booking.ParseState(q.StateOrDefault())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	page, err := resolvePage(q.PageQuery, h.page)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	views, err := h.q.List(c.Request.Context(), role, state, userID, page)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

func resolvePage(q reqdto.PageQuery, cfg config.PageConfig) (queries.Page, error) {
	from, size, ok := q.Resolve(cfg.DefaultSize, cfg.MaxSize)
	if !ok {
		return queries.Page{}, queries.ErrInvalidPage
	}
	return queries.NewPage(from, size)
}

func parseID(c *gin.Context, param string) (int64, error) {
	return strconv.ParseInt(c.Param(param), 10, 64)
}
