//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"shareit/internal/handler/dto/response"
	"shareit/tests/common/authtest"
	"shareit/tests/common/builder"
	"shareit/tests/common/dbtest"
	"shareit/tests/common/httptest"
	"shareit/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/api/bookings"
	ownerBookingsURL = "/api/bookings/owner"
	bookingURL       = "/api/bookings/%d"
	decideURL        = "/api/bookings/%d?approved=%t"
	itemURL          = "/api/items/%d"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type fixture struct {
	ownerID  int64
	bookerID int64
	itemID   int64
}

func (s *BookingSuite) seed(available bool) fixture {
	t := s.T()
	owner := dbtest.CreateTestUser(t, s.DB, "owner", "owner@example.com")
	booker := dbtest.CreateTestUser(t, s.DB, "booker", "booker@example.com")
	item := dbtest.CreateTestItem(t, s.DB, owner, "Drill", available)
	return fixture{ownerID: owner, bookerID: booker, itemID: item}
}

func (s *BookingSuite) create(f fixture, userID int64, start, end time.Time) *response.BookingResponse {
	t := s.T()
	reqBody := builder.NewBookingBuilder().WithItem(f.itemID).WithPeriod(start, end).BuildCreateRequestDTO()
	w := httptest.PerformRequestAs(t, s.Router, http.MethodPost, bookingsURL, reqBody, userID)

	var res response.BookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
	return &res
}

// =============================================================================
// TestCreateBooking
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Scenario A: another user books an available item and it waits for the owner", func() {
		t := s.T()
		f := s.seed(true)
		start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)

		got := s.create(f, f.bookerID, start, start.Add(time.Hour))

		want := &response.BookingResponse{
			Start:  start,
			End:    start.Add(time.Hour),
			Status: "WAITING",
			Item:   response.RefResponse{ID: f.itemID, Name: "Drill"},
			Booker: response.RefResponse{ID: f.bookerID, Name: "booker"},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID"),
			cmpopts.EquateApproxTime(time.Second),
		}
		if diff := cmp.Diff(want, got, opts...); diff != "" {
			t.Errorf("booking mismatch (-want +got):\n%s", diff)
		}
		require.NotZero(t, got.ID)
	})

	s.Run("Scenario B: owner cannot book own item", func() {
		t := s.T()
		for _, available := range []bool{true, false} {
			require.NoError(t, dbtest.ResetDB(s.DB))
			f := s.seed(available)
			start := time.Now().Add(time.Hour)
			reqBody := builder.NewBookingBuilder().WithItem(f.itemID).WithPeriod(start, start.Add(time.Hour)).BuildCreateRequestDTO()

			w := httptest.PerformRequestAs(t, s.Router, http.MethodPost, bookingsURL, reqBody, f.ownerID)
			httptest.AssertErrorResponse(t, w, http.StatusNotFound, "cannot book own item")
		}
	})

	s.Run("Scenario C and friends: timestamp rules are checked in order", func() {
		t := s.T()
		f := s.seed(true)
		now := time.Now()

		cases := []struct {
			name    string
			start   time.Time
			end     time.Time
			wantMsg string
		}{
			{name: "start equals end", start: now.Add(time.Hour), end: now.Add(time.Hour), wantMsg: "start and end are equal"},
			{name: "end before start", start: now.Add(2 * time.Hour), end: now.Add(time.Hour), wantMsg: "end is before start"},
			{name: "start in the past", start: now.Add(-time.Hour), end: now.Add(time.Hour), wantMsg: "start must not be in the past"},
			{name: "equal wins over past", start: now.Add(-time.Hour), end: now.Add(-time.Hour), wantMsg: "start and end are equal"},
		}
		for _, tc := range cases {
			reqBody := builder.NewBookingBuilder().WithItem(f.itemID).WithPeriod(tc.start, tc.end).BuildCreateRequestDTO()
			w := httptest.PerformRequestAs(t, s.Router, http.MethodPost, bookingsURL, reqBody, f.bookerID)
			httptest.AssertErrorResponse(t, w, http.StatusBadRequest, tc.wantMsg)
		}
	})

	s.Run("rejects missing timestamps, unavailable items and unknown references", func() {
		t := s.T()
		f := s.seed(false)
		start := time.Now().Add(time.Hour)

		w := httptest.PerformRequestAs(t, s.Router, http.MethodPost, bookingsURL, map[string]any{"itemId": f.itemID}, f.bookerID)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "start and end must not be empty")

		reqBody := builder.NewBookingBuilder().WithItem(f.itemID).WithPeriod(start, start.Add(time.Hour)).BuildCreateRequestDTO()
		w = httptest.PerformRequestAs(t, s.Router, http.MethodPost, bookingsURL, reqBody, f.bookerID)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "item is not available")

		w = httptest.PerformRequestAs(t, s.Router, http.MethodPost, bookingsURL, reqBody, 9999)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")

		missing := builder.NewBookingBuilder().WithItem(9999).WithPeriod(start, start.Add(time.Hour)).BuildCreateRequestDTO()
		w = httptest.PerformRequestAs(t, s.Router, http.MethodPost, bookingsURL, missing, f.bookerID)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})

	s.Run("accepts a bearer token instead of the header", func() {
		t := s.T()
		f := s.seed(true)
		token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, f.bookerID)
		start := time.Now().Add(time.Hour)
		reqBody := builder.NewBookingBuilder().WithItem(f.itemID).WithPeriod(start, start.Add(time.Hour)).BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		var res response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		require.Equal(t, f.bookerID, res.Booker.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Unauthorized")
	})
}

// =============================================================================
// TestDecideBooking
// =============================================================================

func (s *BookingSuite) TestDecideBooking() {
	s.Run("Scenario D: owner approves once and the second decision fails", func() {
		t := s.T()
		f := s.seed(true)
		start := time.Now().Add(time.Hour)
		created := s.create(f, f.bookerID, start, start.Add(time.Hour))

		w := httptest.PerformRequestAs(t, s.Router, http.MethodPatch, fmt.Sprintf(decideURL, created.ID, true), nil, f.ownerID)
		var approved response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &approved)
		require.Equal(t, "APPROVED", approved.Status)

		for _, again := range []bool{true, false} {
			w = httptest.PerformRequestAs(t, s.Router, http.MethodPatch, fmt.Sprintf(decideURL, created.ID, again), nil, f.ownerID)
			httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "approved booking")
		}
	})

	s.Run("a rejected booking can still be approved", func() {
		t := s.T()
		f := s.seed(true)
		start := time.Now().Add(time.Hour)
		created := s.create(f, f.bookerID, start, start.Add(time.Hour))

		w := httptest.PerformRequestAs(t, s.Router, http.MethodPatch, fmt.Sprintf(decideURL, created.ID, false), nil, f.ownerID)
		var rejected response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rejected)
		require.Equal(t, "REJECTED", rejected.Status)

		w = httptest.PerformRequestAs(t, s.Router, http.MethodPatch, fmt.Sprintf(decideURL, created.ID, true), nil, f.ownerID)
		var approved response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &approved)
		require.Equal(t, "APPROVED", approved.Status)
	})

	s.Run("only the item owner can decide", func() {
		t := s.T()
		f := s.seed(true)
		start := time.Now().Add(time.Hour)
		created := s.create(f, f.bookerID, start, start.Add(time.Hour))

		w := httptest.PerformRequestAs(t, s.Router, http.MethodPatch, fmt.Sprintf(decideURL, created.ID, true), nil, f.bookerID)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")

		w = httptest.PerformRequestAs(t, s.Router, http.MethodPatch, fmt.Sprintf(decideURL, int64(9999), true), nil, f.ownerID)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestGetBooking
// =============================================================================

func (s *BookingSuite) TestGetBooking() {
	s.Run("visible to booker and owner only", func() {
		t := s.T()
		f := s.seed(true)
		stranger := dbtest.CreateTestUser(t, s.DB, "stranger", "stranger@example.com")
		start := time.Now().Add(time.Hour)
		created := s.create(f, f.bookerID, start, start.Add(time.Hour))

		for _, viewer := range []int64{f.bookerID, f.ownerID} {
			w := httptest.PerformRequestAs(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.ID), nil, viewer)
			var got response.BookingResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
			require.Equal(t, created.ID, got.ID)
		}

		w := httptest.PerformRequestAs(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.ID), nil, stranger)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestListBookings
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("states filter and results are newest first", func() {
		t := s.T()
		f := s.seed(true)
		now := time.Now().UTC()

		past := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.bookerID, now.Add(-72*time.Hour), now.Add(-48*time.Hour), "APPROVED")
		current := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.bookerID, now.Add(-time.Hour), now.Add(time.Hour), "APPROVED")
		waiting := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.bookerID, now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")
		rejected := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.bookerID, now.Add(72*time.Hour), now.Add(96*time.Hour), "REJECTED")

		cases := []struct {
			state string
			want  []int64
		}{
			{state: "ALL", want: []int64{rejected, waiting, current, past}},
			{state: "current", want: []int64{current}},
			{state: "PAST", want: []int64{past}},
			{state: "FUTURE", want: []int64{rejected, waiting}},
			{state: "WAITING", want: []int64{waiting}},
			{state: "REJECTED", want: []int64{rejected}},
		}
		for _, tc := range cases {
			for _, listing := range []struct {
				url    string
				userID int64
			}{
				{url: bookingsURL, userID: f.bookerID},
				{url: ownerBookingsURL, userID: f.ownerID},
			} {
				w := httptest.PerformRequestAs(t, s.Router, http.MethodGet, listing.url+"?state="+tc.state, nil, listing.userID)
				var got []response.BookingResponse
				httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)

				ids := make([]int64, len(got))
				for i, b := range got {
					ids[i] = b.ID
				}
				require.Equal(t, tc.want, ids, "%s %s", listing.url, tc.state)
			}
		}
	})

	s.Run("pages snap to multiples of size", func() {
		t := s.T()
		f := s.seed(true)
		now := time.Now().UTC()
		var ids []int64
		for i := range 5 {
			start := now.Add(time.Duration(i+1) * 24 * time.Hour)
			ids = append(ids, dbtest.CreateTestBooking(t, s.DB, f.itemID, f.bookerID, start, start.Add(time.Hour), "WAITING"))
		}

		w := httptest.PerformRequestAs(t, s.Router, http.MethodGet, bookingsURL+"?from=3&size=2", nil, f.bookerID)
		var got []response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Len(t, got, 2)
		// newest first, page 1 of size 2 holds the 3rd and 4th newest
		require.Equal(t, ids[2], got[0].ID)
		require.Equal(t, ids[1], got[1].ID)
	})

	s.Run("Scenario E: unknown state is rejected with the wire message", func() {
		t := s.T()
		f := s.seed(true)

		for _, url := range []string{bookingsURL, ownerBookingsURL} {
			w := httptest.PerformRequestAs(t, s.Router, http.MethodGet, url+"?state=SSS", nil, f.bookerID)
			httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Unknown state: UNSUPPORTED_STATUS")
		}
	})

	s.Run("unknown user is not found", func() {
		t := s.T()
		w := httptest.PerformRequestAs(t, s.Router, http.MethodGet, bookingsURL, nil, 9999)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestItemAvailability
// =============================================================================

func (s *BookingSuite) TestItemAvailability() {
	s.Run("Scenario F: owner sees last and next approved bookings", func() {
		t := s.T()
		f := s.seed(true)
		now := time.Now().UTC()

		last := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.bookerID, now.Add(-time.Hour), now.Add(time.Hour), "APPROVED")
		next := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.bookerID, now.Add(24*time.Hour), now.Add(48*time.Hour), "APPROVED")
		dbtest.CreateTestBooking(t, s.DB, f.itemID, f.bookerID, now.Add(12*time.Hour), now.Add(13*time.Hour), "WAITING")
		dbtest.CreateTestComment(t, s.DB, f.itemID, f.bookerID, "works great", now.Add(-30*time.Minute))

		w := httptest.PerformRequestAs(t, s.Router, http.MethodGet, fmt.Sprintf(itemURL, f.itemID), nil, f.ownerID)
		var owned response.ItemResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &owned)
		require.NotNil(t, owned.LastBooking)
		require.NotNil(t, owned.NextBooking)
		require.Equal(t, last, owned.LastBooking.ID)
		require.Equal(t, next, owned.NextBooking.ID)
		require.Len(t, owned.Comments, 1)
		require.Equal(t, "booker", owned.Comments[0].AuthorName)

		w = httptest.PerformRequestAs(t, s.Router, http.MethodGet, fmt.Sprintf(itemURL, f.itemID), nil, f.bookerID)
		var viewed response.ItemResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &viewed)
		require.Nil(t, viewed.LastBooking)
		require.Nil(t, viewed.NextBooking)
		require.Len(t, viewed.Comments, 1)
	})

	s.Run("own items are listed by id with availability", func() {
		t := s.T()
		f := s.seed(true)
		second := dbtest.CreateTestItem(t, s.DB, f.ownerID, "Ladder", false)
		now := time.Now().UTC()
		next := dbtest.CreateTestBooking(t, s.DB, second, f.bookerID, now.Add(time.Hour), now.Add(2*time.Hour), "APPROVED")

		w := httptest.PerformRequestAs(t, s.Router, http.MethodGet, "/api/items", nil, f.ownerID)
		var items []response.ItemResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &items)
		require.Len(t, items, 2)
		require.Equal(t, f.itemID, items[0].ID)
		require.Nil(t, items[0].NextBooking)
		require.Equal(t, second, items[1].ID)
		require.NotNil(t, items[1].NextBooking)
		require.Equal(t, next, items[1].NextBooking.ID)

		w = httptest.PerformRequestAs(t, s.Router, http.MethodGet, fmt.Sprintf(itemURL, int64(9999)), nil, f.ownerID)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestUserDirectoryCache
// =============================================================================

func (s *BookingSuite) TestUserDirectoryCache() {
	s.Run("listing caches known users and never unknown ones", func() {
		t := s.T()
		ctx := context.Background()
		f := s.seed(true)
		known := fmt.Sprintf("shareit:user:exists:%d", f.bookerID)
		unknown := fmt.Sprintf("shareit:user:exists:%d", int64(9999))

		w := httptest.PerformRequestAs(t, s.Router, http.MethodGet, bookingsURL, nil, f.bookerID)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)
		n, err := s.Redis.Exists(ctx, known).Result()
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		ttl, err := s.Redis.TTL(ctx, known).Result()
		require.NoError(t, err)
		require.Positive(t, ttl)

		w = httptest.PerformRequestAs(t, s.Router, http.MethodGet, bookingsURL, nil, 9999)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
		n, err = s.Redis.Exists(ctx, unknown).Result()
		require.NoError(t, err)
		require.Zero(t, n)
	})
}
