//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
	queriesmock "shareit/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	now          = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	errDBDown    = errors.New("db down")
	repoNotFound = infra.RepositoryError{Kind: infra.KindNotFound}
)

const (
	ownerID    int64 = 1
	bookerID   int64 = 2
	strangerID int64 = 3
	itemID     int64 = 10
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleBooking(id int64) *queries.BookingView {
	return &queries.BookingView{
		ID:      id,
		Start:   now.Add(time.Hour),
		End:     now.Add(2 * time.Hour),
		Status:  booking.StatusWaiting,
		Item:    queries.ItemRef{ID: itemID, Name: "Drill"},
		Booker:  queries.UserRef{ID: bookerID, Name: "Booker"},
		OwnerID: ownerID,
	}
}

type BookingQueriesTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	repo  *queriesmock.MockBookingReadStore
	users *queriesmock.MockUserReadStore
	q     queries.BookingQueries
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = queriesmock.NewMockBookingReadStore(s.ctrl)
	s.users = queriesmock.NewMockUserReadStore(s.ctrl)
	s.q = queries.NewBookingQueries(s.repo, s.users, clock.NewFixedClock(now), discardLogger())
}

func (s *BookingQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) TestGetBooking_Visibility() {
	testCases := []struct {
		name    string
		actor   int64
		found   bool
		wantErr bool
	}{
		{name: "booker sees booking", actor: bookerID, found: true},
		{name: "owner sees booking", actor: ownerID, found: true},
		{name: "stranger gets not found", actor: strangerID, found: true, wantErr: true},
		{name: "missing booking", actor: bookerID, found: false, wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			if tc.found {
				s.repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(sampleBooking(100), nil)
			} else {
				s.repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(nil, repoNotFound)
			}

			got, err := s.q.GetBooking(context.Background(), 100, tc.actor)
			if tc.wantErr {
				s.Nil(got)
				s.True(errs.Is(err, errs.ErrNotFound))
				return
			}
			s.Require().NoError(err)
			s.Equal(int64(100), got.ID)
		})
	}
}

func (s *BookingQueriesTestSuite) TestGetBooking_StorageError() {
	s.repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(nil, errDBDown)

	_, err := s.q.GetBooking(context.Background(), 100, bookerID)
	s.ErrorIs(err, errDBDown)
	s.False(errs.Is(err, errs.ErrNotFound))
}

func (s *BookingQueriesTestSuite) TestList_BuildsFilter() {
	testCases := []struct {
		name   string
		role   queries.Role
		state  booking.State
		from   int
		size   int
		offset int
	}{
		{name: "booker all first page", role: queries.RoleBooker, state: booking.StateAll, from: 0, size: 10, offset: 0},
		{name: "owner current", role: queries.RoleItemOwner, state: booking.StateCurrent, from: 20, size: 10, offset: 20},
		{name: "booker past snapped offset", role: queries.RoleBooker, state: booking.StatePast, from: 5, size: 2, offset: 4},
		{name: "owner rejected", role: queries.RoleItemOwner, state: booking.StateRejected, from: 0, size: 1, offset: 0},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			page, err := queries.NewPage(tc.from, tc.size)
			s.Require().NoError(err)

			want := queries.BookingFilter{
				Role:   tc.role,
				State:  tc.state,
				UserID: bookerID,
				Now:    now,
				Limit:  tc.size,
				Offset: tc.offset,
			}
			result := []*queries.BookingView{sampleBooking(1), sampleBooking(2)}

			s.users.EXPECT().Exists(gomock.Any(), bookerID).Return(true, nil)
			s.repo.EXPECT().List(gomock.Any(), want).Return(result, nil)

			got, err := s.q.List(context.Background(), tc.role, tc.state, bookerID, page)
			s.Require().NoError(err)
			if diff := cmp.Diff(result, got); diff != "" {
				s.T().Errorf("listing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func (s *BookingQueriesTestSuite) TestList_UnknownUser() {
	page, _ := queries.NewPage(0, 10)
	s.users.EXPECT().Exists(gomock.Any(), strangerID).Return(false, nil)

	got, err := s.q.List(context.Background(), queries.RoleBooker, booking.StateAll, strangerID, page)
	s.Nil(got)
	s.True(errs.Is(err, errs.ErrNotFound))
}

func (s *BookingQueriesTestSuite) TestList_ZeroPageRejected() {
	s.users.EXPECT().Exists(gomock.Any(), bookerID).Return(true, nil)

	_, err := s.q.List(context.Background(), queries.RoleBooker, booking.StateAll, bookerID, queries.Page{})
	s.True(errs.Is(err, errs.ErrInvalidInput))
}

func (s *BookingQueriesTestSuite) TestList_EmptyResult() {
	page, _ := queries.NewPage(0, 10)
	s.users.EXPECT().Exists(gomock.Any(), bookerID).Return(true, nil)
	s.repo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*queries.BookingView{}, nil)

	got, err := s.q.List(context.Background(), queries.RoleItemOwner, booking.StateFuture, bookerID, page)
	s.Require().NoError(err)
	s.Empty(got)
}
