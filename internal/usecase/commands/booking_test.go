//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"
	sharedmock "shareit/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	now            = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	errDBDown      = errors.New("db down")
	repoNotFound   = infra.RepositoryError{Kind: infra.KindNotFound}
	ownerID        = int64(1)
	bookerID       = int64(2)
	strangerID     = int64(3)
	itemID         = int64(10)
	bookingID      = int64(100)
	availableItem  = &shared.ItemSnapshot{ID: itemID, OwnerID: ownerID, Name: "Drill", Available: true}
	bookerSnapshot = &shared.UserSnapshot{ID: bookerID, Name: "Booker"}
)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	reads    *sharedmock.MockCommandReads
	bookings *sharedmock.MockBookingRepository
	uc       commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.bookings = sharedmock.NewMockBookingRepository(s.ctrl)

	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Bookings().Return(s.bookings).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.uc = commands.NewBookingUseCase(s.uow, clock.NewFixedClock(now), logger)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) expectTx() {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		})
}

func (s *BookingCommandsTestSuite) TestCreate_Success() {
	ctx := context.Background()
	req := commands.CreateBookingRequest{ItemID: itemID, Start: at(time.Hour), End: at(2 * time.Hour)}

	s.expectTx()
	s.reads.EXPECT().ItemByID(gomock.Any(), itemID).Return(availableItem, nil)
	s.reads.EXPECT().UserByID(gomock.Any(), bookerID).Return(bookerSnapshot, nil)
	s.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.DBTX, b *booking.Booking) (int64, error) {
			s.Equal(booking.StatusWaiting, b.Status())
			s.Equal(bookerID, b.BookerID())
			return bookingID, nil
		})

	got, err := s.uc.Create(ctx, req, bookerID)
	s.Require().NoError(err)

	want := &queries.BookingView{
		ID:      bookingID,
		Start:   *req.Start,
		End:     *req.End,
		Status:  booking.StatusWaiting,
		Item:    queries.ItemRef{ID: itemID, Name: "Drill"},
		Booker:  queries.UserRef{ID: bookerID, Name: "Booker"},
		OwnerID: ownerID,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		s.T().Errorf("booking view mismatch (-want +got):\n%s", diff)
	}
}

func (s *BookingCommandsTestSuite) TestCreate_TimestampErrorsSkipStorage() {
	testCases := []struct {
		name  string
		start *time.Time
		end   *time.Time
		errIs error
	}{
		{name: "missing end", start: at(time.Hour), end: nil, errIs: booking.ErrTimestampsRequired},
		{name: "equal", start: at(time.Hour), end: at(time.Hour), errIs: booking.ErrStartEqualsEnd},
		{name: "reversed", start: at(2 * time.Hour), end: at(time.Hour), errIs: booking.ErrEndBeforeStart},
		{name: "start in past", start: at(-time.Hour), end: at(time.Hour), errIs: booking.ErrStartInPast},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := commands.CreateBookingRequest{ItemID: itemID, Start: tc.start, End: tc.end}
			_, err := s.uc.Create(context.Background(), req, bookerID)
			s.ErrorIs(err, tc.errIs)
			s.True(errs.Is(err, errs.ErrBookingValidation))
		})
	}
}

func (s *BookingCommandsTestSuite) TestCreate_Rejections() {
	testCases := []struct {
		name    string
		setup   func()
		userID  int64
		errKind error
		errIs   error
	}{
		{
			name: "unknown item",
			setup: func() {
				s.reads.EXPECT().ItemByID(gomock.Any(), itemID).Return(nil, repoNotFound)
			},
			userID:  bookerID,
			errKind: errs.ErrNotFound,
		},
		{
			name: "unknown user",
			setup: func() {
				s.reads.EXPECT().ItemByID(gomock.Any(), itemID).Return(availableItem, nil)
				s.reads.EXPECT().UserByID(gomock.Any(), strangerID).Return(nil, repoNotFound)
			},
			userID:  strangerID,
			errKind: errs.ErrNotFound,
		},
		{
			name: "owner books own item",
			setup: func() {
				s.reads.EXPECT().ItemByID(gomock.Any(), itemID).Return(availableItem, nil)
				s.reads.EXPECT().UserByID(gomock.Any(), ownerID).Return(&shared.UserSnapshot{ID: ownerID, Name: "Owner"}, nil)
			},
			userID:  ownerID,
			errKind: errs.ErrNotFound,
			errIs:   booking.ErrOwnItem,
		},
		{
			name: "owner books own unavailable item still reports own item",
			setup: func() {
				item := *availableItem
				item.Available = false
				s.reads.EXPECT().ItemByID(gomock.Any(), itemID).Return(&item, nil)
				s.reads.EXPECT().UserByID(gomock.Any(), ownerID).Return(&shared.UserSnapshot{ID: ownerID, Name: "Owner"}, nil)
			},
			userID:  ownerID,
			errKind: errs.ErrNotFound,
			errIs:   booking.ErrOwnItem,
		},
		{
			name: "unavailable item",
			setup: func() {
				item := *availableItem
				item.Available = false
				s.reads.EXPECT().ItemByID(gomock.Any(), itemID).Return(&item, nil)
				s.reads.EXPECT().UserByID(gomock.Any(), bookerID).Return(bookerSnapshot, nil)
			},
			userID:  bookerID,
			errKind: errs.ErrBookingValidation,
			errIs:   booking.ErrItemUnavailable,
		},
		{
			name: "storage failure passes through",
			setup: func() {
				s.reads.EXPECT().ItemByID(gomock.Any(), itemID).Return(nil, errDBDown)
			},
			userID: bookerID,
			errIs:  errDBDown,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectTx()
			tc.setup()

			req := commands.CreateBookingRequest{ItemID: itemID, Start: at(time.Hour), End: at(2 * time.Hour)}
			got, err := s.uc.Create(context.Background(), req, tc.userID)
			s.Nil(got)
			s.Require().Error(err)
			if tc.errKind != nil {
				s.True(errs.Is(err, tc.errKind), "expected kind %v, got %v", tc.errKind, err)
			}
			if tc.errIs != nil {
				s.ErrorIs(err, tc.errIs)
			}
		})
	}
}

func waitingSnapshot(status booking.Status) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:         bookingID,
		ItemID:     itemID,
		ItemName:   "Drill",
		OwnerID:    ownerID,
		BookerID:   bookerID,
		BookerName: "Booker",
		Start:      *at(time.Hour),
		End:        *at(2 * time.Hour),
		Status:     status,
	}
}

func (s *BookingCommandsTestSuite) TestDecide_Transitions() {
	testCases := []struct {
		name     string
		current  booking.Status
		approved bool
		want     booking.Status
	}{
		{name: "approve waiting", current: booking.StatusWaiting, approved: true, want: booking.StatusApproved},
		{name: "reject waiting", current: booking.StatusWaiting, approved: false, want: booking.StatusRejected},
		{name: "approve rejected", current: booking.StatusRejected, approved: true, want: booking.StatusApproved},
		{name: "reject rejected again", current: booking.StatusRejected, approved: false, want: booking.StatusRejected},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectTx()
			s.reads.EXPECT().BookingForUpdate(gomock.Any(), bookingID).Return(waitingSnapshot(tc.current), nil)
			s.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), bookingID, tc.want).Return(nil)

			got, err := s.uc.Decide(context.Background(), bookingID, tc.approved, ownerID)
			s.Require().NoError(err)
			s.Equal(tc.want, got.Status)
			s.Equal("Booker", got.Booker.Name)
			s.Equal("Drill", got.Item.Name)
		})
	}
}

func (s *BookingCommandsTestSuite) TestDecide_Rejections() {
	testCases := []struct {
		name    string
		setup   func()
		actor   int64
		errKind error
		errIs   error
	}{
		{
			name: "unknown booking",
			setup: func() {
				s.reads.EXPECT().BookingForUpdate(gomock.Any(), bookingID).Return(nil, repoNotFound)
			},
			actor:   ownerID,
			errKind: errs.ErrNotFound,
		},
		{
			name: "booker cannot decide",
			setup: func() {
				s.reads.EXPECT().BookingForUpdate(gomock.Any(), bookingID).Return(waitingSnapshot(booking.StatusWaiting), nil)
			},
			actor:   bookerID,
			errKind: errs.ErrNotFound,
		},
		{
			name: "approved is terminal",
			setup: func() {
				s.reads.EXPECT().BookingForUpdate(gomock.Any(), bookingID).Return(waitingSnapshot(booking.StatusApproved), nil)
			},
			actor:   ownerID,
			errKind: errs.ErrBookingValidation,
			errIs:   booking.ErrAlreadyApproved,
		},
		{
			name: "update failure passes through",
			setup: func() {
				s.reads.EXPECT().BookingForUpdate(gomock.Any(), bookingID).Return(waitingSnapshot(booking.StatusWaiting), nil)
				s.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), bookingID, booking.StatusApproved).Return(errDBDown)
			},
			actor: ownerID,
			errIs: errDBDown,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectTx()
			tc.setup()

			got, err := s.uc.Decide(context.Background(), bookingID, true, tc.actor)
			s.Nil(got)
			s.Require().Error(err)
			if tc.errKind != nil {
				s.True(errs.Is(err, tc.errKind), "expected kind %v, got %v", tc.errKind, err)
			}
			if tc.errIs != nil {
				s.ErrorIs(err, tc.errIs)
			}
		})
	}
}

func TestCreate_UnitOfWorkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	uow := sharedmock.NewMockUnitOfWork(ctrl)
	uow.EXPECT().Within(gomock.Any(), gomock.Any()).Return(errDBDown)

	uc := commands.NewBookingUseCase(uow, clock.NewFixedClock(now), slog.New(slog.NewTextHandler(io.Discard, nil)))
	got, err := uc.Create(context.Background(), commands.CreateBookingRequest{ItemID: itemID, Start: at(time.Hour), End: at(2 * time.Hour)}, bookerID)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, errDBDown)
}
