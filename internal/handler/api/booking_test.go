//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"rentfleet/internal/domain/user"
	"rentfleet/internal/handler/api"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"
	"rentfleet/tests/common/httptest"
)

type stubBookingCommands struct {
	createFn func(ctx context.Context, req reqdto.CreateBookingRequest, userID, idempotencyKey uuid.UUID) (*commands.CreateBookingResult, error)
	cancelFn func(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) (*queries.BookingView, error)
}

func (s *stubBookingCommands) CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID, idempotencyKey uuid.UUID) (*commands.CreateBookingResult, error) {
	return s.createFn(ctx, req, userID, idempotencyKey)
}

func (s *stubBookingCommands) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) (*queries.BookingView, error) {
	return s.cancelFn(ctx, bookingID, actorID, actorRole)
}

type stubBookingQueries struct {
	getByIDFn    func(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*queries.BookingView, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error)
}

func (s *stubBookingQueries) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*queries.BookingView, error) {
	return s.getByIDFn(ctx, actorID, actorRole, id)
}

func (s *stubBookingQueries) GetByIDSystem(_ context.Context, _ uuid.UUID) (*queries.BookingView, error) {
	panic("not used by handlers")
}

func (s *stubBookingQueries) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.listByUserFn(ctx, userID)
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubBookingCommands
	queries  *stubBookingQueries
	userID   uuid.UUID
	userRole user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubBookingCommands{}
	s.queries = &stubBookingQueries{}
	s.userID = uuid.New()
	s.userRole = user.RoleCustomer

	handler := api.NewBookingHandler(s.commands, s.queries)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.userRole)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, handler.ListBookings)
	s.router.GET("/bookings/:id", authMiddleware, handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", authMiddleware, handler.CancelBooking)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) bookingView() *queries.BookingView {
	return &queries.BookingView{
		ID:          uuid.New(),
		VehicleID:   uuid.New(),
		VehicleName: "Compact Car",
		UserID:      s.userID,
		UserEmail:   "customer@example.com",
		PickupDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:  time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		Status:      "confirmed",
		PriceCents:  20000,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func (s *BookingHandlerTestSuite) createBody() map[string]any {
	return map[string]any{
		"vehicle_id":  uuid.New().String(),
		"pickup_date": "2024-06-01",
		"return_date": "2024-06-05",
	}
}

func (s *BookingHandlerTestSuite) idempotencyHeader() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.New().String()}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("returns 201 on success", func() {
		view := s.bookingView()
		s.commands.createFn = func(_ context.Context, _ reqdto.CreateBookingRequest, userID, _ uuid.UUID) (*commands.CreateBookingResult, error) {
			s.Equal(s.userID, userID)
			return &commands.CreateBookingResult{Booking: view}, nil
		}

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/bookings", s.createBody(), "token", s.idempotencyHeader())
		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), view.ID.String())
	})

	s.Run("returns 200 on idempotent replay", func() {
		s.commands.createFn = func(_ context.Context, _ reqdto.CreateBookingRequest, _, _ uuid.UUID) (*commands.CreateBookingResult, error) {
			return &commands.CreateBookingResult{Booking: s.bookingView(), IsReplayed: true}, nil
		}

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/bookings", s.createBody(), "token", s.idempotencyHeader())
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("requires idempotency key", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.createBody(), "token")
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "Idempotency-Key")
	})

	s.Run("rejects malformed idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/bookings", s.createBody(), "token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("requires authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.createBody(), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("missing body fields return 400", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/bookings",
			map[string]any{"vehicle_id": uuid.New().String()}, "token", s.idempotencyHeader())
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"unknown vehicle", commands.ErrVehicleNotFound, http.StatusNotFound},
		{"invalid period", commands.ErrInvalidBookingPeriod, http.StatusBadRequest},
		{"sold out", commands.ErrVehicleUnavailable, http.StatusConflict},
		{"duplicate request", commands.ErrDuplicateBooking, http.StatusConflict},
		{"in progress", commands.ErrIdempotencyInProgress, http.StatusConflict},
		{"payment failure", commands.ErrPaymentFailed, http.StatusUnprocessableEntity},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.commands.createFn = func(_ context.Context, _ reqdto.CreateBookingRequest, _, _ uuid.UUID) (*commands.CreateBookingResult, error) {
				return nil, tc.err
			}

			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/bookings", s.createBody(), "token", s.idempotencyHeader())
			s.Equal(tc.expectCode, rec.Code)
		})
	}
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("returns the user's bookings", func() {
		s.queries.listByUserFn = func(_ context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
			s.Equal(s.userID, userID)
			return []*queries.BookingListItem{
				{ID: uuid.New(), VehicleName: "Compact Car", Status: "confirmed", PriceCents: 20000},
			}, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Compact Car")
	})

	s.Run("requires authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("returns booking by ID", func() {
		view := s.bookingView()
		s.queries.getByIDFn = func(_ context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*queries.BookingView, error) {
			s.Equal(s.userID, actorID)
			s.Equal(view.ID, id)
			return view, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("invalid UUID returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("foreign booking returns 403", func() {
		s.queries.getByIDFn = func(_ context.Context, _ uuid.UUID, _ user.Role, _ uuid.UUID) (*queries.BookingView, error) {
			return nil, queries.ErrBookingAccess
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+uuid.New().String(), nil, "token")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("unknown booking returns 404", func() {
		s.queries.getByIDFn = func(_ context.Context, _ uuid.UUID, _ user.Role, _ uuid.UUID) (*queries.BookingView, error) {
			return nil, queries.ErrBookingNotFound
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+uuid.New().String(), nil, "token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	s.Run("returns 200 with the updated booking", func() {
		view := s.bookingView()
		view.Status = "refunded"
		s.commands.cancelFn = func(_ context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) (*queries.BookingView, error) {
			s.Equal(s.userID, actorID)
			s.Equal(user.RoleCustomer, actorRole)
			return view, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+view.ID.String()+"/cancel", nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "refunded")
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"unknown booking", commands.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", commands.ErrBookingAccess, http.StatusForbidden},
		{"already finished", commands.ErrBookingNotCancellable, http.StatusConflict},
		{"refund failure", commands.ErrPaymentFailed, http.StatusUnprocessableEntity},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.commands.cancelFn = func(_ context.Context, _, _ uuid.UUID, _ user.Role) (*queries.BookingView, error) {
				return nil, tc.err
			}

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+uuid.New().String()+"/cancel", nil, "token")
			s.Equal(tc.expectCode, rec.Code)
		})
	}
}
