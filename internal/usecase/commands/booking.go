package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/pricing"
	"rentfleet/internal/domain/user"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/infra/payment"
	"rentfleet/internal/pkg/clock"
	"rentfleet/internal/pkg/errs"
	"rentfleet/internal/usecase/queries"
)

var (
	ErrVehicleNotFound         = errs.New("vehicle not found")
	ErrVehicleUnavailable      = errs.New("no units available for the requested dates")
	ErrInvalidBookingPeriod    = errs.New("invalid booking period")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingAccess           = errs.New("booking belongs to another user")
	ErrBookingNotCancellable   = errs.New("booking can no longer be cancelled")
	ErrDuplicateBooking        = errs.New("duplicate booking request")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrPaymentFailed           = errs.New("payment failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const idempotencyKeyTTL = 24 * time.Hour

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

// Pool is the connection surface commands work against: plain queries plus
// the ability to open a transaction. *pgxpool.Pool satisfies it.
type Pool interface {
	db.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
	FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
}

type VehicleLockRepository interface {
	LockUnits(ctx context.Context, tx db.DBTX, id uuid.UUID) (int, error)
}

type BookingSpanRepository interface {
	ActiveSpansForVehicleTx(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID) ([]booking.Span, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseBodyHash string, resultBookingID uuid.UUID) error
}

type IdempotencyReadStore interface {
	Get(ctx context.Context, key, userID uuid.UUID) (*queries.IdempotencyKeyView, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookingRepo      BookingRepository
	vehicleRepo      VehicleLockRepository
	spanRepo         BookingSpanRepository
	idempotencyRepo  IdempotencyRepository
	idempotencyReads IdempotencyReadStore
	notificationRepo NotificationRepository
	vehicleReads     queries.VehicleReadStore
	bookingQueries   queries.BookingQueries
	calculator       *pricing.Calculator
	gateway          payment.Gateway
	pool             Pool
	clock            clock.Clock
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	vehicleRepo VehicleLockRepository,
	spanRepo BookingSpanRepository,
	idempotencyRepo IdempotencyRepository,
	idempotencyReads IdempotencyReadStore,
	notificationRepo NotificationRepository,
	vehicleReads queries.VehicleReadStore,
	bookingQueries queries.BookingQueries,
	calculator *pricing.Calculator,
	gateway payment.Gateway,
	pool Pool,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:      bookingRepo,
		vehicleRepo:      vehicleRepo,
		spanRepo:         spanRepo,
		idempotencyRepo:  idempotencyRepo,
		idempotencyReads: idempotencyReads,
		notificationRepo: notificationRepo,
		vehicleReads:     vehicleReads,
		bookingQueries:   bookingQueries,
		calculator:       calculator,
		gateway:          gateway,
		pool:             pool,
		clock:            clock,
	}
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := c.clock.Now().Add(idempotencyKeyTTL)

	replayed, err := c.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	view, err := c.createNewBooking(ctx, req, userID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: view, IsReplayed: false}, nil
}

func (c *bookingCommandsImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	claimed, err := c.idempotencyRepo.TryInsert(ctx, c.pool, idempotencyKey, userID, "POST /bookings", requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if claimed {
		return nil, nil
	}

	existing, err := c.idempotencyReads.Get(ctx, idempotencyKey, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Key expired between the failed claim and the read; the
			// concurrent holder owns it now.
			return nil, ErrIdempotencyInProgress
		}
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID != nil {
			return c.bookingQueries.GetByIDSystem(ctx, *existing.ResultBookingID)
		}
		return nil, errs.New("completed request missing result booking ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		// Same payload, claim held by another request still in flight.
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *bookingCommandsImpl) createNewBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID, idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	period, err := req.ToDateRange()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingPeriod)
	}

	vehicleView, err := c.vehicleReads.FindByID(ctx, req.VehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrVehicleNotFound)
	}
	if !vehicleView.IsActive {
		return nil, ErrVehicleNotFound
	}

	vehicleEntity := queries.VehicleFromView(vehicleView)
	quote := c.calculator.Calculate(vehicleEntity, period)

	bookingEntity, err := booking.NewBooking(req.VehicleID, userID, period, booking.NewMoney(quote.FinalCents))
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingPeriod)
	}

	return c.executeBookingTransaction(ctx, bookingEntity, idempotencyKey, userID)
}

// executeBookingTransaction re-checks availability under the vehicle row lock
// before inserting, so two concurrent requests for the last unit cannot both
// succeed.
func (c *bookingCommandsImpl) executeBookingTransaction(
	ctx context.Context,
	bookingEntity *booking.Booking,
	idempotencyKey, userID uuid.UUID,
) (*queries.BookingView, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	totalUnits, err := c.vehicleRepo.LockUnits(ctx, tx, bookingEntity.VehicleID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	spans, err := c.spanRepo.ActiveSpansForVehicleTx(ctx, tx, bookingEntity.VehicleID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if booking.AvailableUnits(totalUnits, bookingEntity.Period(), spans) < 1 {
		return nil, ErrVehicleUnavailable
	}

	paymentRef, err := c.gateway.Capture(ctx, bookingEntity.ID(), bookingEntity.Price().Cents())
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentFailed)
	}

	// Every failure past this point must hand the captured amount back.
	if err := c.persistConfirmedBooking(ctx, tx, bookingEntity, paymentRef, idempotencyKey, userID); err != nil {
		c.refundCapture(ctx, paymentRef, bookingEntity.Price().Cents())
		return nil, err
	}

	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingEntity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) persistConfirmedBooking(
	ctx context.Context,
	tx pgx.Tx,
	bookingEntity *booking.Booking,
	paymentRef string,
	idempotencyKey, userID uuid.UUID,
) error {
	if err := bookingEntity.Confirm(paymentRef); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	bookingID, err := c.bookingRepo.Create(ctx, tx, bookingEntity)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrVehicleUnavailable
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if notifErr := c.queueNotification(ctx, tx, "booking_confirmed", bookingID); notifErr != nil {
		return errs.Mark(notifErr, ErrDatabaseOperationFailed)
	}

	responseHash := calculateIDHash(bookingID)
	if err := c.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, userID, responseHash, bookingID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *bookingCommandsImpl) refundCapture(ctx context.Context, paymentRef string, amountCents int64) {
	if err := c.gateway.Refund(ctx, paymentRef, amountCents); err != nil {
		slog.Error("failed to refund captured payment, manual follow-up required",
			"payment_ref", paymentRef,
			"amount_cents", amountCents,
			"error", err.Error())
	}
}

func (c *bookingCommandsImpl) CancelBooking(
	ctx context.Context,
	bookingID, actorID uuid.UUID,
	actorRole user.Role,
) (*queries.BookingView, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	bookingEntity, err := c.bookingRepo.FindForUpdate(ctx, tx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if actorRole == user.RoleCustomer && bookingEntity.UserID() != actorID {
		return nil, ErrBookingAccess
	}

	wasPaid := bookingEntity.IsPaid()
	newStatus, err := bookingEntity.Cancel(c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrBookingNotCancellable)
	}

	if err := c.bookingRepo.UpdateStatus(ctx, tx, bookingID, newStatus); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if notifErr := c.queueNotification(ctx, tx, "booking_cancelled", bookingID); notifErr != nil {
		return nil, errs.Mark(notifErr, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	// The cancellation is durable at this point; a failed refund must not
	// undo it. refundCapture logs for manual follow-up instead.
	if wasPaid && bookingEntity.PaymentRef() != nil {
		c.refundCapture(ctx, *bookingEntity.PaymentRef(), bookingEntity.Price().Cents())
	}

	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) queueNotification(ctx context.Context, tx db.DBTX, topic string, bookingID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return err
	}
	return c.notificationRepo.CreateJob(ctx, tx, "email", topic, payload, c.clock.Now())
}

func calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
