// Package payment holds the gateway port and its simulated implementation.
// The real gateway integration lives outside this service; bookings only need
// capture/refund semantics and an opaque reference.
package payment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"rentfleet/internal/pkg/config"
	"rentfleet/internal/pkg/errs"
)

// ModeDecline makes every capture fail; used to exercise the payment error
// path without a real gateway.
const ModeDecline = "decline"

var ErrCaptureDeclined = errs.New("payment capture declined")

type Gateway interface {
	Capture(ctx context.Context, bookingID uuid.UUID, amountCents int64) (string, error)
	Refund(ctx context.Context, paymentRef string, amountCents int64) error
}

type Simulator struct {
	mode string
}

func NewSimulator(cfg config.PaymentConfig) *Simulator {
	return &Simulator{mode: cfg.Mode}
}

func (s *Simulator) Capture(_ context.Context, bookingID uuid.UUID, amountCents int64) (string, error) {
	if s.mode == ModeDecline {
		slog.Warn("simulated payment decline",
			"booking_id", bookingID,
			"amount_cents", amountCents)
		return "", ErrCaptureDeclined
	}

	ref := "sim_" + uuid.New().String()
	slog.Info("simulated payment capture",
		"booking_id", bookingID,
		"amount_cents", amountCents,
		"payment_ref", ref)
	return ref, nil
}

func (s *Simulator) Refund(_ context.Context, paymentRef string, amountCents int64) error {
	slog.Info("simulated payment refund",
		"payment_ref", paymentRef,
		"amount_cents", amountCents)
	return nil
}
