//go:build unit

package payment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfleet/internal/infra/payment"
	"rentfleet/internal/pkg/config"
)

func TestSimulatorCapture(t *testing.T) {
	t.Run("returns an opaque reference", func(t *testing.T) {
		sim := payment.NewSimulator(config.PaymentConfig{Mode: "simulate"})

		ref, err := sim.Capture(context.Background(), uuid.New(), 15000)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "sim_"))
	})

	t.Run("declines every capture in decline mode", func(t *testing.T) {
		sim := payment.NewSimulator(config.PaymentConfig{Mode: payment.ModeDecline})

		_, err := sim.Capture(context.Background(), uuid.New(), 15000)
		assert.ErrorIs(t, err, payment.ErrCaptureDeclined)
	})
}

func TestSimulatorRefund(t *testing.T) {
	sim := payment.NewSimulator(config.PaymentConfig{Mode: "simulate"})

	err := sim.Refund(context.Background(), "sim_abc", 15000)
	assert.NoError(t, err)
}
