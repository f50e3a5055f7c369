//go:build unit

package queries_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/pricing"
	"rentfleet/internal/infra"
	"rentfleet/internal/usecase/queries"
)

type stubVehicleReadStore struct {
	view *queries.VehicleView
	err  error
}

func (s *stubVehicleReadStore) FindByID(_ context.Context, _ uuid.UUID) (*queries.VehicleView, error) {
	return s.view, s.err
}

func (s *stubVehicleReadStore) ListActive(_ context.Context) ([]*queries.VehicleView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*queries.VehicleView{s.view}, nil
}

type stubSpanReadStore struct {
	spans []booking.Span
	calls int
}

func (s *stubSpanReadStore) ActiveSpansForVehicle(_ context.Context, _ uuid.UUID) ([]booking.Span, error) {
	s.calls++
	return s.spans, nil
}

func mustRange(t *testing.T, pickup, ret string) booking.DateRange {
	t.Helper()
	r, err := booking.ParseDateRange(pickup, ret)
	require.NoError(t, err)
	return r
}

func testVehicleView(totalUnits int32) *queries.VehicleView {
	return &queries.VehicleView{
		ID:             uuid.New(),
		Name:           "Compact Car",
		Category:       "car",
		TotalUnits:     totalUnits,
		DailyRateCents: 5000,
		IsActive:       true,
	}
}

func TestGetQuote(t *testing.T) {
	calc := pricing.NewCalculator()

	t.Run("combines availability with the price breakdown", func(t *testing.T) {
		view := testVehicleView(2)
		spans := &stubSpanReadStore{}
		q := queries.NewVehicleQueries(&stubVehicleReadStore{view: view}, spans, calc)

		quote, err := q.GetQuote(context.Background(), view.ID, mustRange(t, "2024-06-03", "2024-06-06"))
		require.NoError(t, err)

		assert.Equal(t, 2, quote.AvailableUnits)
		assert.Equal(t, 3, quote.RentalDays)
		assert.Equal(t, int64(15000), quote.BaseCents)
		assert.Equal(t, int64(15000), quote.FinalCents)
	})

	t.Run("overlapping bookings reduce availability", func(t *testing.T) {
		view := testVehicleView(2)
		spans := &stubSpanReadStore{spans: []booking.Span{
			{Range: mustRange(t, "2024-06-04", "2024-06-08"), Status: booking.StatusConfirmed},
		}}
		q := queries.NewVehicleQueries(&stubVehicleReadStore{view: view}, spans, calc)

		quote, err := q.GetQuote(context.Background(), view.ID, mustRange(t, "2024-06-03", "2024-06-06"))
		require.NoError(t, err)
		assert.Equal(t, 1, quote.AvailableUnits)
	})

	t.Run("zero units short-circuits without loading spans", func(t *testing.T) {
		view := testVehicleView(0)
		spans := &stubSpanReadStore{}
		q := queries.NewVehicleQueries(&stubVehicleReadStore{view: view}, spans, calc)

		quote, err := q.GetQuote(context.Background(), view.ID, mustRange(t, "2024-06-03", "2024-06-06"))
		require.NoError(t, err)
		assert.Equal(t, 0, quote.AvailableUnits)
		assert.Equal(t, 0, spans.calls)
	})

	t.Run("still prices when nothing is available", func(t *testing.T) {
		view := testVehicleView(0)
		q := queries.NewVehicleQueries(&stubVehicleReadStore{view: view}, &stubSpanReadStore{}, calc)

		quote, err := q.GetQuote(context.Background(), view.ID, mustRange(t, "2024-06-03", "2024-06-06"))
		require.NoError(t, err)
		assert.Equal(t, int64(15000), quote.FinalCents)
	})

	t.Run("unknown vehicle maps the repository error", func(t *testing.T) {
		notFound := infra.WrapRepoErr("no rows", assert.AnError, infra.KindNotFound)
		q := queries.NewVehicleQueries(&stubVehicleReadStore{err: notFound}, &stubSpanReadStore{}, calc)

		_, err := q.GetQuote(context.Background(), uuid.New(), mustRange(t, "2024-06-03", "2024-06-06"))
		assert.ErrorIs(t, err, queries.ErrVehicleNotFound)
	})
}
