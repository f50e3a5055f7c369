//go:build unit

package vehicle_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfleet/internal/domain/vehicle"
	"rentfleet/tests/common/builder"
)

func TestNewVehicle(t *testing.T) {
	t.Run("valid vehicle", func(t *testing.T) {
		v, err := builder.NewVehicleBuilder().
			WithName("  City Scooter  ").
			WithCategory(vehicle.CategoryScooter).
			WithTotalUnits(5).
			WithDailyRate(1500).
			BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, v.ID())
		assert.Equal(t, "City Scooter", v.Name())
		assert.Equal(t, vehicle.CategoryScooter, v.Category())
		assert.Equal(t, 5, v.TotalUnits())
		assert.True(t, v.IsActive())
	})

	cases := []struct {
		name   string
		mutate func(*builder.VehicleBuilder)
		errIs  error
	}{
		{
			name:   "empty name",
			mutate: func(b *builder.VehicleBuilder) { b.WithName("   ") },
			errIs:  vehicle.ErrEmptyVehicleName,
		},
		{
			name:   "name too long",
			mutate: func(b *builder.VehicleBuilder) { b.WithName(strings.Repeat("x", 256)) },
			errIs:  vehicle.ErrVehicleNameTooLong,
		},
		{
			name:   "unknown category",
			mutate: func(b *builder.VehicleBuilder) { b.WithCategory("boat") },
			errIs:  vehicle.ErrInvalidCategory,
		},
		{
			name:   "negative units",
			mutate: func(b *builder.VehicleBuilder) { b.WithTotalUnits(-1) },
			errIs:  vehicle.ErrNegativeUnits,
		},
		{
			name:   "negative daily rate",
			mutate: func(b *builder.VehicleBuilder) { b.WithDailyRate(-100) },
			errIs:  vehicle.ErrNegativeDailyRate,
		},
		{
			name:   "discount above 100",
			mutate: func(b *builder.VehicleBuilder) { b.WithWeeklyDiscount(101) },
			errIs:  vehicle.ErrInvalidDiscountPct,
		},
		{
			name:   "negative discount",
			mutate: func(b *builder.VehicleBuilder) { b.WithMonthlyDiscount(-5) },
			errIs:  vehicle.ErrInvalidDiscountPct,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewVehicleBuilder()
			tc.mutate(b)
			_, err := b.BuildDomain()
			assert.ErrorIs(t, err, tc.errIs)
		})
	}

	t.Run("zero units is allowed but rents nothing", func(t *testing.T) {
		v, err := builder.NewVehicleBuilder().WithTotalUnits(0).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, 0, v.TotalUnits())
	})
}

func TestVehicleUpdate(t *testing.T) {
	t.Run("valid update replaces fields", func(t *testing.T) {
		v, err := builder.NewVehicleBuilder().BuildDomain()
		require.NoError(t, err)
		id := v.ID()

		err = v.Update("Cargo Van", vehicle.CategoryCar, 3, 9000, nil, 5, 15, false)
		require.NoError(t, err)

		assert.Equal(t, id, v.ID())
		assert.Equal(t, "Cargo Van", v.Name())
		assert.Equal(t, 3, v.TotalUnits())
		assert.False(t, v.IsActive())
	})

	t.Run("invalid update leaves the vehicle untouched", func(t *testing.T) {
		v, err := builder.NewVehicleBuilder().WithName("Compact Car").BuildDomain()
		require.NoError(t, err)

		err = v.Update("", vehicle.CategoryCar, 3, 9000, nil, 0, 0, true)
		assert.ErrorIs(t, err, vehicle.ErrEmptyVehicleName)
		assert.Equal(t, "Compact Car", v.Name())
		assert.Equal(t, 2, v.TotalUnits())
	})
}
