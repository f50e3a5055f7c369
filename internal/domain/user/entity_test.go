//go:build unit

package user_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfleet/internal/domain/user"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}, user.Email{}),
	cmpopts.EquateEmpty(),
}

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("customer@example.com")
	require.NoError(t, err)

	actual := user.NewUser(email, "hashed_password", user.RoleCustomer)
	require.NotNil(t, actual)

	expected := user.NewUser(email, "hashed_password", user.RoleCustomer)
	if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
		t.Errorf("User mismatch (-want +got):\n%s", diff)
	}

	assert.NotEqual(t, uuid.Nil, actual.ID())
	assert.True(t, actual.IsActive())
	assert.Nil(t, actual.LastLogin())
}

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name  string
		email string
		errIs error
	}{
		{name: "valid email", email: "valid@example.com"},
		{name: "trims whitespace", email: "  valid@example.com  "},
		{name: "empty", email: "", errIs: user.ErrInvalidEmail},
		{name: "missing at sign", email: "invalidemail.com", errIs: user.ErrInvalidEmail},
		{name: "missing domain", email: "invalid@", errIs: user.ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := user.NewEmail(tc.email)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"customer", "staff", "admin"} {
		role, err := user.NewRole(valid)
		require.NoError(t, err)
		assert.True(t, role.IsValid())
	}

	_, err := user.NewRole("root")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestNewCredentials(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		creds, err := user.NewCredentials("customer@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "customer@example.com", creds.Email().Value())
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := user.NewCredentials("customer@example.com", "short")
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})
}
