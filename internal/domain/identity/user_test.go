package identity

import (
	"os"
	"testing"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func validRegistration() Registration {
	return Registration{
		Name:     "John Doe",
		Email:    "John@Example.com ",
		Password: "secret123",
		Phone:    "91234567",
		Address:  "1 Computing Drive",
		Answer:   "football",
	}
}

func TestNewUser(t *testing.T) {
	t.Run("creates customer with hashed secrets", func(t *testing.T) {
		user, err := NewUser(validRegistration())

		require.NoError(t, err)
		assert.Equal(t, "John Doe", user.Name)
		assert.Equal(t, "john@example.com", user.Email)
		assert.Equal(t, RoleCustomer, user.Role)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.NotEqual(t, "football", user.AnswerHash)
		assert.True(t, user.CheckPassword("secret123"))
		assert.True(t, user.CheckAnswer(" football "))

		events := user.PendingEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*UserRegisteredEvent)
		assert.True(t, ok)
	})

	t.Run("reports the first missing field", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Registration)
			want   string
		}{
			{"name", func(r *Registration) { r.Name = "" }, "Name is Required"},
			{"email", func(r *Registration) { r.Email = " " }, "Email is Required"},
			{"password", func(r *Registration) { r.Password = "" }, "Password is Required"},
			{"phone", func(r *Registration) { r.Phone = "" }, "Phone no is Required"},
			{"address", func(r *Registration) { r.Address = "" }, "Address is Required"},
			{"answer", func(r *Registration) { r.Answer = "" }, "Answer is Required"},
			{"name before answer", func(r *Registration) { r.Name = ""; r.Answer = "" }, "Name is Required"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r := validRegistration()
				tt.mutate(&r)

				_, err := NewUser(r)

				require.Error(t, err)
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
				assert.Equal(t, tt.want, err.Error())
			})
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		for _, email := range []string{"not-an-email", "a@b", "Jane <jane@example.com>"} {
			r := validRegistration()
			r.Email = email

			_, err := NewUser(r)

			require.Error(t, err, email)
			assert.Equal(t, "Invalid Email", err.Error())
		}
	})
}

func TestUser_CheckPassword(t *testing.T) {
	user, err := NewUser(validRegistration())
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("secret124"))
	assert.False(t, user.CheckPassword(""))
}

func TestUser_ResetPassword(t *testing.T) {
	user, err := NewUser(validRegistration())
	require.NoError(t, err)
	user.ClearEvents()

	require.NoError(t, user.ResetPassword("brand-new"))

	assert.True(t, user.CheckPassword("brand-new"))
	assert.False(t, user.CheckPassword("secret123"))
	require.Len(t, user.PendingEvents(), 1)

	err = user.ResetPassword("")
	assert.EqualError(t, err, "New Password is required")
}

func TestUser_UpdateProfile(t *testing.T) {
	t.Run("keeps existing values for empty fields", func(t *testing.T) {
		user, err := NewUser(validRegistration())
		require.NoError(t, err)
		before := user.PasswordHash

		require.NoError(t, user.UpdateProfile(ProfileUpdate{}))

		assert.Equal(t, "John Doe", user.Name)
		assert.Equal(t, "91234567", user.Phone)
		assert.Equal(t, "1 Computing Drive", user.Address)
		assert.Equal(t, before, user.PasswordHash)
	})

	t.Run("applies provided fields", func(t *testing.T) {
		user, err := NewUser(validRegistration())
		require.NoError(t, err)

		require.NoError(t, user.UpdateProfile(ProfileUpdate{
			Name:     "Jane Doe",
			Password: "longer-secret",
			Phone:    "98765432",
			Address:  "2 Science Drive",
		}))

		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, "98765432", user.Phone)
		assert.Equal(t, "2 Science Drive", user.Address)
		assert.True(t, user.CheckPassword("longer-secret"))
		assert.Equal(t, "john@example.com", user.Email)
	})

	t.Run("rejects short password", func(t *testing.T) {
		user, err := NewUser(validRegistration())
		require.NoError(t, err)

		err = user.UpdateProfile(ProfileUpdate{Name: "Jane", Password: "12345"})

		assert.EqualError(t, err, "Passsword is required and 6 character long")
		assert.Equal(t, "John Doe", user.Name)
	})
}

func TestUser_SetRole(t *testing.T) {
	user, err := NewUser(validRegistration())
	require.NoError(t, err)
	user.ClearEvents()

	require.NoError(t, user.SetRole(RoleAdmin))
	assert.True(t, user.IsAdmin())
	assert.Len(t, user.PendingEvents(), 1)

	require.NoError(t, user.SetRole(RoleAdmin))
	assert.Len(t, user.PendingEvents(), 1)

	assert.Error(t, user.SetRole(Role(7)))
}
