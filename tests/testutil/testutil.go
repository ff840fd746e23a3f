// Package testutil holds helpers shared by the storefront's HTTP and
// integration tests.
package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/backend/internal/domain/identity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// FastPasswords lowers the bcrypt cost for the duration of the test
func FastPasswords(t *testing.T) {
	t.Helper()
	previous := identity.PasswordCost
	identity.PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { identity.PasswordCost = previous })
}

// NewTestUUID returns a UUID that is stable for seed
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
}

// ObservedLogger returns a logger whose entries can be inspected
func ObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

// NewUser builds a registered customer with password "secret123" and answer "blue"
func NewUser(t *testing.T, name, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(identity.Registration{
		Name:     name,
		Email:    email,
		Password: "secret123",
		Phone:    "555-0100",
		Address:  "1 Main St",
		Answer:   "blue",
	})
	require.NoError(t, err)
	user.ClearEvents()
	return user
}
