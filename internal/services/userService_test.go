package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"spendly/internal/models"
)

// NewUserService registers a prometheus gauge, so the service is constructed
// once for the whole test run.
func TestUserServiceLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	ctx := context.Background()

	t.Run("first login creates the user", func(t *testing.T) {
		user, created, err := svc.Login(ctx, &models.LoginRequest{Name: "A", Email: "a@x.com"})
		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "A", user.Name)
		assert.False(t, user.ID.IsZero())
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("second login returns the same record", func(t *testing.T) {
		first, _ := userRepo.FindByEmail(ctx, "a@x.com")

		user, created, err := svc.Login(ctx, &models.LoginRequest{Name: "A", Email: "a@x.com"})
		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, user.ID)

		count, _ := userRepo.CountAll(ctx)
		assert.Equal(t, int64(1), count)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		var valErr *ValidationError
		_, _, err := svc.Login(ctx, &models.LoginRequest{Email: "b@x.com"})
		assert.ErrorAs(t, err, &valErr)
		assert.Equal(t, []string{"name"}, valErr.Fields)

		_, _, err = svc.Login(ctx, &models.LoginRequest{Name: "B"})
		assert.ErrorAs(t, err, &valErr)
		assert.Equal(t, []string{"email"}, valErr.Fields)

		count, _ := userRepo.CountAll(ctx)
		assert.Equal(t, int64(1), count)
	})
}
