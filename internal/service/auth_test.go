package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balanceai/wellness-backend/internal/models"
	"github.com/balanceai/wellness-backend/internal/service"
	"github.com/balanceai/wellness-backend/internal/testhelpers"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	token, err := svc.Register(context.Background(), "t@example.com", "password123", "Taylor", 17, "")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	var user models.User
	if err := db.Where("email = ?", "t@example.com").First(&user).Error; err != nil {
		t.Fatalf("user not created: %v", err)
	}
	// The stored hash must not be the plaintext password.
	assert.NotEqual(t, "password123", user.PasswordHash)

	var profile models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	assert.Equal(t, "Taylor", profile.DisplayName)
	assert.Equal(t, 17, profile.Age)
	assert.Equal(t, "beginner", profile.FitnessLevel)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "t@example.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), "dup@example.com", "password123", "First", 20, "")
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), "dup@example.com", "password456", "Second", 21, "")
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLoginRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), "login@example.com", "password123", "Lee", 30, "advanced")
	assert.NoError(t, err)

	token, err := svc.Login(context.Background(), "login@example.com", "password123")
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "login@example.com", claims.Email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), "wrong@example.com", "password123", "Sam", 25, "")
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), "wrong@example.com", "nope")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "missing@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	token, err := svc.Register(context.Background(), "sig@example.com", "password123", "Kim", 22, "")
	assert.NoError(t, err)

	other := service.NewAuthService(db, "different-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestLinkChild(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), "parent@example.com", "password123", "Parent", 45, "")
	assert.NoError(t, err)
	_, err = svc.Register(context.Background(), "child@example.com", "password123", "Child", 14, "")
	assert.NoError(t, err)

	var parent models.User
	assert.NoError(t, db.Where("email = ?", "parent@example.com").First(&parent).Error)

	assert.NoError(t, svc.LinkChild(context.Background(), parent.ID, "child@example.com"))

	var link models.ParentChildLink
	if err := db.Where("parent_id = ?", parent.ID).First(&link).Error; err != nil {
		t.Fatalf("link not created: %v", err)
	}

	// Linking the same child again violates the unique pair index.
	assert.Error(t, svc.LinkChild(context.Background(), parent.ID, "child@example.com"))

	assert.ErrorIs(t, svc.LinkChild(context.Background(), parent.ID, "ghost@example.com"), service.ErrChildNotFound)
}
