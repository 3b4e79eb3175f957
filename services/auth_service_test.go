package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"marketplace-api/models"
	"marketplace-api/pkg/apperrors"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewAuthService(mockRepo, newTestTokenService(), zap.NewNop())

		var created *models.User
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*models.User)
				created.ID = primitive.NewObjectID()
			}).
			Return(nil).Once()

		user, token, appErr := svc.Register(ctx, &models.RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "secret123",
		})

		assert.Nil(t, appErr)
		assert.NotEmpty(t, token)
		assert.Equal(t, models.RoleCustomer, user.Role)
		assert.NotEqual(t, "secret123", user.Password)
		assert.True(t, VerifyPassword("secret123", user.Password))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewAuthService(mockRepo, newTestTokenService(), zap.NewNop())

		dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(dup).Once()

		_, _, appErr := svc.Register(ctx, &models.RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "secret123",
		})

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindConflict, appErr.Kind)
		mockRepo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	digest, err := HashPassword("correct-horse")
	assert.NoError(t, err)
	stored := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "ada@example.com",
		Password: digest,
		Role:     models.RoleCustomer,
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewAuthService(mockRepo, newTestTokenService(), zap.NewNop())
		mockRepo.On("FindByEmail", ctx, stored.Email).Return(stored, nil).Once()

		user, token, appErr := svc.Login(ctx, &models.LoginRequest{Email: stored.Email, Password: "correct-horse"})

		assert.Nil(t, appErr)
		assert.NotEmpty(t, token)
		assert.Equal(t, stored.ID, user.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewAuthService(mockRepo, newTestTokenService(), zap.NewNop())
		mockRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, mongo.ErrNoDocuments).Once()

		_, _, appErr := svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindAuth, appErr.Kind)
		assert.Equal(t, "Invalid credentials", appErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewAuthService(mockRepo, newTestTokenService(), zap.NewNop())
		mockRepo.On("FindByEmail", ctx, stored.Email).Return(stored, nil).Once()

		_, _, appErr := svc.Login(ctx, &models.LoginRequest{Email: stored.Email, Password: "wrong"})

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindAuth, appErr.Kind)
		// Same message as the unknown-email case on purpose.
		assert.Equal(t, "Invalid credentials", appErr.Message)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Merges Only Provided Fields", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewAuthService(mockRepo, newTestTokenService(), zap.NewNop())

		userID := primitive.NewObjectID()
		existing := &models.User{
			ID:    userID,
			Name:  "Ada",
			Email: "ada@example.com",
			Address: models.Address{
				City:     "Istanbul",
				District: "Kadikoy",
			},
		}
		mockRepo.On("FindByID", ctx, userID).Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

		newName := "Ada L."
		newDistrict := "Besiktas"
		updated, appErr := svc.UpdateProfile(ctx, userID, &models.UpdateProfileRequest{
			Name:    &newName,
			Address: &models.AddressUpdate{District: &newDistrict},
		})

		assert.Nil(t, appErr)
		assert.Equal(t, "Ada L.", updated.Name)
		assert.Equal(t, "ada@example.com", updated.Email)
		assert.Equal(t, "Istanbul", updated.Address.City)
		assert.Equal(t, "Besiktas", updated.Address.District)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rehashes New Password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewAuthService(mockRepo, newTestTokenService(), zap.NewNop())

		userID := primitive.NewObjectID()
		oldDigest, _ := HashPassword("old-password")
		existing := &models.User{ID: userID, Password: oldDigest}
		mockRepo.On("FindByID", ctx, userID).Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

		newPassword := "new-password"
		updated, appErr := svc.UpdateProfile(ctx, userID, &models.UpdateProfileRequest{Password: &newPassword})

		assert.Nil(t, appErr)
		assert.NotEqual(t, oldDigest, updated.Password)
		assert.True(t, VerifyPassword("new-password", updated.Password))
		mockRepo.AssertExpectations(t)
	})
}

func TestHasRole(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	assert.True(t, admin.HasRole(models.RoleAdmin))
	assert.True(t, admin.HasRole(models.RoleSeller, models.RoleAdmin))
	assert.False(t, admin.HasRole(models.RoleCustomer))
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := newTestTokenService()
	id := primitive.NewObjectID().Hex()

	token, err := tokens.Issue(id)
	assert.NoError(t, err)

	got, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = tokens.Verify(token + "tampered")
	assert.Error(t, err)
}
