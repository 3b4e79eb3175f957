package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"marketplace-api/models"
	"marketplace-api/pkg/apperrors"
	"marketplace-api/repository"
)

// AuthService owns user identity: registration, credential verification
// and profile updates. Role checks themselves live on models.User and are
// applied by the authorization middleware.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, *apperrors.Error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, *apperrors.Error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, *apperrors.Error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, *apperrors.Error)
}

type authServiceImpl struct {
	users  repository.UserRepository
	tokens *TokenService
	logger *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, tokens: tokens, logger: logger}
}

// Register creates an account. The role is always forced to customer;
// seller is only granted through store approval.
func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, *apperrors.Error) {
	digest, err := HashPassword(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, "", apperrors.Internal("Failed to create account", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: digest,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, "", apperrors.Conflict("An account with this email already exists")
		}
		s.logger.Error("user insert failed", zap.Error(err))
		return nil, "", apperrors.Internal("Failed to create account", err)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		s.logger.Error("token issue failed", zap.Error(err))
		return nil, "", apperrors.Internal("Failed to create account", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return user, token, nil
}

// Login verifies credentials and issues a token. Failures are
// deliberately indistinguishable between unknown email and bad password.
func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, *apperrors.Error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, "", apperrors.Auth("Invalid credentials")
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, "", apperrors.Internal("Failed to log in", err)
	}

	if !VerifyPassword(req.Password, user.Password) {
		return nil, "", apperrors.Auth("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		s.logger.Error("token issue failed", zap.Error(err))
		return nil, "", apperrors.Internal("Failed to log in", err)
	}
	return user, token, nil
}

func (s *authServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, *apperrors.Error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Failed to load user", err)
	}
	return user, nil
}

// UpdateProfile merges a partial profile update field-by-field. A new
// password is re-hashed before saving.
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, *apperrors.Error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Failed to load user", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		user.Email = *req.Email
	}
	if req.Address != nil {
		applyAddressUpdate(&user.Address, req.Address)
	}
	if req.Password != nil {
		digest, err := HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.Internal("Failed to update profile", err)
		}
		user.Password = digest
	}

	if err := s.users.Update(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("An account with this email already exists")
		}
		s.logger.Error("user update failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to update profile", err)
	}
	return user, nil
}

func applyAddressUpdate(addr *models.Address, upd *models.AddressUpdate) {
	if upd.City != nil {
		addr.City = *upd.City
	}
	if upd.District != nil {
		addr.District = *upd.District
	}
	if upd.FullAddress != nil {
		addr.FullAddress = *upd.FullAddress
	}
}
