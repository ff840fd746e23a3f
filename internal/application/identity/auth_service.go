package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appevent "github.com/storefront/backend/internal/application/event"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// Errors whose message or status the storefront client depends on
var (
	ErrAlreadyRegistered  = shared.NewDomainError(shared.CodeAlreadyExists, "Already Register please login").WithStatus(http.StatusOK)
	ErrLoginFieldsMissing = shared.NewDomainError(shared.CodeInvalidInput, "Invalid email or password").WithStatus(http.StatusNotFound)
	ErrEmailNotRegistered = shared.NewDomainError(shared.CodeNotFound, "Email is not registerd")
	ErrInvalidPassword    = shared.NewDomainError(shared.CodeUnauthorized, "Invalid Password").WithStatus(http.StatusBadRequest)
	ErrWrongEmailOrAnswer = shared.NewDomainError(shared.CodeNotFound, "Wrong Email Or Answer")
	ErrUserNotFound       = shared.NewNotFoundError("User not found")
)

// AuthService handles sign-up, login, password recovery and profile changes
type AuthService struct {
	users     identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	events    shared.EventPublisher
	logger    *zap.Logger
}

func NewAuthService(
	users identity.UserRepository,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	events shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		jwt:       jwt,
		blacklist: blacklist,
		events:    events,
		logger:    logger,
	}
}

// Register creates a customer account
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (_ *UserResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Register")
	defer func() { telemetry.EndSpan(span, err) }()

	reg := identity.Registration{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
		Address:  in.Address,
		Answer:   in.Answer,
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, identity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	user, err := identity.NewUser(reg)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent sign-up with the same email loses on the unique index.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	appevent.PublishPending(ctx, s.events, s.logger, user)

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Login checks credentials and issues a JWT
func (s *AuthService) Login(ctx context.Context, in LoginInput) (_ *LoginResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Login")
	defer func() { telemetry.EndSpan(span, err) }()

	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, ErrLoginFieldsMissing
	}

	user, err := s.users.FindByEmail(ctx, identity.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrEmailNotRegistered
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.CheckPassword(in.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidPassword
	}

	token, claims, err := s.jwt.GenerateToken(user.ID, int(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{
		User:      ToUserResponse(user),
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ForgotPassword resets the password when the security answer matches
func (s *AuthService) ForgotPassword(ctx context.Context, in ForgotPasswordInput) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "ForgotPassword")
	defer func() { telemetry.EndSpan(span, err) }()

	switch {
	case strings.TrimSpace(in.Email) == "":
		return shared.NewValidationError("Email is required")
	case strings.TrimSpace(in.Answer) == "":
		return shared.NewValidationError("answer is required")
	case in.NewPassword == "":
		return shared.NewValidationError("New Password is required")
	}

	user, err := s.users.FindByEmail(ctx, identity.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrWrongEmailOrAnswer
		}
		return fmt.Errorf("find user: %w", err)
	}
	if !user.CheckAnswer(in.Answer) {
		return ErrWrongEmailOrAnswer
	}

	if err := user.ResetPassword(in.NewPassword); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	appevent.PublishPending(ctx, s.events, s.logger, user)
	return nil
}

// UpdateProfile applies the signed-in user's changes
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (_ *UserResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "UpdateProfile")
	defer func() { telemetry.EndSpan(span, err) }()

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(identity.ProfileUpdate{
		Name:     in.Name,
		Password: in.Password,
		Phone:    in.Phone,
		Address:  in.Address,
	}); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// IsAdmin reports whether the user currently holds the admin role.
// The role is read from storage so demotions apply to existing tokens.
func (s *AuthService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// Logout revokes the token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) findUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
