package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/leaveease/leaveease-backend-go/internal/domain/auth"
	"github.com/leaveease/leaveease-backend-go/internal/domain/user"
	"github.com/leaveease/leaveease-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	SetupPassword(ctx context.Context, req auth.SetupPasswordRequest) error
	Logout(ctx context.Context, refreshToken string)
}

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	u, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if u.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, accessExpiresAt, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
		Role:                  string(u.Role),
		EmployeeID:            u.EmployeeID,
	}, nil
}

// SetupPassword consumes a one-time setup token and stores the bcrypt hash of
// the chosen password. The token is cleared in the same statement, so it
// cannot be replayed.
func (a *AuthServiceImpl) SetupPassword(ctx context.Context, req auth.SetupPasswordRequest) error {
	u, err := a.userRepo.GetBySetupToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrSetupTokenInvalid
		}
		return fmt.Errorf("failed to look up setup token: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userRepo.SetPassword(ctx, u.ID, string(hashed)); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	return nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) {
	if refreshToken != "" {
		a.jwtService.RevokeToken(refreshToken)
	}
}
