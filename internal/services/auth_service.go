package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/apperrors"
	"github.com/juliomeza/sales-orders-system-sub001/internal/auth"
	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
)

// AuthService exchanges credentials for a signed access token.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log.With("service", "AuthService"),
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.NewAuthentication("invalid email or password")
		}
		return "", nil, err
	}
	if user.Status != models.StatusActive {
		return "", nil, apperrors.NewAuthentication("account is inactive")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.NewAuthentication("invalid email or password")
	}

	token, err := auth.GenerateToken(s.jwtSecret, user, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}
