package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"taskboard/internal/caching"
	"taskboard/internal/models"
	"taskboard/internal/repositories"

	"github.com/jackc/pgx/v5"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrAccountDisabled    = errors.New("account deactivated")
	ErrAccountLocked      = errors.New("account locked")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
	userCacheTTL    = 5 * time.Minute
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService owns registration, login, and user lookup. Password and token
// handling are delegated to the dedicated services so the failure semantics
// stay in one place: a bad password and an unknown email both surface as
// ErrInvalidCredentials.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	passwords PasswordService
	cacheSvc  caching.CacheService
}

func NewAuthService(userRepo repositories.UserRepository, passwords PasswordService, cacheSvc caching.CacheService) AuthService {
	return &authService{
		userRepo:  userRepo,
		passwords: passwords,
		cacheSvc:  cacheSvc,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		PasswordHash:   hash,
		IsActive:       true,
		EmailConfirmed: false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	if user.Locked(now) {
		return nil, ErrAccountLocked
	}

	if !s.passwords.Verify(password, user.PasswordHash) {
		attempts := user.FailedLoginAttempts + 1
		var lockoutEnd *time.Time
		if attempts >= maxFailedLogins {
			end := now.Add(lockoutDuration)
			lockoutEnd = &end
		}
		if err := s.userRepo.RecordLoginFailure(ctx, user.ID, attempts, lockoutEnd); err != nil {
			// bookkeeping failure doesn't change the outcome
			log.Printf("Failed to record login failure for user %d: %v", user.ID, err)
		}
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.userRepo.RecordLoginSuccess(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now
	user.FailedLoginAttempts = 0
	user.LockoutEnd = nil

	s.cacheSvc.DeleteUser(ctx, user.ID)

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	if cached, err := s.cacheSvc.GetUser(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.cacheSvc.SetUser(ctx, user, userCacheTTL); err != nil {
		log.Printf("Failed to cache user %d: %v", userID, err)
	}
	return user, nil
}
