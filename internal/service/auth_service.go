package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"credit-app/internal/core/domain"
	"credit-app/internal/core/ports"
	"credit-app/pkg/apperror"
)

// AuthServiceImpl handles registration and login.
type AuthServiceImpl struct {
	userRepo ports.UserRepository
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
	log      zerolog.Logger
}

func NewAuthService(
	userRepo ports.UserRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// Register creates a User-role account and stores its id and normalized
// email on cmd.
func (s *AuthServiceImpl) Register(ctx context.Context, cmd *ports.RegisterUser) (ports.AuthResponse, error) {
	user, err := s.createUser(ctx, cmd.Username, cmd.Email, cmd.Password, domain.RoleUser)
	if err != nil {
		return ports.AuthResponse{}, err
	}
	cmd.UserID, cmd.Email = user.ID, user.Email
	return s.issue(user)
}

// RegisterAnalyst creates an Analyst-role account and stores its id on cmd.
func (s *AuthServiceImpl) RegisterAnalyst(ctx context.Context, cmd *ports.RegisterAnalyst) (ports.AuthResponse, error) {
	user, err := s.createUser(ctx, cmd.Username, cmd.Email, cmd.Password, domain.RoleAnalyst)
	if err != nil {
		return ports.AuthResponse{}, err
	}
	cmd.UserID, cmd.Email = user.ID, user.Email
	return s.issue(user)
}

// Login verifies credentials by email and stamps the login time.
func (s *AuthServiceImpl) Login(ctx context.Context, cmd *ports.Login) (ports.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(cmd.Email))
	if err != nil {
		return ports.AuthResponse{}, apperror.ErrDatabaseError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return ports.AuthResponse{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(cmd.Password, user.PasswordHash)
	if err != nil {
		return ports.AuthResponse{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return ports.AuthResponse{}, apperror.ErrInvalidCredentials()
	}
	if !user.IsActive {
		return ports.AuthResponse{}, apperror.ErrAccountInactive()
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return ports.AuthResponse{}, apperror.ErrDatabaseError(fmt.Errorf("update last login: %w", err))
	}
	user.RecordLogin(now)
	cmd.Email = user.Email

	return s.issue(user)
}

// Me reissues a token for an active account.
func (s *AuthServiceImpl) Me(ctx context.Context, q ports.GetCurrentUser) (ports.AuthResponse, error) {
	user, err := s.userRepo.GetByID(ctx, q.UserID)
	if err != nil {
		return ports.AuthResponse{}, apperror.ErrDatabaseError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return ports.AuthResponse{}, apperror.ErrNotFound("user")
	}
	if !user.IsActive {
		return ports.AuthResponse{}, apperror.ErrAccountInactive()
	}
	return s.issue(user)
}

func (s *AuthServiceImpl) createUser(ctx context.Context, username, email, password string, role domain.UserRole) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check email: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrDuplicate("email")
	}
	existing, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrDuplicate("username")
	}

	hash, err := s.hashSvc.Hash(password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user, err := domain.NewUser(username, email, hash, role)
	if err != nil {
		return nil, err
	}

	// The unique indexes still catch a concurrent registration.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperror.HasCode(err, apperror.CodeDuplicate) {
			return nil, err
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create user: %w", err))
	}

	s.log.Info().
		Str("user_id", user.ID.String()).
		Str("role", string(user.Role)).
		Msg("user registered")

	return user, nil
}

func (s *AuthServiceImpl) issue(user *domain.User) (ports.AuthResponse, error) {
	token, expiresAt, err := s.tokenSvc.Generate(user)
	if err != nil {
		return ports.AuthResponse{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return ports.AuthResponse{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
