package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/e11even-central/api/internal/cache"
	"github.com/e11even-central/api/internal/config"
	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService authenticates staff accounts.
type UserAuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	loginLogRepo repository.UserLoginLogRepository
}

// NewUserAuthService creates the staff auth service.
func NewUserAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	loginLogRepo repository.UserLoginLogRepository,
) *UserAuthService {
	return &UserAuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		loginLogRepo: loginLogRepo,
	}
}

// UserJWTClaims are the staff token claims.
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput is the registration request.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Department  string
	InviteCode  string
}

// LoginMeta carries request metadata into the login log.
type LoginMeta struct {
	IP        string
	UserAgent string
}

// UpdateProfileInput is the profile update request; nil fields are unchanged.
type UpdateProfileInput struct {
	DisplayName *string
	Department  *string
}

// Register creates a staff account.
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidCredentials
	}

	if code := strings.TrimSpace(s.cfg.Security.RegisterInviteCode); code != "" {
		if strings.TrimSpace(input.InviteCode) != code {
			return nil, ErrInviteCodeInvalid
		}
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Department:   strings.TrimSpace(input.Department),
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Infow("user_registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates a staff member and issues a token. Every attempt
// lands in the login log.
func (s *UserAuthService) Login(email, password string, meta LoginMeta) (*models.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		s.recordLogin(0, email, constants.LoginLogStatusFailed, constants.LoginLogFailReasonBadRequest, meta)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		s.recordLogin(0, email, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInternalError, meta)
		return nil, "", time.Time{}, err
	}
	if user == nil {
		s.recordLogin(0, email, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInvalidCredentials, meta)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordLogin(user.ID, email, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInvalidCredentials, meta)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if user.Status != constants.UserStatusActive {
		s.recordLogin(user.ID, email, constants.LoginLogStatusFailed, constants.LoginLogFailReasonUserDisabled, meta)
		return nil, "", time.Time{}, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		s.recordLogin(user.ID, email, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInternalError, meta)
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	s.recordLogin(user.ID, email, constants.LoginLogStatusSuccess, "", meta)
	return user, token, expiresAt, nil
}

// GenerateJWT issues a staff token.
func (s *UserAuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates and parses a staff token.
func (s *UserAuthService) ParseJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &UserJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GetProfile returns a staff account.
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile edits the caller's display fields.
func (s *UserAuthService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates the caller's password and revokes existing tokens.
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	now := time.Now()
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	logger.Infow("user_password_changed", "user_id", user.ID)
	return nil
}

// ListLoginLogs returns the caller's recent login attempts.
func (s *UserAuthService) ListLoginLogs(userID uint, page, pageSize int) ([]models.UserLoginLog, int64, error) {
	return s.loginLogRepo.List(repository.UserLoginLogListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

func (s *UserAuthService) recordLogin(userID uint, email, status, failReason string, meta LoginMeta) {
	entry := &models.UserLoginLog{
		UserID:     userID,
		Email:      email,
		Status:     status,
		FailReason: failReason,
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
	}
	if err := s.loginLogRepo.Create(entry); err != nil {
		logger.Warnw("login_log_write_failed", "email", email, "error", err)
	}
}
