package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vamsidadi/playstore-backend/internal/auth"
	"github.com/vamsidadi/playstore-backend/internal/config"
	"github.com/vamsidadi/playstore-backend/internal/dto"
	"github.com/vamsidadi/playstore-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminSecret        = errors.New("invalid admin secret key")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	issuer *auth.Issuer
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		issuer: auth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry),
	}
}

// Register creates a user account and issues its first session token.
// Registering role=admin requires the process-wide shared secret; the
// check happens here, before the store is touched.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Role == models.RoleAdmin && req.SecretKey != s.cfg.AdminSecretKey {
		return nil, ErrAdminSecret
	}

	var existing models.User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
		Role:     req.Role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.RegisterResponse{
		Message: capitalize(user.Role) + " registered successfully",
		Token:   token,
	}, nil
}

// Login authenticates by username/password. An admin account must also
// present the shared secret; a secret mismatch reads the same as a bad
// password to the caller.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role == models.RoleAdmin && req.SecretKey != s.cfg.AdminSecretKey {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Message:  capitalize(user.Role) + " login successful",
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

// UsernameExists reports whether a username is already registered.
func (s *AuthService) UsernameExists(username string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
