package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/identity"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, tokens *TokenService) *AuthService {
	return &AuthService{db: db, cfg: cfg, tokens: tokens}
}

// Login issues a session token. In demo mode any credentials map to the
// configured demo identity.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	var (
		user identity.Identity
		err  error
	)
	switch s.cfg.AuthMode {
	case config.AuthModePassword:
		user, err = s.checkPassword(req.Email, req.Password)
		if err != nil {
			return nil, err
		}
	default:
		user = s.DemoIdentity()
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.LoginResponse{
		Token:   token,
		User:    user,
		Message: "Login successful",
	}, nil
}

func (s *AuthService) DemoIdentity() identity.Identity {
	return identity.Identity{
		ID:    s.cfg.DemoUserID,
		Email: s.cfg.DemoUserEmail,
		Name:  s.cfg.DemoUserName,
	}
}

func (s *AuthService) checkPassword(email, password string) (identity.Identity, error) {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.Identity{}, ErrInvalidCredentials
		}
		return identity.Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return identity.Identity{}, ErrInvalidCredentials
	}

	return identity.Identity{ID: user.ID.String(), Email: user.Email, Name: user.Name}, nil
}

// CreateUser registers a login for the password auth mode.
func (s *AuthService) CreateUser(email, name, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Email: email, Name: name, Password: string(hash)}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
