//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"citypulse/backend/internal/repository"
	"citypulse/backend/pkg/logger"
)

// The dashboard has a single admin account, stored in settings under the
// user. prefix.
const (
	keyUserUsername     = "user.username"
	keyUserNickname     = "user.nickname"
	keyUserEmail        = "user.email"
	keyUserPasswordHash = "user.password_hash"
	keyUserJWTSecret    = "user.jwt_secret"
)

const (
	minPasswordLength = 6
	tokenTTL          = 7 * 24 * time.Hour
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

var (
	ErrUsernameRequired        = errors.New("username is required")
	ErrInvalidUsername         = errors.New("username must start with a letter and contain only letters, numbers, and underscores")
	ErrEmailRequired           = errors.New("email is required")
	ErrPasswordRequired        = errors.New("password is required")
	ErrPasswordTooShort        = errors.New("password must be at least 6 characters")
	ErrUserExists              = errors.New("user already exists")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidPassword         = errors.New("invalid username or password")
	ErrCurrentPasswordRequired = errors.New("current password is required")
	ErrSamePassword            = errors.New("new password must be different from the current one")
	ErrInvalidToken            = errors.New("invalid token")
)

// User is the admin account as exposed to handlers.
type User struct {
	Username string
	Nickname string
	Email    string
}

// AuthResponse carries the user and a fresh token after register or login.
type AuthResponse struct {
	User  *User
	Token string
}

// ProfileUpdateResponse carries the updated user. Token is set only when the
// password changed, since the old token stays valid otherwise.
type ProfileUpdateResponse struct {
	User  *User
	Token *string
}

type AuthService interface {
	Register(ctx context.Context, username, nickname, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, identifier, password string) (*AuthResponse, error)
	UpdateProfile(ctx context.Context, nickname, email, currentPassword, newPassword string) (*ProfileUpdateResponse, error)
	ValidateToken(token string) (bool, error)
	IsRegistered(ctx context.Context) (bool, error)
	GetUser(ctx context.Context) (*User, error)
}

type authService struct {
	repo repository.SettingsRepository
}

func NewAuthService(repo repository.SettingsRepository) AuthService {
	return &authService{repo: repo}
}

type storedUser struct {
	username     string
	nickname     string
	email        string
	passwordHash string
}

// loadUser returns nil when no account has been registered yet.
func (s *authService) loadUser(ctx context.Context) (*storedUser, error) {
	settings, err := s.repo.GetByPrefix(ctx, "user.")
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	user := &storedUser{}
	for _, setting := range settings {
		switch setting.Key {
		case keyUserUsername:
			user.username = setting.Value
		case keyUserNickname:
			user.nickname = setting.Value
		case keyUserEmail:
			user.email = setting.Value
		case keyUserPasswordHash:
			user.passwordHash = setting.Value
		}
	}
	if user.username == "" {
		return nil, nil
	}
	return user, nil
}

func (u *storedUser) toUser() *User {
	return &User{
		Username: u.username,
		Nickname: u.nickname,
		Email:    u.email,
	}
}

func (s *authService) Register(ctx context.Context, username, nickname, email, password string) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	nickname = strings.TrimSpace(nickname)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if nickname == "" {
		nickname = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	values := map[string]string{
		keyUserUsername:     username,
		keyUserNickname:     nickname,
		keyUserEmail:        email,
		keyUserPasswordHash: string(hash),
	}
	for key, value := range values {
		if err := s.repo.Set(ctx, key, value); err != nil {
			return nil, fmt.Errorf("save %s: %w", key, err)
		}
	}

	token, err := s.issueToken(ctx, username)
	if err != nil {
		return nil, err
	}

	logger.Info("admin account registered", "module", "service", "action", "register", "resource", "user", "result", "ok", "username", username)
	return &AuthResponse{
		User:  &User{Username: username, Nickname: nickname, Email: email},
		Token: token,
	}, nil
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := s.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Identifier mismatch reports the same error as a wrong password so the
	// login form cannot be used to probe the account name.
	if user.username != identifier && !strings.EqualFold(user.email, identifier) {
		return nil, ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.passwordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	token, err := s.issueToken(ctx, user.username)
	if err != nil {
		return nil, err
	}

	logger.Info("admin logged in", "module", "service", "action", "login", "resource", "user", "result", "ok", "username", user.username)
	return &AuthResponse{User: user.toUser(), Token: token}, nil
}

func (s *authService) UpdateProfile(ctx context.Context, nickname, email, currentPassword, newPassword string) (*ProfileUpdateResponse, error) {
	user, err := s.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if nickname = strings.TrimSpace(nickname); nickname != "" {
		if err := s.repo.Set(ctx, keyUserNickname, nickname); err != nil {
			return nil, fmt.Errorf("save %s: %w", keyUserNickname, err)
		}
		user.nickname = nickname
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		if err := s.repo.Set(ctx, keyUserEmail, email); err != nil {
			return nil, fmt.Errorf("save %s: %w", keyUserEmail, err)
		}
		user.email = email
	}

	resp := &ProfileUpdateResponse{User: user.toUser()}
	if newPassword == "" {
		return resp, nil
	}

	if currentPassword == "" {
		return nil, ErrCurrentPasswordRequired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.passwordHash), []byte(currentPassword)); err != nil {
		return nil, ErrInvalidPassword
	}
	if len(newPassword) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if newPassword == currentPassword {
		return nil, ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.Set(ctx, keyUserPasswordHash, string(hash)); err != nil {
		return nil, fmt.Errorf("save %s: %w", keyUserPasswordHash, err)
	}

	token, err := s.issueToken(ctx, user.username)
	if err != nil {
		return nil, err
	}
	resp.Token = &token

	logger.Info("admin password changed", "module", "service", "action", "save", "resource", "user", "result", "ok", "username", user.username)
	return resp, nil
}

func (s *authService) ValidateToken(token string) (bool, error) {
	secret, err := s.jwtSecret(context.Background(), false)
	if err != nil {
		return false, err
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return false, ErrInvalidToken
	}
	return true, nil
}

func (s *authService) IsRegistered(ctx context.Context) (bool, error) {
	user, err := s.loadUser(ctx)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *authService) GetUser(ctx context.Context) (*User, error) {
	user, err := s.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.toUser(), nil
}

func (s *authService) issueToken(ctx context.Context, username string) (string, error) {
	secret, err := s.jwtSecret(ctx, true)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// jwtSecret loads the signing secret, generating and persisting one on first
// use when create is set.
func (s *authService) jwtSecret(ctx context.Context, create bool) ([]byte, error) {
	setting, err := s.repo.Get(ctx, keyUserJWTSecret)
	if err != nil {
		return nil, fmt.Errorf("load jwt secret: %w", err)
	}
	if setting != nil && setting.Value != "" {
		return []byte(setting.Value), nil
	}
	if !create {
		return nil, ErrInvalidToken
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate jwt secret: %w", err)
	}
	secret := hex.EncodeToString(buf)
	if err := s.repo.Set(ctx, keyUserJWTSecret, secret); err != nil {
		return nil, fmt.Errorf("save jwt secret: %w", err)
	}
	return []byte(secret), nil
}
