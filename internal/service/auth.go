package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/webtech/cameralog/internal/model"
	"github.com/webtech/cameralog/internal/repository"
)

const SessionCookieName = "session"

var (
	ErrMissingCredentials = errors.New("email and date are required")
	ErrInvalidCredentials = errors.New("invalid email or date")
)

// AuthService implements the session flag: a login succeeds when some camera
// carries the submitted (email, date) pair, and the session is a signed
// cookie holding that email. Sessions do not expire.
type AuthService struct {
	cameraRepository repository.CameraRepository
	sessionSecret    string
	isProduction     bool
}

func NewAuthService(cameraRepository repository.CameraRepository, sessionSecret string, isProduction bool) *AuthService {
	return &AuthService{
		cameraRepository: cameraRepository,
		sessionSecret:    sessionSecret,
		isProduction:     isProduction,
	}
}

// Login returns the first camera matching the credential pair.
func (s *AuthService) Login(ctx context.Context, email, date string) (*model.Camera, error) {
	email = strings.TrimSpace(email)
	date = strings.TrimSpace(date)

	if email == "" || date == "" {
		return nil, ErrMissingCredentials
	}

	camera, err := s.cameraRepository.ByCredential(ctx, email, date)
	if err != nil {
		if errors.Is(err, repository.ErrCameraNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}

	return camera, nil
}

func (s *AuthService) GenerateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.sessionSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken returns the email carried by a valid session token.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.sessionSecret), nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("invalid token: missing email")
	}

	return email, nil
}

// SetSessionCookie stores the token in a browser-session cookie (no Expires).
func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
