package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"kingtech-store/internal/apperr"
	"kingtech-store/internal/config"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	sessionTTL      = 12 * time.Hour
	googleUserInfo  = "https://www.googleapis.com/oauth2/v2/userinfo"
	sessionIssuer   = "kingtech-store"
	sessionAudience = "admin"
)

type SessionClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

type AuthService interface {
	LoginURL(state string) string
	// HandleCallback exchanges the OAuth code, checks the admin allowlist and
	// returns a signed session token.
	HandleCallback(ctx context.Context, code string) (string, error)
	ParseSession(token string) (*SessionClaims, error)
	// VerifyBasic checks the HTTP Basic fallback credentials.
	VerifyBasic(username, password string) bool
}

type authServiceImpl struct {
	oauth          *oauth2.Config
	adminEmails    map[string]bool
	sessionSecret  []byte
	basicUsername  string
	hashedPassword string
}

func NewAuthService(googleCfg *config.Google, adminCfg *config.Admin, sessionCfg *config.Session) AuthService {
	adminEmails := map[string]bool{}
	for _, email := range strings.Split(adminCfg.Emails, ",") {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			adminEmails[email] = true
		}
	}

	return &authServiceImpl{
		oauth: &oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			RedirectURL:  googleCfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		adminEmails:    adminEmails,
		sessionSecret:  []byte(sessionCfg.Secret),
		basicUsername:  adminCfg.Username,
		hashedPassword: adminCfg.HashedPassword,
	}
}

func (s *authServiceImpl) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

func (s *authServiceImpl) HandleCallback(ctx context.Context, code string) (string, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange oauth code: %w", err)
	}

	resp, err := s.oauth.Client(ctx, token).Get(googleUserInfo)
	if err != nil {
		return "", fmt.Errorf("fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode google userinfo: %w", err)
	}

	email := strings.ToLower(info.Email)
	if email == "" || !s.adminEmails[email] {
		return "", apperr.ErrForbidden
	}

	return s.signSession(email)
}

func (s *authServiceImpl) signSession(email string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Email:   email,
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Audience:  jwt.ClaimStrings{sessionAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

func (s *authServiceImpl) ParseSession(token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.sessionSecret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithAudience(sessionAudience),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	return claims, nil
}

func (s *authServiceImpl) VerifyBasic(username, password string) bool {
	if s.basicUsername == "" || s.hashedPassword == "" {
		return false
	}

	sum := sha512.Sum512([]byte(password))
	hashed := base64.StdEncoding.EncodeToString(sum[:])

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.basicUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(hashed), []byte(s.hashedPassword)) == 1

	return userOK && passOK
}
