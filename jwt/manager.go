package jwt

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// Key purposes for DeriveKey.
const (
	PurposeBearer        = "almapac/bearer"
	PurposeSessionCookie = "almapac/session-cookie"
)

const minSecretLength = 32

// ErrSecretTooShort is returned when the server secret is shorter than 32 bytes.
var ErrSecretTooShort = errors.New("secret too short")

// Config configures a Manager. Key is the HS256 key, usually produced by DeriveKey.
type Config struct {
	Key          []byte
	TTL          time.Duration
	Issuer       string
	Audience     string
	Leeway       time.Duration
	MaxFutureIAT time.Duration
}

// Manager issues and verifies HS256 tokens with one key. It holds no mutable state and
// is safe for concurrent use.
type Manager struct {
	config Config
}

// IdentityClaims is the payload of a Bearer token.
type IdentityClaims struct {
	Username     string `json:"username"`
	RoleID       int    `json:"roleId"`
	Role         string `json:"role"`
	FullName     string `json:"fullName,omitempty"`
	EmployeeCode string `json:"employeeCode,omitempty"`
	Email        string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SessionClaims is the payload of a session cookie token.
type SessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// DeriveKey expands secret into a 32-byte key bound to purpose.
func DeriveKey(secret []byte, purpose string) ([]byte, error) {
	if len(secret) < minSecretLength {
		return nil, ErrSecretTooShort
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(purpose)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Key) == 0 {
		return nil, errors.New("hs256 requires key")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if cfg.MaxFutureIAT == 0 {
		cfg.MaxFutureIAT = 10 * time.Minute
	}
	if cfg.MaxFutureIAT < 0 || cfg.MaxFutureIAT > 24*time.Hour {
		return nil, errors.New("invalid MaxFutureIAT configuration")
	}
	cfg.Issuer = strings.TrimSpace(cfg.Issuer)
	cfg.Audience = strings.TrimSpace(cfg.Audience)

	return &Manager{config: cfg}, nil
}

// TTL is the lifetime of issued tokens.
func (j *Manager) TTL() time.Duration {
	return j.config.TTL
}

func (j *Manager) registered(subject string, now time.Time) jwt.RegisteredClaims {
	rc := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.config.TTL)),
		Issuer:    j.config.Issuer,
	}
	if j.config.Audience != "" {
		rc.Audience = jwt.ClaimStrings{j.config.Audience}
	}
	return rc
}

// IssueIdentity signs an identity token for Bearer use.
func (j *Manager) IssueIdentity(claims IdentityClaims) (string, error) {
	claims.RegisteredClaims = j.registered(claims.Username, time.Now())
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.config.Key)
}

// IssueSession signs a session cookie token referencing sid.
func (j *Manager) IssueSession(sid string) (string, error) {
	if sid == "" {
		return "", errors.New("empty session id")
	}
	claims := SessionClaims{SID: sid, RegisteredClaims: j.registered("", time.Now())}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.config.Key)
}

// ParseIdentity verifies tokenStr and returns its identity claims.
func (j *Manager) ParseIdentity(tokenStr string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	if err := j.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseSession verifies tokenStr and returns its session claims.
func (j *Manager) ParseSession(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := j.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.SID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (j *Manager) parse(tokenStr string, claims jwt.Claims) error {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(j.config.Leeway))
	}
	if j.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(j.config.Issuer))
	}
	if j.config.Audience != "" {
		options = append(options, jwt.WithAudience(j.config.Audience))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return j.config.Key, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenInvalidClaims
	}

	iat, err := claims.GetIssuedAt()
	if err == nil && iat != nil && j.config.MaxFutureIAT > 0 {
		if iat.Time.After(time.Now().Add(j.config.MaxFutureIAT)) {
			return errors.New("token iat too far in the future")
		}
	}
	return nil
}
