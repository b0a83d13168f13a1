// Package token issues and verifies the HS256 JWTs used by the api.
package token

import (
	"errors"
	"time"

	autherrors "github.com/towet/payroll-processing-sys/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"

	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
	Kind       string `json:"kind"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{secret: []byte(secret), now: now}
}

// Issue signs a token of the given kind. The expiry follows the kind.
func (m *Manager) Issue(kind, userID, role, employeeID string) (string, time.Time, error) {
	ttl := AccessTTL
	if kind == KindRefresh {
		ttl = RefreshTTL
	}
	issuedAt := m.now()
	expiresAt := issuedAt.Add(ttl)

	claims := Claims{
		UserID:     userID,
		Role:       role,
		EmployeeID: employeeID,
		Kind:       kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, autherrors.ErrTokenGenerationFailed.WithCause(err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, expiry and kind.
func (m *Manager) Parse(tokenString, kind string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !parsed.Valid || claims.UserID == "" || claims.Role == "" || claims.Kind != kind {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
