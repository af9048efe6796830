// AngelaMos | 2026
// token.go

package handoff

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/yembez/quittancesimple/internal/config"
	"github.com/yembez/quittancesimple/internal/core"
)

// Tokens are scoped so an access-link token can never be replayed against
// any other token-accepting surface.
const scopePasswordSetup = "password-setup"

// Manager signs and verifies the short-lived tokens embedded in access
// links. The token carries the purchaser email as subject; the
// password-setup page exchanges it for a credential form.
type Manager struct {
	privateKey jwk.Key
	publicKey  jwk.Key
	config     config.HandoffConfig
}

func NewManager(cfg config.HandoffConfig) (*Manager, error) {
	privateKeyPEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read handoff key: %w", err)
	}

	privateKey, err := jwk.ParseKey(privateKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse handoff key: %w", err)
	}

	if setErr := privateKey.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	keyID := uuid.New().String()[:8]
	if setErr := privateKey.Set(jwk.KeyIDKey, keyID); setErr != nil {
		return nil, fmt.Errorf("set key id: %w", setErr)
	}

	publicKey, err := privateKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	return &Manager{
		privateKey: privateKey,
		publicKey:  publicKey,
		config:     cfg,
	}, nil
}

// Issue mints a password-setup token for the given email.
func (m *Manager) Issue(email string) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Subject(email).
		IssuedAt(now).
		Expiration(now.Add(m.config.TokenExpire)).
		NotBefore(now).
		Claim("scope", scopePasswordSetup).
		Build()
	if err != nil {
		return "", fmt.Errorf("build handoff token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.privateKey))
	if err != nil {
		return "", fmt.Errorf("sign handoff token: %w", err)
	}

	return string(signed), nil
}

// Verify validates a token and returns the email it was issued for.
func (m *Manager) Verify(raw string) (string, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.ES256(), m.publicKey),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return "", fmt.Errorf("verify handoff token: %w", core.ErrTokenExpired)
		}
		return "", fmt.Errorf("verify handoff token: %w", core.ErrTokenInvalid)
	}

	var scope string
	if err := token.Get("scope", &scope); err != nil ||
		scope != scopePasswordSetup {
		return "", fmt.Errorf(
			"verify handoff token: wrong scope: %w",
			core.ErrTokenInvalid,
		)
	}

	email, ok := token.Subject()
	if !ok || email == "" {
		return "", fmt.Errorf(
			"verify handoff token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	return email, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

// GenerateKeyPair writes a fresh P-256 signing key to privateKeyPath.
// Used by deploy tooling, never at request time.
func GenerateKeyPair(privateKeyPath string) error {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	jwkPrivate, err := jwk.Import(privateKey)
	if err != nil {
		return fmt.Errorf("import private key: %w", err)
	}

	keyID := uuid.New().String()[:8]
	if setErr := jwkPrivate.Set(jwk.KeyIDKey, keyID); setErr != nil {
		return fmt.Errorf("set key id: %w", setErr)
	}
	if setErr := jwkPrivate.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
		return fmt.Errorf("set algorithm: %w", setErr)
	}

	privatePEM, err := jwk.Pem(jwkPrivate)
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}

	if writeErr := os.WriteFile(privateKeyPath, privatePEM, 0o600); writeErr != nil {
		return fmt.Errorf("write private key: %w", writeErr)
	}

	return nil
}
