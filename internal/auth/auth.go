package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"go-log-viewer/internal/model"
)

const (
	Realm = "Log Viewer"

	privilegedRole = "admin"
	hashCost       = 12
)

type Options struct {
	Username            string
	Password            string
	PasswordHash        string
	PrivilegedAccess    bool
	PrivilegedJWTSecret string
}

// Authenticator checks Authorization headers. Basic credentials are enforced
// only when a username and a password (or bcrypt hash) are configured. When
// privileged access is on, an HS256 bearer token with role=admin is accepted
// in place of Basic credentials.
type Authenticator struct {
	username         string
	password         string
	passwordHash     []byte
	privilegedSecret []byte
}

func New(opts Options) *Authenticator {
	a := &Authenticator{
		username: opts.Username,
		password: opts.Password,
	}
	if hash := strings.TrimSpace(opts.PasswordHash); hash != "" {
		a.passwordHash = []byte(hash)
	}
	if opts.PrivilegedAccess && strings.TrimSpace(opts.PrivilegedJWTSecret) != "" {
		a.privilegedSecret = []byte(opts.PrivilegedJWTSecret)
	}

	return a
}

func (a *Authenticator) Enabled() bool {
	return a != nil && a.username != "" && (a.password != "" || len(a.passwordHash) > 0)
}

// Authenticate returns the caller identity for an Authorization header value.
// It fails with model.ErrUnauthorized when credentials are required and not
// satisfied.
func (a *Authenticator) Authenticate(header string) (model.AuditActor, error) {
	if username, ok := a.privileged(header); ok {
		return model.AuditActor{Username: username, Privileged: true}, nil
	}

	if !a.Enabled() {
		return model.AuditActor{}, nil
	}

	username, password, ok := DecodeBasic(header)
	if !ok || !a.checkCredentials(username, password) {
		return model.AuditActor{}, model.ErrUnauthorized
	}

	return model.AuditActor{Username: username}, nil
}

func (a *Authenticator) checkCredentials(username string, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	var passOK bool
	if len(a.passwordHash) > 0 {
		passOK = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	}

	return userOK && passOK
}

func (a *Authenticator) privileged(header string) (string, bool) {
	if a == nil || len(a.privilegedSecret) == 0 {
		return "", false
	}

	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", false
	}

	parsed, err := jwt.Parse(strings.TrimSpace(header[7:]), func(token *jwt.Token) (interface{}, error) {
		return a.privilegedSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	role, _ := claims["role"].(string)
	if !strings.EqualFold(role, privilegedRole) {
		return "", false
	}

	username, _ := claims["username"].(string)
	if username == "" {
		username, _ = claims["sub"].(string)
	}

	return username, true
}

// DecodeBasic splits an "Authorization: Basic ..." value into its username and
// password.
func DecodeBasic(header string) (string, string, bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}

	return username, password, true
}

// Challenge is the WWW-Authenticate value sent with 401 responses.
func Challenge() string {
	return fmt.Sprintf("Basic realm=%q", Realm)
}

// HashPassword produces a bcrypt hash suitable for LOGVIEWER_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password cannot be empty", model.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}
