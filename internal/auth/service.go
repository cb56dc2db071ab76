// Package auth authenticates callers and resolves their access scope.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"studentcontrol/internal/access"
	"studentcontrol/internal/shared"
)

// Service implements login, logout, and token validation against the
// users and sessions collections.
type Service struct {
	cfg         *shared.Config
	usersCol    *mongo.Collection
	sessionsCol *mongo.Collection
	teachersCol *mongo.Collection
}

// Claims is the JWT payload. The email is the only identity carried;
// scope is re-resolved from the teachers collection on every request so
// authorization changes take effect immediately.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewService creates an auth Service instance.
func NewService(db *mongo.Database, cfg *shared.Config) *Service {
	return &Service{
		cfg:         cfg,
		usersCol:    db.Collection(shared.ColUsers),
		sessionsCol: db.Collection(shared.ColSessions),
		teachersCol: db.Collection(shared.ColTeachers),
	}
}

// Login verifies credentials, stores a session, and returns a signed
// token plus the caller's resolved scope. An identity with no teacher
// record still logs in with a denied scope; the UI shows the contact-
// administrator state instead of an error.
func (s *Service) Login(ctx context.Context, email, password string) (string, access.Scope, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", access.Scope{}, shared.ValidationError{Field: "email", Message: "email and password are required"}
	}

	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user shared.User
	err := s.usersCol.FindOne(queryCtx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", access.Scope{}, shared.ErrUnauthenticated
		}
		return "", access.Scope{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", access.Scope{}, shared.ErrUnauthenticated
	}
	if !user.IsActive {
		return "", access.Scope{}, shared.ErrUnauthenticated
	}

	token, expiresAt, err := s.generateToken(email)
	if err != nil {
		return "", access.Scope{}, err
	}

	session := shared.Session{
		ID:        shared.GenerateID("sess"),
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	if _, err := s.sessionsCol.InsertOne(queryCtx, session); err != nil {
		return "", access.Scope{}, err
	}

	scope, err := s.ResolveScope(ctx, email)
	if err != nil {
		return "", access.Scope{}, err
	}
	return token, scope, nil
}

// Logout removes the session for the token. Idempotent: an unknown or
// already-expired token still succeeds.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return shared.ValidationError{Field: "token", Message: "is required"}
	}

	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.sessionsCol.DeleteMany(queryCtx, bson.M{"token": token})
	return err
}

// Validate checks the token signature and the server-side session, then
// resolves the caller's scope. Returns the session object carried
// through the request context.
func (s *Service) Validate(ctx context.Context, token string) (*access.Session, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}

	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session shared.Session
	err = s.sessionsCol.FindOne(queryCtx, bson.M{"token": token}).Decode(&session)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}
	if session.IsExpired() {
		return nil, shared.ErrUnauthenticated
	}

	scope, err := s.ResolveScope(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	return &access.Session{Email: claims.Email, Scope: scope}, nil
}

// ResolveScope looks up the teacher authorization record for the email
// and applies the access policy. Pure lookup: no side effects.
func (s *Service) ResolveScope(ctx context.Context, email string) (access.Scope, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// The administrator never needs a teacher record.
	if scope := access.Resolve(s.cfg.AdminEmail, email, nil); scope.IsAdmin() {
		return scope, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile shared.TeacherProfile
	err := s.teachersCol.FindOne(queryCtx, bson.M{"email": email}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return access.Resolve(s.cfg.AdminEmail, email, nil), nil
		}
		return access.Scope{}, err
	}
	return access.Resolve(s.cfg.AdminEmail, email, &profile), nil
}

func (s *Service) generateToken(email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.Security.JWTExpirationHours) * time.Hour)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.cfg.ServiceName,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Security.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *Service) parseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Security.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, shared.ErrUnauthenticated
	}
	return claims, nil
}
