package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/store-rating-api/internal/core/domain"
	"github.com/ratehub/store-rating-api/internal/core/ports"
)

const validName = "Alexandra Pennington Whitfield"

func newAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     validName,
		Email:    "alex@example.com",
		Password: "Valid1!pass",
		Address:  "1 Main St",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("registration must always produce role=user, got %q", user.Role)
	}
	if user.PasswordHash == "Valid1!pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Valid1!pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     validName,
		Email:    "alex@example.com",
		Password: "alllowercase1!",
		Address:  "1 Main St",
	})
	if err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	in := ports.RegisterInput{Name: validName, Email: "alex@example.com", Password: "Valid1!pass", Address: "1 Main St"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: validName, Email: "alex@example.com", Password: "Valid1!pass", Address: "1 Main St",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alex@example.com", "Valid1!pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Email != "alex@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if int64(claims["user_id"].(float64)) != user.ID {
		t.Fatalf("user_id claim mismatch: %v", claims["user_id"])
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("role claim mismatch: %v", claims["role"])
	}
	if claims["jti"] == "" || claims["jti"] == nil {
		t.Fatalf("expected jti claim")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: validName, Email: "alex@example.com", Password: "Valid1!pass", Address: "1 Main St",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alex@example.com", "Wrong1!pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "Valid1!pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: validName, Email: "alex@example.com", Password: "Valid1!pass", Address: "1 Main St",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "Wrong1!pass", "Fresh2@pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "Valid1!pass", "weak"); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for weak new password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "Valid1!pass", "Fresh2@pass"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alex@example.com", "Valid1!pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted")
	}
	if _, _, err := svc.Login(context.Background(), "alex@example.com", "Fresh2@pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
