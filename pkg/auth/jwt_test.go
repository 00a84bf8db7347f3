package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "tally-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()
	outletID := uuid.New()
	roles := []string{RoleManager, RoleCashier}

	tokenString, err := svc.GenerateToken(userID, outletID, roles)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if tokenString == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.OutletID != outletID {
		t.Errorf("OutletID = %v, want %v", claims.OutletID, outletID)
	}
	if len(claims.Roles) != 2 {
		t.Fatalf("Roles length = %d, want 2", len(claims.Roles))
	}
	if claims.Issuer != "tally-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "tally-test")
	}
	if claims.Subject != userID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, userID.String())
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "tally-test",
		Expiration: -1 * time.Hour, // already expired
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc.GenerateToken(uuid.New(), uuid.New(), []string{RoleCashier})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for expired token, got nil")
	}
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	svc1 := newTestJWTService(t)
	svc2, err := NewJWTService(JWTConfig{
		Secret:     "a-different-secret",
		Issuer:     "tally-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc1.GenerateToken(uuid.New(), uuid.New(), []string{RoleCashier})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc2.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for mismatched secret, got nil")
	}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	if _, err := NewJWTService(JWTConfig{}); err == nil {
		t.Fatal("NewJWTService() expected error for empty config, got nil")
	}
}

func TestHasRole(t *testing.T) {
	claims := Claims{Roles: []string{RoleManager}}

	if !claims.HasRole(RoleManager) {
		t.Error("expected HasRole(manager) to be true")
	}
	if claims.HasRole(RoleAdmin) {
		t.Error("expected HasRole(admin) to be false")
	}
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &Claims{UserID: uuid.New(), Roles: []string{RoleCashier}}

	ctx := ContextWithClaims(context.Background(), claims)

	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatal("expected claims in context")
	}
	if got.UserID != claims.UserID {
		t.Errorf("UserID = %v, want %v", got.UserID, claims.UserID)
	}

	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Error("expected no claims in empty context")
	}
}
