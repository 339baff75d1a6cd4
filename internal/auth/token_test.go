package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

func testEmployee() *domain.Employee {
	return &domain.Employee{
		ID:    17,
		Email: "agent@example.com",
		Role:  domain.RoleAgent,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken(testEmployee())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Error("expiry should be in the future")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.EmployeeID != 17 {
		t.Errorf("EmployeeID = %d, want 17", claims.EmployeeID)
	}
	if claims.Role != domain.RoleAgent {
		t.Errorf("Role = %s, want AGENT", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken(testEmployee())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	_, err = verifier.ParseToken(token)
	if err == nil {
		t.Fatal("expected signature verification to fail")
	}
	if got := FailureReason(err); got != "bad_signature" {
		t.Errorf("FailureReason = %q, want bad_signature", got)
	}
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	claims := &Claims{
		EmployeeID: 17,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = tm.ParseToken(expired)
	if err == nil {
		t.Fatal("expected expired token to be rejected")
	}
	if got := FailureReason(err); got != "expired" {
		t.Errorf("FailureReason = %q, want expired", got)
	}
}

func TestParseTokenMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not.a.jwt")
	if err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
	if got := FailureReason(err); got != "malformed" {
		t.Errorf("FailureReason = %q, want malformed", got)
	}
}

func TestPrincipalElevated(t *testing.T) {
	tests := []struct {
		role domain.Role
		want bool
	}{
		{domain.RoleAdmin, true},
		{domain.RoleManager, true},
		{domain.Role("manager"), true},
		{domain.RoleAgent, false},
		{domain.RoleTrainee, false},
	}
	for _, tt := range tests {
		p := &Principal{Employee: &domain.Employee{ID: 1}, Role: tt.role}
		if got := p.Elevated(); got != tt.want {
			t.Errorf("Elevated() with role %q = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestPrincipalAdmin(t *testing.T) {
	tests := []struct {
		role domain.Role
		want bool
	}{
		{domain.RoleAdmin, true},
		{domain.Role("admin"), true},
		{domain.RoleManager, false},
		{domain.RoleAgent, false},
	}
	for _, tt := range tests {
		p := &Principal{Employee: &domain.Employee{ID: 1}, Role: tt.role}
		if got := p.Admin(); got != tt.want {
			t.Errorf("Admin() with role %q = %v, want %v", tt.role, got, tt.want)
		}
	}
}
