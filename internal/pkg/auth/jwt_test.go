package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
	"github.com/pandu-magang/pandu-backend/internal/pkg/auth"
)

func testJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "pandu.magang",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Email:    "admin@pandu.go.id",
		RoleType: models.RoleAdmin,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testJWTService(time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty token in generated pair")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != int((720 * time.Hour).Seconds()) {
		t.Errorf("refreshExpiresIn = %d, want %d", refreshExpiresIn, int((720*time.Hour).Seconds()))
	}

	claims, err := svc.ValidateAndExtractClaims(access)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "admin@pandu.go.id" {
		t.Errorf("Email = %s, want admin@pandu.go.id", claims.Email)
	}
	if claims.RoleType != "admin" {
		t.Errorf("RoleType = %s, want admin", claims.RoleType)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testJWTService(-time.Minute)

	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}
	if _, err := svc.ValidateAndExtractClaims(access); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("expired token validation = %v, want ErrTokenExpired", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := testJWTService(time.Hour)
	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}

	other := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
	})
	if _, err := other.ValidateAndExtractClaims(access); err == nil {
		t.Error("token signed with another secret expected error, got nil")
	}
}

func TestValidateAndExtractClaims_EmptyToken(t *testing.T) {
	svc := testJWTService(time.Hour)
	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("empty token = %v, want ErrTokenInvalid", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"", "", true},
		{"abc.def.ghi", "", true},
		{"Basic dXNlcjpwYXNz", "", true},
	}
	for _, c := range cases {
		got, err := auth.ExtractBearerToken(c.header)
		if c.wantErr {
			if err == nil {
				t.Errorf("ExtractBearerToken(%q) expected error, got nil", c.header)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExtractBearerToken(%q) returned error: %v", c.header, err)
		}
		if got != c.want {
			t.Errorf("ExtractBearerToken(%q) = %q, want %q", c.header, got, c.want)
		}
	}
}
