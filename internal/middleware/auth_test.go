package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"papertrade/internal/models"
)

func testUser() *models.User {
	u := &models.User{Username: "alice"}
	u.ID = "0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2b"
	return u
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 15*time.Minute, 24*time.Hour)
	user := testUser()

	access, err := issuer.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := issuer.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "alice" {
		t.Errorf("unexpected claims %+v", claims)
	}

	refresh, err := issuer.GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := issuer.ValidateRefreshToken(refresh); err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}

	if _, err := issuer.ValidateAccessToken(refresh); err == nil {
		t.Error("refresh token must not validate as access token")
	}
	if _, err := issuer.ValidateRefreshToken(access); err == nil {
		t.Error("access token must not validate as refresh token")
	}
}

func TestTokenIssuer_UniqueRefreshTokens(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute, time.Hour)
	a, _ := issuer.GenerateRefreshToken(testUser())
	b, _ := issuer.GenerateRefreshToken(testUser())
	if a == b {
		t.Error("expected distinct refresh tokens")
	}
	if HashToken(a) == HashToken(b) {
		t.Error("expected distinct hashes")
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute, time.Hour)
	other := NewTokenIssuer("other-secret", time.Minute, time.Hour)

	foreign, _ := other.GenerateAccessToken(testUser())
	if _, err := issuer.ValidateAccessToken(foreign); err == nil {
		t.Error("token signed with another secret must be rejected")
	}

	past := time.Now().Add(-2 * time.Minute)
	issuer.now = func() time.Time { return past }
	expired, _ := issuer.GenerateAccessToken(testUser())
	issuer.now = time.Now
	if _, err := issuer.ValidateAccessToken(expired); err == nil {
		t.Error("expired token must be rejected")
	}

	if _, err := issuer.ValidateAccessToken("not.a.jwt"); err == nil {
		t.Error("garbage must be rejected")
	}
}

func TestHashToken(t *testing.T) {
	// SHA-256 of "abc".
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := HashToken("abc"); got != want {
		t.Errorf("HashToken = %s, want %s", got, want)
	}
}

func TestAuthMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute, time.Hour)
	access, _ := issuer.GenerateAccessToken(testUser())
	refresh, _ := issuer.GenerateRefreshToken(testUser())

	r := gin.New()
	r.Use(AuthMiddleware(issuer))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey), "username": c.GetString(UsernameKey)})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"valid", "Bearer " + access, http.StatusOK, ""},
		{"missing", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad_scheme", "Token " + access, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"refresh_token", "Bearer " + refresh, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"garbage", "Bearer abc", http.StatusUnauthorized, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if code := errorCode(t, rec); code != tt.wantCode {
					t.Errorf("code = %q, want %q", code, tt.wantCode)
				}
				return
			}
			body := parseBody(t, rec)
			if body["user_id"] != testUser().ID || body["username"] != "alice" {
				t.Errorf("unexpected context values %v", body)
			}
		})
	}
}
