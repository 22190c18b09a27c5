package jwt

import (
	"testing"
	"time"

	"echo-roster/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 12 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.Issuer != "echo-roster" {
		t.Errorf("期望 Issuer=echo-roster，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	// 检查过期时间约为 12h
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 11*time.Hour || ttl > 13*time.Hour {
		t.Errorf("AccessToken TTL 期望约12h，实际=%v", ttl)
	}
}

func TestParseTokenInvalid(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("not-a-token"); err != ErrTokenInvalid {
		t.Errorf("非法 Token 应返回 ErrTokenInvalid，实际: %v", err)
	}

	// 用不同密钥签发的 Token 解析应失败
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-key-for-testing!",
		AccessTokenTTL: time.Hour,
	})
	token, err := other.GenerateAccessToken("user-1", "viewer")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}
	if _, err := m.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("错误密钥签发的 Token 应返回 ErrTokenInvalid，实际: %v", err)
	}
}
