package config_test

import (
	"testing"

	"github.com/tahmid27/wavely/backend/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.AllowSelfFollow {
		t.Error("self-follow must be off by default")
	}
	if cfg.TrustCommentAuthor {
		t.Error("trusted comment authors must be off by default")
	}
	if cfg.CommentPageSize != 5 {
		t.Errorf("expected default comment page size 5, got %d", cfg.CommentPageSize)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ALLOW_SELF_FOLLOW", "true")
	t.Setenv("TRUST_COMMENT_AUTHOR", "true")
	t.Setenv("COMMENT_PAGE_SIZE", "10")
	t.Setenv("JWT_SECRET", "override")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %q", cfg.Port)
	}
	if !cfg.AllowSelfFollow || !cfg.TrustCommentAuthor {
		t.Error("expected boolean flags to be overridden")
	}
	if cfg.CommentPageSize != 10 {
		t.Errorf("expected comment page size 10, got %d", cfg.CommentPageSize)
	}
	if cfg.JWTSecret != "override" {
		t.Errorf("expected jwt secret override, got %q", cfg.JWTSecret)
	}
}
