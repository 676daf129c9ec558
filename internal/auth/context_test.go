package auth

import (
	"context"
	"testing"

	"github.com/dukerupert/dukanam/internal/model"
)

func TestWithUserAndFromContext(t *testing.T) {
	u := model.AuthUser{
		Token:    "tok",
		UserName: "Asha",
		Role:     model.RoleAdmin,
		UserID:   7,
	}

	ctx := WithUser(context.Background(), u)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected user in context")
	}
	if got.UserID != 7 {
		t.Errorf("UserID = %d, want 7", got.UserID)
	}
	if got.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", got.Role, model.RoleAdmin)
	}
	if !IsAdmin(ctx) {
		t.Error("expected IsAdmin")
	}
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	if ok {
		t.Error("expected false for missing user")
	}
	if Role(context.Background()) != "" {
		t.Error("expected empty role")
	}
}
