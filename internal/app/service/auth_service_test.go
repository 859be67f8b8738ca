package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"staynest/internal/common"
	"staynest/internal/common/security"
	"staynest/internal/domain/model"
	"staynest/internal/platform/config"
)

type fakeUserRepo struct {
	users map[string]*model.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	stored := *user
	stored.CreatedAt = time.Now()
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			stored := *u
			return &stored, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored := *u
	return &stored, nil
}

func initTestSecurity(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	initTestSecurity(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("Register() email = %q, want %q", user.Email, "a@x.com")
	}
	if user.HashedPassword != "" {
		t.Error("Register() leaked the password digest")
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "wrong"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("Login() with wrong password error = %v, want ErrUnauthorized", err)
	}

	result, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Error("Login() returned empty session token")
	}
	if result.User.ID != user.ID {
		t.Errorf("Login() user id = %q, want %q", result.User.ID, user.ID)
	}
	if result.User.HashedPassword != "" {
		t.Error("Login() leaked the password digest")
	}

	claims, err := security.VerifyToken(result.Token)
	if err != nil {
		t.Fatalf("VerifyToken() unexpected error: %v", err)
	}
	if id, _ := security.GetUserIDFromClaims(claims); id != user.ID {
		t.Errorf("token user_id = %q, want %q", id, user.ID)
	}
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	initTestSecurity(t)
	svc := NewAuthService(newFakeUserRepo())

	// Unknown email must be indistinguishable from a wrong password
	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@x.com", Password: "secret"})
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("Login() with unknown email error = %v, want ErrUnauthorized", err)
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	initTestSecurity(t)
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	_, err := svc.Register(ctx, RegisterRequest{Name: "Impostor", Email: "a@x.com", Password: "other"})
	if !errors.Is(err, common.ErrConflict) {
		t.Errorf("Register() with duplicate email error = %v, want ErrConflict", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	initTestSecurity(t)
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	cases := []RegisterRequest{
		{Name: "", Email: "a@x.com", Password: "secret"},
		{Name: "Alice", Email: "", Password: "secret"},
		{Name: "Alice", Email: "a@x.com", Password: ""},
		{Name: "Alice", Email: "no-at-sign", Password: "secret"},
	}
	for _, req := range cases {
		if _, err := svc.Register(ctx, req); !errors.Is(err, common.ErrValidation) {
			t.Errorf("Register(%+v) error = %v, want ErrValidation", req, err)
		}
	}
}

func TestAuthService_Profile(t *testing.T) {
	initTestSecurity(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	profile, err := svc.Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("Profile() unexpected error: %v", err)
	}
	if profile.Email != "a@x.com" || profile.Name != "Alice" {
		t.Errorf("Profile() = %+v, want Alice/a@x.com", profile)
	}
	if profile.HashedPassword != "" {
		t.Error("Profile() leaked the password digest")
	}

	if _, err := svc.Profile(ctx, "missing-id"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Profile() for unknown id error = %v, want ErrNotFound", err)
	}
}
