package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
	"github.com/pandu-magang/pandu-backend/internal/pkg/auth"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
	for _, u := range users {
		u.ID = f.nextID
		f.nextID++
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetAll(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	now := time.Now()
	if u, ok := f.users[userID]; ok {
		u.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

type fakeTokenStore struct {
	tokens      map[string]int64
	revoked     map[string]bool
	revokedAll  []int64
	createCalls int
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]int64{}, revoked: map[string]bool{}}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = userID
	f.createCalls++
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error) {
	if f.revoked[token] {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	userID, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	return userID, time.Now().Add(time.Hour), nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	f.revokedAll = append(f.revokedAll, userID)
	for token, owner := range f.tokens {
		if owner == userID {
			f.revoked[token] = true
		}
	}
	return nil
}

func newTestAuthService(users *fakeUserStore, tokens *fakeTokenStore) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "pandu.magang",
	})
	return NewAuthService(users, tokens, jwtService, zerolog.Nop())
}

func activeAdmin(password string) *models.User {
	hash, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return &models.User{
		Email:    "admin@pandu.go.id",
		Password: hash,
		FullName: "Dewi Lestari",
		RoleType: models.RoleAdmin,
		IsActive: true,
	}
}

func TestAuthLogin_Success(t *testing.T) {
	users := newFakeUserStore(activeAdmin("Pandu#2025"))
	tokens := newFakeTokenStore()
	svc := newTestAuthService(users, tokens)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "  Admin@pandu.go.id ", // normalized before lookup
		Password: "Pandu#2025",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("token pair is incomplete")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("TokenType = %s, want Bearer", resp.TokenType)
	}
	if tokens.createCalls != 1 {
		t.Errorf("refresh token stored %d times, want 1", tokens.createCalls)
	}
	if users.users[1].LastLoginAt == nil {
		t.Error("last login time was not recorded")
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	users := newFakeUserStore(activeAdmin("Pandu#2025"))
	svc := newTestAuthService(users, newFakeTokenStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@pandu.go.id",
		Password: "wrong",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login with wrong password = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@pandu.go.id",
		Password: "whatever",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login with unknown email = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthLogin_DisabledAccount(t *testing.T) {
	admin := activeAdmin("Pandu#2025")
	admin.IsActive = false
	svc := newTestAuthService(newFakeUserStore(admin), newFakeTokenStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@pandu.go.id",
		Password: "Pandu#2025",
	})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Errorf("Login on disabled account = %v, want ErrAccountDisabled", err)
	}
}

func TestAuthRefreshToken_RotatesToken(t *testing.T) {
	users := newFakeUserStore(activeAdmin("Pandu#2025"))
	tokens := newFakeTokenStore()
	svc := newTestAuthService(users, tokens)

	first, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@pandu.go.id",
		Password: "Pandu#2025",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	second, err := svc.RefreshToken(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken returned error: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("refresh token was not rotated")
	}
	if !tokens.revoked[first.RefreshToken] {
		t.Error("old refresh token was not revoked")
	}

	// The revoked token must not be replayable.
	if _, err := svc.RefreshToken(context.Background(), first.RefreshToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("replayed refresh = %v, want ErrTokenRevoked", err)
	}
}

func TestAuthRegisterAdmin_DuplicateEmail(t *testing.T) {
	users := newFakeUserStore(activeAdmin("Pandu#2025"))
	svc := newTestAuthService(users, newFakeTokenStore())

	_, err := svc.RegisterAdmin(context.Background(), "ADMIN@pandu.go.id", "Other#123", "Second Admin", models.RoleAdmin)
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("RegisterAdmin with duplicate email = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestAuthDeleteAdmin_RefusesSelfDeletion(t *testing.T) {
	users := newFakeUserStore(activeAdmin("Pandu#2025"))
	svc := newTestAuthService(users, newFakeTokenStore())

	if err := svc.DeleteAdmin(context.Background(), 1, 1); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("DeleteAdmin on own account = %v, want ErrPermissionDenied", err)
	}
	if _, ok := users.users[1]; !ok {
		t.Error("account was deleted despite the refusal")
	}
}

func TestAuthUpdateAdmin_DeactivationRevokesSessions(t *testing.T) {
	superadmin := activeAdmin("Pandu#2025")
	superadmin.RoleType = models.RoleSuperadmin
	target := activeAdmin("Other#123")
	target.Email = "staf@pandu.go.id"
	users := newFakeUserStore(superadmin, target)
	tokens := newFakeTokenStore()
	svc := newTestAuthService(users, tokens)

	updated, err := svc.UpdateAdmin(context.Background(), 1, 2, "Staf Nonaktif", models.RoleAdmin, false)
	if err != nil {
		t.Fatalf("UpdateAdmin returned error: %v", err)
	}
	if updated.IsActive {
		t.Error("account is still active after deactivation")
	}
	if len(tokens.revokedAll) != 1 || tokens.revokedAll[0] != 2 {
		t.Error("disabled account kept its refresh tokens")
	}

	// A superadmin cannot deactivate their own account.
	if _, err := svc.UpdateAdmin(context.Background(), 1, 1, "Saya", models.RoleSuperadmin, false); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("self-deactivation = %v, want ErrPermissionDenied", err)
	}
}

func TestAuthChangePassword_RevokesSessions(t *testing.T) {
	users := newFakeUserStore(activeAdmin("Pandu#2025"))
	tokens := newFakeTokenStore()
	svc := newTestAuthService(users, tokens)

	if err := svc.ChangePassword(context.Background(), 1, "Pandu#2025", "Baru#2026"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if len(tokens.revokedAll) != 1 || tokens.revokedAll[0] != 1 {
		t.Error("outstanding refresh tokens were not revoked")
	}
	if !auth.CheckPassword(users.users[1].Password, "Baru#2026") {
		t.Error("new password was not stored")
	}

	if err := svc.ChangePassword(context.Background(), 1, "Pandu#2025", "X"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("ChangePassword with stale current password = %v, want ErrInvalidCredentials", err)
	}
}
