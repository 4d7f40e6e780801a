package biz

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/painpoint_scout/app/scout/internal/conf"
)

// mockUserRepo 模拟用户仓库
type mockUserRepo struct {
	users map[string]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*User{}}
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *User) error {
	if _, ok := m.users[u.Email]; ok {
		return ErrUserExists
	}
	u.ID = len(m.users) + 1
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, errors.NotFound("USER_NOT_FOUND", "user not found")
	}
	cp := *u
	return &cp, nil
}

func TestUserUseCase_SignUpAndSignIn(t *testing.T) {
	repo := newMockUserRepo()
	uc := NewUserUseCase(repo, &conf.Auth{JwtKey: "test-key"}, log.DefaultLogger)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	uc.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, uc.SignUp(ctx, "  Founder@Example.com ", "hunter22"))
	stored := repo.users["founder@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)

	token, err := uc.SignIn(ctx, "founder@example.com", "hunter22")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-key"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }))
	require.NoError(t, err)
	assert.Equal(t, "founder@example.com", claims["email"])
	assert.EqualValues(t, fixed.Add(TokenTTL).Unix(), claims["exp"])
}

func TestUserUseCase_SignUpValidation(t *testing.T) {
	uc := NewUserUseCase(newMockUserRepo(), nil, log.DefaultLogger)
	ctx := context.Background()

	assert.True(t, errors.Is(uc.SignUp(ctx, "not-an-email", "hunter22"), ErrInvalidEmail))
	assert.True(t, errors.Is(uc.SignUp(ctx, "a@b.co", "123"), ErrWeakPassword))

	require.NoError(t, uc.SignUp(ctx, "a@b.co", "hunter22"))
	assert.True(t, errors.Is(uc.SignUp(ctx, "A@B.co", "hunter22"), ErrUserExists))
}

func TestUserUseCase_SignInFailures(t *testing.T) {
	uc := NewUserUseCase(newMockUserRepo(), nil, log.DefaultLogger)
	ctx := context.Background()
	require.NoError(t, uc.SignUp(ctx, "a@b.co", "hunter22"))

	_, err := uc.SignIn(ctx, "a@b.co", "wrong-password")
	assert.True(t, errors.Is(err, ErrInvalidLogin))

	// 账号不存在与密码错误返回同样的错误
	_, err = uc.SignIn(ctx, "nobody@b.co", "hunter22")
	assert.True(t, errors.Is(err, ErrInvalidLogin))
}

func TestUserUseCase_Unavailable(t *testing.T) {
	uc := NewUserUseCase(nil, nil, log.DefaultLogger)
	assert.True(t, errors.Is(uc.SignUp(context.Background(), "a@b.co", "hunter22"), ErrAuthUnavailable))
	_, err := uc.SignIn(context.Background(), "a@b.co", "hunter22")
	assert.True(t, errors.Is(err, ErrAuthUnavailable))
}
