package biz

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/iWorld-y/painpoint_scout/app/scout/internal/conf"
)

// MinPasswordLen 密码最短长度
const MinPasswordLen = 6

// TokenTTL 登录凭证有效期
const TokenTTL = 24 * time.Hour

var (
	ErrUserExists      = errors.Conflict("USER_EXISTS", "email already registered")
	ErrInvalidEmail    = errors.BadRequest("INVALID_EMAIL", "invalid email address")
	ErrWeakPassword    = errors.BadRequest("WEAK_PASSWORD", "password should be at least 6 characters")
	ErrInvalidLogin    = errors.Unauthorized("AUTH_FAILED", "invalid login credentials")
	ErrAuthUnavailable = errors.ServiceUnavailable("AUTH_UNAVAILABLE", "authentication is not configured")
)

// User 用户实体
type User struct {
	ID           int
	Email        string
	PasswordHash string
}

// UserRepo 用户仓库接口
type UserRepo interface {
	// CreateUser 创建用户，邮箱重复时返回 ErrUserExists
	CreateUser(ctx context.Context, u *User) error
	// GetUserByEmail 根据邮箱获取用户
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// UserUseCase 用户业务逻辑
type UserUseCase struct {
	repo   UserRepo
	log    *log.Helper
	jwtKey string
	now    func() time.Time
}

// NewUserUseCase 创建用户业务逻辑实例
func NewUserUseCase(repo UserRepo, auth *conf.Auth, logger log.Logger) *UserUseCase {
	jwtKey := "default-secret"
	if auth != nil && auth.JwtKey != "" {
		jwtKey = auth.JwtKey
	}
	return &UserUseCase{
		repo:   repo,
		log:    log.NewHelper(logger),
		jwtKey: jwtKey,
		now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp 用户注册
func (uc *UserUseCase) SignUp(ctx context.Context, email, password string) error {
	if uc.repo == nil {
		return ErrAuthUnavailable
	}
	email = normalizeEmail(email)
	if at := strings.Index(email, "@"); at <= 0 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLen {
		return ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.repo.CreateUser(ctx, &User{Email: email, PasswordHash: string(hashed)}); err != nil {
		return err
	}
	uc.log.Infof("user %s signed up", email)
	return nil
}

// SignIn 用户登录，返回 JWT
func (uc *UserUseCase) SignIn(ctx context.Context, email, password string) (string, error) {
	if uc.repo == nil {
		return "", ErrAuthUnavailable
	}
	u, err := uc.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// 不区分账号不存在与密码错误
		if errors.IsNotFound(err) {
			return "", ErrInvalidLogin
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidLogin
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.Itoa(u.ID),
		"email": u.Email,
		"exp":   uc.now().Add(TokenTTL).Unix(),
	})
	return token.SignedString([]byte(uc.jwtKey))
}
