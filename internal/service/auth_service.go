package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/post-review/internal/model"
	"github.com/d60-Lab/post-review/internal/repository"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role // 为空时默认 author
}

// Claims 访问令牌载荷；Subject = user id，ID = jti（吊销用）
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Logout(ctx context.Context, claims *Claims) error
	// Authenticate 解析校验 token 并加载用户，供认证中间件使用
	Authenticate(ctx context.Context, token string) (*model.User, *Claims, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenStore
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users repository.UserRepository, tokens TokenStore, secret string, ttl time.Duration) AuthService {
	return &authService{users: users, tokens: tokens, secret: []byte(secret), ttl: ttl}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	if len(in.Password) < 8 {
		return nil, &ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}
	role := in.Role
	if role == "" {
		role = model.RoleAuthor
	}
	if !role.Valid() {
		return nil, &ValidationError{Field: "role", Message: "must be one of author, manager, admin"}
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ValidationError{Field: "email", Message: "already taken"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, &AuthorizationError{Reason: "invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, &AuthorizationError{Reason: "invalid credentials"}
	}

	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout 把 jti 入黑名单直到 token 自然过期
func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.tokens.Revoke(ctx, claims.ID, ttl)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, *Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthenticated
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, nil, ErrUnauthenticated
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUnauthenticated
	}
	return user, claims, nil
}
