package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/post-review/internal/model"
	"github.com/d60-Lab/post-review/internal/repository"
)

func setupAuthService(t *testing.T) (AuthService, *miniredis.Miniredis) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tokens := NewRedisTokenStore(rdb)

	return NewAuthService(repository.NewUserRepository(db), tokens, "test-secret", time.Hour), mr
}

func TestRegisterLoginAuthenticate(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "password123",
		Role:     model.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.RoleManager, user.Role)
	assert.NotEqual(t, "password123", user.Password)

	token, logged, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	actor, claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.ID)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, model.RoleManager, claims.Role)
}

func TestRegisterDefaultsToAuthor(t *testing.T) {
	svc, _ := setupAuthService(t)
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAuthor, user.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "", Email: "a@b.c", Password: "password123"})
	assert.IsType(t, &ValidationError{}, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "not-an-email", Password: "password123"})
	assert.IsType(t, &ValidationError{}, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.c", Password: "short"})
	assert.IsType(t, &ValidationError{}, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.c", Password: "password123", Role: "superuser"})
	assert.IsType(t, &ValidationError{}, err)

	// 邮箱唯一
	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "password123"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "dup@example.com", Password: "password123"})
	assert.IsType(t, &ValidationError{}, err)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@example.com", "wrong-password")
	assert.IsType(t, &AuthorizationError{}, err)
	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.IsType(t, &AuthorizationError{}, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "a@example.com", "password123")
	require.NoError(t, err)

	_, claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, _, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc, _ := setupAuthService(t)
	_, _, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

// 存储层故障必须原样上抛，不得折叠成认证失败
func TestAuthenticateStorageFailure(t *testing.T) {
	svc, mr := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "a@example.com", "password123")
	require.NoError(t, err)

	mr.SetError("connection refused")
	_, _, err = svc.Authenticate(ctx, token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}
