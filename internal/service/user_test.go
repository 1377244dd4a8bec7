package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"noteapi/internal/model"
	repoMocks "noteapi/internal/repository/mocks"
)

var testSecret = []byte("test-secret")

func newTestUserService(mRepo *repoMocks.MockUserRepository) UserService {
	return NewUserService(mRepo, testSecret, time.Hour)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)

		mRepo.On("FindByEmail", ctx, "bob@x.com").Return(nil, sql.ErrNoRows)
		mRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			if u.ID == "" || u.Email != "bob@x.com" || u.CreatedAt.IsZero() {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")) == nil
		})).Return(&model.User{ID: "gen-id", Email: "bob@x.com"}, nil)

		user, err := svc.Register(ctx, " Bob@X.com ", "hunter22")

		assert.NoError(t, err)
		assert.Equal(t, "bob@x.com", user.Email)
		mRepo.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)
		mRepo.On("FindByEmail", ctx, "bob@x.com").Return(&model.User{ID: "u1"}, nil)

		_, err := svc.Register(ctx, "bob@x.com", "hunter22")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("password too short", func(t *testing.T) {
		svc := newTestUserService(new(repoMocks.MockUserRepository))
		_, err := svc.Register(ctx, "bob@x.com", "abc")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("empty email", func(t *testing.T) {
		svc := newTestUserService(new(repoMocks.MockUserRepository))
		_, err := svc.Register(ctx, "  ", "hunter22")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{ID: "u1", Email: "bob@x.com", PasswordHash: string(hash)}

	t.Run("token subject is the user id", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)
		mRepo.On("FindByEmail", ctx, "bob@x.com").Return(stored, nil)

		tokenString, err := svc.Login(ctx, "bob@x.com", "hunter22")
		require.NoError(t, err)

		token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
			return testSecret, nil
		})
		require.NoError(t, err)
		sub, err := token.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "u1", sub)
	})

	t.Run("wrong password", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)
		mRepo.On("FindByEmail", ctx, "bob@x.com").Return(stored, nil)

		_, err := svc.Login(ctx, "bob@x.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)
		mRepo.On("FindByEmail", ctx, "ghost@x.com").Return(nil, sql.ErrNoRows)

		_, err := svc.Login(ctx, "ghost@x.com", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store error is not a credential error", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)
		mRepo.On("FindByEmail", ctx, "bob@x.com").Return(nil, errors.New("db fail"))

		_, err := svc.Login(ctx, "bob@x.com", "hunter22")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_ResolveEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("single match", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)
		mRepo.On("FindByEmail", ctx, "bob@x.com").Return(&model.User{ID: "u1", Email: "bob@x.com"}, nil)

		user, err := svc.ResolveEmail(ctx, "bob@x.com")
		assert.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("zero matches", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)
		mRepo.On("FindByEmail", ctx, "ghost@x.com").Return(nil, sql.ErrNoRows)

		_, err := svc.ResolveEmail(ctx, "ghost@x.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_EmailOf(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)
		mRepo.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1", Email: "bob@x.com"}, nil)

		email, err := svc.EmailOf(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, "bob@x.com", email)
	})

	t.Run("missing", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := newTestUserService(mRepo)
		mRepo.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)

		_, err := svc.EmailOf(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
