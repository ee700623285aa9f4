package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/domain"
	apperrors "github.com/spec-kit/todo-service/pkg/util/errorutil"
)

// fakeUserRepo is an in-memory UserRepository. hideFromLookup makes GetByEmail
// miss while Create still detects duplicates, simulating a registration that
// loses the insert race to a concurrent writer.
type fakeUserRepo struct {
	mu             sync.Mutex
	byEmail        map[string]*domain.User
	byID           map[string]*domain.User
	seq            int
	calls          int
	hideFromLookup bool
	lookupErr      error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.CreatedAt = time.Now().UTC()
	stored := *user
	f.byEmail[user.Email] = &stored
	f.byID[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	user, ok := f.byEmail[email]
	if !ok || f.hideFromLookup {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func newTestAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
		BcryptCost:      bcrypt.MinCost,
	}, repo)
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()
	name := "Alice"

	registered, regToken, _, err := svc.Register(ctx, "alice@example.com", "password123", &name)
	require.NoError(t, err)
	require.NotEmpty(t, registered.ID)
	assert.NotEmpty(t, registered.PasswordHash)
	assert.NotEqual(t, "password123", registered.PasswordHash)

	loggedIn, loginToken, _, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)

	// Both tokens assert the same identity.
	for _, token := range []string{regToken, loginToken} {
		claims, err := svc.TokenManager().Verify(token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.Subject)
		assert.Equal(t, "alice@example.com", claims.Email)
	}
}

func TestAuthService_RegisterShortPasswordSkipsStore(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, _, _, err := svc.Register(context.Background(), "bob@example.com", "short", nil)
	assert.Equal(t, "INVALID_PASSWORD", domainCode(t, err))
	assert.Zero(t, repo.calls, "store must not be touched for invalid input")
}

func TestAuthService_RegisterInvalidEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserRepo())

	for _, email := range []string{"nouser@", "no-at-sign.com", "user@domain"} {
		_, _, _, err := svc.Register(context.Background(), email, "password123", nil)
		assert.Equal(t, "INVALID_EMAIL", domainCode(t, err), "email %q", email)
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "carol@example.com", "password123", nil)
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "carol@example.com", "different-pass", nil)
	assert.Equal(t, "EMAIL_TAKEN", domainCode(t, err))
}

func TestAuthService_RegisterRaceLostAtInsert(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "dave@example.com", "password123", nil)
	require.NoError(t, err)

	// Pre-check misses, insert collides: same external outcome as the
	// sequential duplicate.
	repo.hideFromLookup = true
	_, _, _, err = svc.Register(ctx, "dave@example.com", "password123", nil)
	assert.Equal(t, "EMAIL_TAKEN", domainCode(t, err))
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "erin@example.com", "password123", nil)
	require.NoError(t, err)

	_, _, _, wrongPassErr := svc.Login(ctx, "erin@example.com", "not-the-password")
	_, _, _, unknownErr := svc.Login(ctx, "ghost@example.com", "password123")

	var wrongPass, unknown *apperrors.DomainError
	require.ErrorAs(t, wrongPassErr, &wrongPass)
	require.ErrorAs(t, unknownErr, &unknown)

	assert.Equal(t, "INVALID_CREDENTIALS", wrongPass.Code)
	assert.Equal(t, wrongPass.Code, unknown.Code)
	assert.Equal(t, wrongPass.Message, unknown.Message)
	assert.Equal(t, wrongPass.HTTPStatus, unknown.HTTPStatus)
}

func TestAuthService_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.lookupErr = errors.New("connection refused")
	svc := newTestAuthService(repo)

	_, _, _, err := svc.Login(context.Background(), "erin@example.com", "password123")
	require.Error(t, err)

	// Infrastructure failures must stay distinct from credential rejections.
	var de *apperrors.DomainError
	assert.False(t, errors.As(err, &de))
}
