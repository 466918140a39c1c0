package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/todolist/api/pkg/auth"
)

type memUserRepo struct {
	byEmail map[string]auth.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]auth.User)}
}

func (r *memUserRepo) Create(_ context.Context, user auth.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return auth.ErrUserAlreadyExists
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (auth.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}

type staticTokens struct{}

func (staticTokens) Generate(_ context.Context, user auth.User) (string, error) {
	return "token-for-" + user.ID.String(), nil
}

func newService(repo auth.UserRepository) auth.AuthUseCase {
	return auth.NewAuthService(repo, staticTokens{})
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newService(repo)

	user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := newService(newMemUserRepo())

	user, err := svc.Register(context.Background(), "Ada", "  Ada@Example.COM ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	// Conflict regardless of the password value
	_, err = svc.Register(ctx, "Imposter", "ada@example.com", "different-pass")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
}

func TestLoginRoundTrip(t *testing.T) {
	svc := newService(newMemUserRepo())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, result.User.ID)
	assert.Equal(t, "token-for-"+registered.ID.String(), result.Token)
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	svc := newService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, wrongPass := svc.Login(ctx, "ada@example.com", "not-the-password")
	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "hunter22")

	// Same sentinel for both, so the API cannot leak which emails exist
	assert.ErrorIs(t, wrongPass, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
}

func TestRegisterRejectsEmptyInput(t *testing.T) {
	svc := newService(newMemUserRepo())

	_, err := svc.Register(context.Background(), "", "", "")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
