package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sharveena123/paypals/internal/auth"
	"github.com/sharveena123/paypals/internal/models"
	"github.com/sharveena123/paypals/internal/storage"
	"github.com/sharveena123/paypals/internal/storage/sqlite"
)

// newTestStore opens a fresh on-disk database for one test.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "paypals-svc-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// registerUser creates an account through the real authenticator so the
// stored password hash is valid for login tests.
func registerUser(t *testing.T, store storage.Store, email, name string) *models.User {
	t.Helper()

	authenticator := auth.NewPasswordAuthenticator(store)
	user, err := authenticator.Register(context.Background(), email, name, "correct-horse")
	require.NoError(t, err)
	return user
}

func newTestJWT() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	store := newTestStore(t)
	svc := NewAuthService(auth.NewPasswordAuthenticator(store), newTestJWT())
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "alice@example.com", "Alice", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, token)

	t.Run("login with the right password", func(t *testing.T) {
		got, token, err := svc.Login(ctx, "alice@example.com", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.NotEmpty(t, token)
	})

	t.Run("login with the wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "alice@example.com", "Imposter", "correct-horse")
		require.ErrorIs(t, err, auth.ErrEmailExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "bob@example.com", "Bob", "short")
		require.ErrorIs(t, err, auth.ErrWeakPassword)
	})
}

func TestGroupServiceCreate(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := registerUser(t, store, "alice@example.com", "Alice")

	group, err := svc.Create(ctx, alice.ID, CreateGroupParams{
		Name:       "Ski Trip",
		GuestNames: []string{"Charlie"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, group.ID)

	members, err := svc.Members(ctx, alice.ID, group.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, alice.ID, members[0].Key)
	require.Equal(t, models.MemberRegistered, members[0].Kind)
	require.Equal(t, models.MemberGuest, members[1].Kind)
	require.Equal(t, "Charlie", members[1].DisplayName)

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, CreateGroupParams{})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown creator rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "no-such-user", CreateGroupParams{Name: "Ghost"})
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestGroupServiceAddMember(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := registerUser(t, store, "alice@example.com", "Alice")
	bob := registerUser(t, store, "bob@example.com", "Bob")

	group, err := svc.Create(ctx, alice.ID, CreateGroupParams{Name: "Flat"})
	require.NoError(t, err)

	t.Run("registered member by email", func(t *testing.T) {
		member, err := svc.AddMember(ctx, alice.ID, group.ID, AddMemberParams{Email: "bob@example.com"})
		require.NoError(t, err)
		require.Equal(t, bob.ID, member.Key)
		require.Equal(t, models.MemberRegistered, member.Kind)
	})

	t.Run("guest by display name", func(t *testing.T) {
		member, err := svc.AddMember(ctx, alice.ID, group.ID, AddMemberParams{GuestName: "Dana"})
		require.NoError(t, err)
		require.Equal(t, models.MemberGuest, member.Kind)
		require.NotEmpty(t, member.Key)
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		_, err := svc.AddMember(ctx, alice.ID, group.ID, AddMemberParams{Email: "nobody@example.com"})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-member cannot add", func(t *testing.T) {
		eve := registerUser(t, store, "eve@example.com", "Eve")
		_, err := svc.AddMember(ctx, eve.ID, group.ID, AddMemberParams{GuestName: "Mallory"})
		require.ErrorIs(t, err, ErrNotGroupMember)
	})
}

func TestGroupServiceDelete(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := registerUser(t, store, "alice@example.com", "Alice")
	bob := registerUser(t, store, "bob@example.com", "Bob")

	group, err := svc.Create(ctx, alice.ID, CreateGroupParams{Name: "Flat"})
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, alice.ID, group.ID, AddMemberParams{Email: "bob@example.com"})
	require.NoError(t, err)

	t.Run("only the creator may delete", func(t *testing.T) {
		err := svc.Delete(ctx, bob.ID, group.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("creator deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, alice.ID, group.ID))

		groups, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Empty(t, groups)
	})
}
