package session_test

// End-to-end coverage: the session manager driving the real HTTP client
// against the in-memory dev server.

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/surveydesk/go-console/api"
	"github.com/surveydesk/go-console/credstore/storefake"
	"github.com/surveydesk/go-console/devserver"
	"github.com/surveydesk/go-console/session"
	"github.com/surveydesk/go-console/users"
)

func TestEndToEndTwoFactorLogin(t *testing.T) {
	server := devserver.New()
	server.AddAccount(devserver.Account{
		Profile: api.Profile{
			ID: 2, Email: "user@example.com",
			RoleIdentifier: "User", RoleName: "User",
			FirstName: "Uma", LastName: "Reyes",
		},
		Password:     "secret",
		TwoFactor:    true,
		Outcome:      api.TwoFactorApproved,
		ResolveAfter: 1,
	})
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	client := api.New(ts.URL)
	store := storefake.NewFakeStore()
	manager, err := session.NewManager(client, store, session.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(manager.Close)

	ctx := context.Background()
	manager.Initialize(ctx)
	require.Equal(t, session.StateLoggedOut, manager.State().Kind)

	require.NoError(t, manager.Login(ctx, "user@example.com", "secret"))
	require.True(t, manager.State().IsTwoFactorPending())

	require.Eventually(t, func() bool {
		return manager.State().IsLoggedIn()
	}, 2*time.Second, 10*time.Millisecond)

	user := manager.CurrentUser()
	require.Equal(t, users.RoleUser, user.Role)
	require.Equal(t, "Uma Reyes", user.FullName())
	require.NotEmpty(t, store.Token())

	// The established credential backs follow-up API calls without wiring.
	profile, err := client.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", profile.Email)
}

func TestEndToEndRestoration(t *testing.T) {
	server := devserver.New()
	account := devserver.Account{
		Profile: api.Profile{
			ID: 1, Email: "manager@example.com",
			RoleIdentifier: "Manager", RoleName: "Manager",
			FirstName: "Morgan", LastName: "Hale",
		},
		Password: "secret",
	}
	server.AddAccount(account)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	store := storefake.NewFakeStore()
	ctx := context.Background()

	// First run: log in and persist the credential.
	{
		client := api.New(ts.URL)
		manager, err := session.NewManager(client, store)
		require.NoError(t, err)
		manager.Initialize(ctx)
		require.NoError(t, manager.Login(ctx, "manager@example.com", "secret"))
		require.True(t, manager.State().IsLoggedIn())
		manager.Close()
	}
	require.NotEmpty(t, store.Token())

	// Second run: the stored token restores the session without credentials.
	{
		client := api.New(ts.URL)
		manager, err := session.NewManager(client, store)
		require.NoError(t, err)
		t.Cleanup(manager.Close)

		manager.Initialize(ctx)
		state := manager.State()
		require.True(t, state.IsLoggedIn())
		require.Equal(t, users.RoleManager, state.User.Role)
	}
}

func TestEndToEndRestorationWithExpiredToken(t *testing.T) {
	server := devserver.New(devserver.WithTokenTTL(-time.Hour))
	profile := api.Profile{ID: 1, Email: "manager@example.com", RoleIdentifier: "Manager"}
	server.AddAccount(devserver.Account{Profile: profile, Password: "secret"})
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	expired, err := server.IssueToken(profile)
	require.NoError(t, err)

	store := storefake.NewFakeStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, expired))

	manager, err := session.NewManager(api.New(ts.URL), store)
	require.NoError(t, err)
	t.Cleanup(manager.Close)

	manager.Initialize(ctx)
	require.True(t, manager.IsInitialized())
	require.Equal(t, session.StateLoggedOut, manager.State().Kind)
	require.Empty(t, store.Token())
}
