// Package session owns authentication state for the console: credential
// lifecycle, login and logout, two-factor approval polling, and restoration
// of a previous session at startup.
package session

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/surveydesk/go-console/api"
	"github.com/surveydesk/go-console/credstore"
	"github.com/surveydesk/go-console/token"
	"github.com/surveydesk/go-console/users"
)

// DefaultPollInterval is the delay between two-factor status checks.
const DefaultPollInterval = 10 * time.Second

// clientName is sent as the login request's browser field. Advisory display
// metadata for the approval prompt, nothing more.
const clientName = "go-console"

// API is the slice of the REST client the session manager depends on.
// *api.Client satisfies it.
type API interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Me(ctx context.Context) (*api.Profile, error)
	TwoFactorStatus(ctx context.Context, id string) (*api.TwoFactorStatusResponse, error)
	SetCredential(token string)
	ClearCredential()
}

var _ API = (*api.Client)(nil)

// Manager is the owned session state object. All state transitions go through
// it; the durable credential slot and the client's default bearer header are
// written only here.
type Manager struct {
	api          API
	store        credstore.Store
	notifier     Notifier
	logger       zerolog.Logger
	pollInterval time.Duration

	lock        sync.Mutex
	state       State
	initialized bool
	closed      bool
	pollCancel  context.CancelFunc
	pollDone    chan struct{}
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithPollInterval sets the two-factor status poll interval.
func WithPollInterval(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.pollInterval = d
	}
}

// WithNotifier sets the surface user-visible session notices go to.
func WithNotifier(n Notifier) ManagerOption {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithLogger sets the manager's logger.
func WithLogger(l zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager initializes a Manager with required dependencies. Optional
// configuration can be provided via options.
func NewManager(apiClient API, store credstore.Store, options ...ManagerOption) (*Manager, error) {
	if apiClient == nil {
		return nil, errors.New("[NewManager] api client is required")
	}
	if store == nil {
		return nil, errors.New("[NewManager] credential store is required")
	}

	m := &Manager{
		api:          apiClient,
		store:        store,
		notifier:     NopNotifier{},
		logger:       zerolog.Nop(),
		pollInterval: DefaultPollInterval,
		state:        State{Kind: StateUninitialized},
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.state
}

// IsInitialized reports whether the startup restoration attempt has
// completed. False means the session state is unknown; consumers must block
// on it, never treat it as logged out.
func (m *Manager) IsInitialized() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.initialized
}

// CurrentUser returns the authenticated user, or nil outside StateLoggedIn.
func (m *Manager) CurrentUser() *users.User {
	return m.State().User
}

// Initialize restores a previous session from the durable credential slot. It
// runs once at startup; every failure is silent and fails closed to logged
// out. The manager is marked initialized regardless of outcome.
func (m *Manager) Initialize(ctx context.Context) {
	m.lock.Lock()
	if m.initialized || m.closed {
		m.lock.Unlock()
		return
	}
	m.state = State{Kind: StateRestoring}
	m.lock.Unlock()

	defer m.setInitialized()

	raw, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("credential load failed")
		m.transition(loggedOut())
		return
	}
	if raw == "" {
		m.transition(loggedOut())
		return
	}

	if !token.Verify(raw) {
		m.discardCredential(ctx)
		m.transition(loggedOut())
		return
	}

	m.api.SetCredential(raw)
	profile, err := m.api.Me(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("session restore failed")
		m.discardCredential(ctx)
		m.transition(loggedOut())
		return
	}

	m.transition(loggedIn(profile.User()))
}

// Login authenticates with the API. Depending on the account it either
// establishes the session immediately or parks it in StateTwoFactorPending,
// where the status poller resolves it. A request failure is returned to the
// caller and leaves the session state untouched.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, api.LoginRequest{
		Email:           email,
		Password:        password,
		DeviceName:      deviceName(),
		OperatingSystem: runtime.GOOS,
		Browser:         clientName,
	})
	if err != nil {
		return errors.Wrap(err, "[Manager.Login]")
	}

	if resp.Token != "" {
		if err := m.establish(ctx, resp.Token, resp.User); err != nil {
			return errors.Wrap(err, "[Manager.Login]")
		}
		return nil
	}

	if resp.TwoFactor != nil && resp.TwoFactor.ID != "" {
		m.transition(twoFactorPending(resp.TwoFactor))
		m.StartTwoFactorPolling(resp.TwoFactor.ID)
		return nil
	}

	return errors.Wrap(ErrUnexpectedLoginResponse, "[Manager.Login]")
}

// Register establishes a session from a signup result that returned an
// immediately usable credential.
func (m *Manager) Register(ctx context.Context, profile *api.Profile, rawToken string) error {
	if err := m.establish(ctx, rawToken, profile); err != nil {
		return errors.Wrap(err, "[Manager.Register]")
	}
	return nil
}

// Logout tears the session down unconditionally: poller stopped, persisted
// credential removed, state reset to logged out. No partial state survives;
// the shell is expected to discard everything it derived from the session.
func (m *Manager) Logout(ctx context.Context) {
	m.stopPolling()
	m.discardCredential(ctx)
	m.transition(loggedOut())
}

// Close tears the manager down. Late results from in-flight requests are
// discarded rather than applied to a dead session.
func (m *Manager) Close() {
	m.lock.Lock()
	if m.closed {
		m.lock.Unlock()
		return
	}
	m.closed = true
	done := m.pollDone
	m.cancelPollLocked()
	m.lock.Unlock()

	if done != nil {
		<-done
	}
}

// establish runs the shared token-validate/persist/populate sequence used by
// direct login, two-factor completion, and registration. The credential is
// never persisted unless the claims check passes.
func (m *Manager) establish(ctx context.Context, rawToken string, profile *api.Profile) error {
	claims, err := token.Decode(rawToken)
	if err != nil {
		return err
	}

	if err := m.store.Save(ctx, rawToken); err != nil {
		return errors.Wrap(err, "[Manager.establish] persist credential")
	}
	m.api.SetCredential(rawToken)

	var user *users.User
	if profile != nil {
		user = profile.User()
	} else {
		user = &users.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
	}

	m.transition(loggedIn(user))
	return nil
}

func (m *Manager) transition(next State) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.closed {
		return
	}
	m.state = next
}

func (m *Manager) setInitialized() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.initialized = true
}

// discardCredential drops the persisted token and the client's default
// bearer header. A failing store delete is logged and otherwise ignored; the
// in-memory session is already gone.
func (m *Manager) discardCredential(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("credential clear failed")
	}
	m.api.ClearCredential()
}

func deviceName() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}
