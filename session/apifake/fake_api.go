// Package apifake provides a scriptable in-memory API for session tests.
package apifake

import (
	"context"
	"sync"

	"github.com/surveydesk/go-console/api"
	"github.com/surveydesk/go-console/session"
)

var _ session.API = (*FakeAPI)(nil)

// FakeAPI implements session.API with scripted responses. Configure the
// exported fields before use; calls record into the unexported state guarded
// by the lock.
type FakeAPI struct {
	LoginResponse *api.LoginResponse
	LoginErr      error
	MeProfile     *api.Profile
	MeErr         error

	// StatusErrCount transport-level failures are returned before the
	// scripted responses start; StatusResponses is then consumed one entry
	// per check, with the final entry repeating.
	StatusErr       error
	StatusErrCount  int
	StatusResponses []*api.TwoFactorStatusResponse

	lock        sync.Mutex
	credential  string
	statusCalls []string
}

func New() *FakeAPI {
	return &FakeAPI{}
}

func (f *FakeAPI) Login(_ context.Context, _ api.LoginRequest) (*api.LoginResponse, error) {
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginResponse, nil
}

func (f *FakeAPI) Me(_ context.Context) (*api.Profile, error) {
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	return f.MeProfile, nil
}

func (f *FakeAPI) TwoFactorStatus(_ context.Context, id string) (*api.TwoFactorStatusResponse, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.statusCalls = append(f.statusCalls, id)
	call := len(f.statusCalls)

	if call <= f.StatusErrCount {
		return nil, f.StatusErr
	}
	if len(f.StatusResponses) == 0 {
		return &api.TwoFactorStatusResponse{Status: api.TwoFactorPending}, nil
	}

	idx := call - f.StatusErrCount - 1
	if idx >= len(f.StatusResponses) {
		idx = len(f.StatusResponses) - 1
	}
	return f.StatusResponses[idx], nil
}

func (f *FakeAPI) SetCredential(token string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.credential = token
}

func (f *FakeAPI) ClearCredential() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.credential = ""
}

// Credential returns the currently installed default bearer credential.
func (f *FakeAPI) Credential() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.credential
}

// StatusCalls returns the request ids of all status checks so far.
func (f *FakeAPI) StatusCalls() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	out := make([]string, len(f.statusCalls))
	copy(out, f.statusCalls)
	return out
}

// StatusCallsFor counts status checks issued for the given request id.
func (f *FakeAPI) StatusCallsFor(id string) int {
	count := 0
	for _, call := range f.StatusCalls() {
		if call == id {
			count++
		}
	}
	return count
}
