package storefake

import (
	"context"
	"sync"

	"github.com/surveydesk/go-console/credstore"
)

var _ credstore.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credential store for tests.
type FakeStore struct {
	lock  sync.RWMutex
	token string
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (f *FakeStore) Load(_ context.Context) (string, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.token, nil
}

func (f *FakeStore) Save(_ context.Context, token string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.token = token
	return nil
}

func (f *FakeStore) Clear(_ context.Context) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.token = ""
	return nil
}

// Token returns the currently stored token for assertions.
func (f *FakeStore) Token() string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.token
}
