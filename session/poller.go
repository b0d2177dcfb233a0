package session

import (
	"context"
	"time"

	"github.com/surveydesk/go-console/api"
)

// StartTwoFactorPolling watches the approval state of the login request id.
// One status check is issued immediately, then one per poll interval until a
// terminal outcome. At most one poll loop is ever active: starting while one
// runs cancels the previous loop first.
func (m *Manager) StartTwoFactorPolling(id string) {
	m.lock.Lock()
	if m.closed {
		m.lock.Unlock()
		return
	}
	m.cancelPollLocked()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.pollCancel = cancel
	m.pollDone = done
	m.lock.Unlock()

	go m.poll(ctx, id, done)
}

// PollingActive reports whether a two-factor poll loop is running. The shell
// uses it to render the waiting indicator.
func (m *Manager) PollingActive() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.pollCancel != nil
}

func (m *Manager) poll(ctx context.Context, id string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		if m.checkTwoFactor(ctx, id) {
			m.releasePollHandle(done)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// checkTwoFactor performs one status check and returns true on a terminal
// outcome. Transport errors are logged and swallowed; only a successfully
// retrieved terminal status ends the loop or is surfaced to the user.
func (m *Manager) checkTwoFactor(ctx context.Context, id string) bool {
	resp, err := m.api.TwoFactorStatus(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			m.logger.Warn().Err(err).Str("request_id", id).Msg("two-factor status check failed")
		}
		return false
	}

	switch resp.Status {
	case api.TwoFactorApproved:
		if err := m.establish(ctx, resp.Token, resp.User); err != nil {
			m.logger.Error().Err(err).Str("request_id", id).Msg("approved login carried an unusable token")
			m.notifier.Error("login failed: " + err.Error())
			m.transition(loggedOut())
			return true
		}
		m.notifier.Info("login approved")
		return true
	case api.TwoFactorDeclined, api.TwoFactorExpired:
		m.notifier.Error("two-factor request " + string(resp.Status))
		m.transition(loggedOut())
		return true
	default:
		// pending, or any future non-terminal value
		return false
	}
}

// releasePollHandle clears the poll handle if it still belongs to this loop.
// A restart may already have replaced it; that handle is not ours to touch.
func (m *Manager) releasePollHandle(done chan struct{}) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.pollDone == done {
		m.pollCancel()
		m.pollCancel = nil
		m.pollDone = nil
	}
}

// stopPolling cancels any active poll loop and waits for it to exit.
func (m *Manager) stopPolling() {
	m.lock.Lock()
	done := m.pollDone
	m.cancelPollLocked()
	m.lock.Unlock()

	if done != nil {
		<-done
	}
}

func (m *Manager) cancelPollLocked() {
	if m.pollCancel != nil {
		m.pollCancel()
		m.pollCancel = nil
		m.pollDone = nil
	}
}
