// Package devserver is an in-memory stand-in for the SurveyDesk API. It backs
// integration tests with a real HTTP boundary and lets the console run
// offline. It is not the product API: nothing persists, passwords are plain
// strings, and issued tokens are signed with a throwaway key.
package devserver

import (
	"strings"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/surveydesk/go-console/api"
)

const defaultTokenTTL = 8 * time.Hour

// Account is a seeded login. When TwoFactor is set, login parks on an
// approval request that resolves to Outcome after ResolveAfter status checks.
type Account struct {
	Profile      api.Profile
	Password     string
	TwoFactor    bool
	Outcome      api.TwoFactorStatus
	ResolveAfter int
}

type twoFactorRequest struct {
	account *Account
	checks  int
}

// Server holds the in-memory fixture data.
type Server struct {
	signingKey []byte
	tokenTTL   time.Duration

	lock        sync.Mutex
	accounts    map[string]*Account // keyed by email
	requests    map[string]*twoFactorRequest
	tasks       []api.Task
	records     []api.Record
	appTypes    []api.ApplicationType
	attachments []api.Attachment
}

// Option defines a function type to modify the Server instance.
type Option func(*Server)

// WithTokenTTL sets the lifetime of issued tokens. Negative values issue
// already-expired tokens, which tests use to exercise restoration.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.tokenTTL = ttl
	}
}

// WithSigningKey replaces the throwaway token signing key.
func WithSigningKey(key []byte) Option {
	return func(s *Server) {
		s.signingKey = key
	}
}

// New creates an empty dev server.
func New(options ...Option) *Server {
	s := &Server{
		signingKey: []byte("surveydesk-dev"),
		tokenTTL:   defaultTokenTTL,
		accounts:   make(map[string]*Account),
		requests:   make(map[string]*twoFactorRequest),
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// AddAccount seeds a login.
func (s *Server) AddAccount(account Account) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.accounts[strings.ToLower(account.Profile.Email)] = &account
}

// SeedTasks replaces the task fixture data.
func (s *Server) SeedTasks(tasks []api.Task) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.tasks = tasks
}

// SeedRecords replaces the survey record fixture data.
func (s *Server) SeedRecords(records []api.Record) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.records = records
}

// SeedApplicationTypes replaces the application type fixture data.
func (s *Server) SeedApplicationTypes(appTypes []api.ApplicationType) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.appTypes = appTypes
}

// SeedAttachments replaces the attachment fixture data.
func (s *Server) SeedAttachments(attachments []api.Attachment) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.attachments = attachments
}

// IssueToken mints a bearer token for the profile with the standard identity
// claims.
func (s *Server) IssueToken(profile api.Profile) (string, error) {
	claims := jwtlib.MapClaims{
		"sub":  profile.Email,
		"uid":  profile.ID,
		"role": profile.RoleIdentifier,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "[Server.IssueToken] sign")
	}
	return signed, nil
}

func (s *Server) accountForToken(rawToken string) *Account {
	parsed, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil
	}
	sub, _ := claims["sub"].(string)

	s.lock.Lock()
	defer s.lock.Unlock()
	return s.accounts[strings.ToLower(sub)]
}
