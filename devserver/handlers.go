package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/surveydesk/go-console/api"
)

// Handler returns the routed HTTP surface of the dev server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/Auth/login", s.handleLogin)
	r.Get("/User/me", s.handleMe)
	r.Get("/TwoFactorRequest/Status/{id}", s.handleTwoFactorStatus)

	r.Get("/Task/assigned", s.handleAssignedTasks)
	r.Post("/Task/{id}/complete", s.handleCompleteTask)
	r.Get("/Record", s.handleRecords)
	r.Get("/Record/{id}", s.handleRecord)
	r.Get("/ApplicationType", s.handleApplicationTypes)
	r.Get("/Attachment", s.handleAttachments)

	return r
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	account := s.accounts[strings.ToLower(req.Email)]
	s.lock.Unlock()

	if account == nil || account.Password != req.Password {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if account.TwoFactor {
		id := uuid.New().String()
		s.lock.Lock()
		s.requests[id] = &twoFactorRequest{account: account}
		s.lock.Unlock()

		log.Info().Str("request_id", id).Str("email", req.Email).Msg("two-factor login pending")
		writeJSON(w, api.LoginResponse{TwoFactor: &api.TwoFactorChallenge{ID: id, Method: "push"}})
		return
	}

	tok, err := s.IssueToken(account.Profile)
	if err != nil {
		log.Err(err).Msg("token issue failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, api.LoginResponse{User: &account.Profile, Token: tok})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	account := s.authenticate(r)
	if account == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, account.Profile)
}

func (s *Server) handleTwoFactorStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.lock.Lock()
	req := s.requests[id]
	if req != nil {
		req.checks++
	}
	s.lock.Unlock()

	if req == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if req.checks <= req.account.ResolveAfter {
		writeJSON(w, api.TwoFactorStatusResponse{Status: api.TwoFactorPending})
		return
	}

	outcome := req.account.Outcome
	if outcome == "" {
		outcome = api.TwoFactorApproved
	}
	if outcome != api.TwoFactorApproved {
		writeJSON(w, api.TwoFactorStatusResponse{Status: outcome})
		return
	}

	tok, err := s.IssueToken(req.account.Profile)
	if err != nil {
		log.Err(err).Msg("token issue failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, api.TwoFactorStatusResponse{
		Status: api.TwoFactorApproved,
		User:   &req.account.Profile,
		Token:  tok,
	})
}

func (s *Server) handleAssignedTasks(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(r) == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	s.lock.Lock()
	tasks := append([]api.Task(nil), s.tasks...)
	s.lock.Unlock()

	writePage(w, r, tasks, func(t api.Task) string { return t.Title })
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(r) == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = "done"
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(r) == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	s.lock.Lock()
	records := append([]api.Record(nil), s.records...)
	s.lock.Unlock()

	writePage(w, r, records, func(rec api.Record) string { return rec.Reference })
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(r) == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	for _, rec := range s.records {
		if rec.ID == id {
			writeJSON(w, rec)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) handleApplicationTypes(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(r) == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	s.lock.Lock()
	appTypes := append([]api.ApplicationType(nil), s.appTypes...)
	s.lock.Unlock()

	writePage(w, r, appTypes, func(a api.ApplicationType) string { return a.Name })
}

func (s *Server) handleAttachments(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(r) == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	s.lock.Lock()
	attachments := append([]api.Attachment(nil), s.attachments...)
	s.lock.Unlock()

	writePage(w, r, attachments, func(a api.Attachment) string { return a.FileName })
}

func (s *Server) authenticate(r *http.Request) *Account {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	return s.accountForToken(strings.TrimPrefix(header, "Bearer "))
}

// writePage applies search and paging query parameters to items and writes
// the resulting page. searchText extracts the field the search filter runs on.
func writePage[T any](w http.ResponseWriter, r *http.Request, items []T, searchText func(T) string) {
	q := r.URL.Query()

	if search := strings.ToLower(q.Get("search")); search != "" {
		filtered := make([]T, 0, len(items))
		for _, item := range items {
			if strings.Contains(strings.ToLower(searchText(item)), search) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	writeJSON(w, api.Page[T]{
		Items:      items[start:end],
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("response encode failed")
	}
}
