// Package backendtest provides an in-memory stand-in for the tracking
// backend, used by client and service tests. It speaks the backend's REST
// contract: bearer-token auth, {"detail": ...} error bodies, and the
// collection routes the dashboard consumes.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

// Account is a seed login for the fake backend.
type Account struct {
	User     domain.User
	Password string
}

// Server is a fake tracking backend bound to an httptest.Server.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	accounts      map[string]account // username -> hashed credentials
	tokens        map[string]domain.User
	nextUserID    int64
	nextToken     int
	Shipments     []domain.Shipment
	Feedbacks     []domain.Feedback
	Issues        []domain.Issue
	AuditTrail    []domain.BackendAuditRecord
	Beneficiaries int64
	ReportRows    []ports.ReportRow
	Settings      ports.Settings
	Scans         []ports.ScanPayload
	Assignments   []ports.AssignShipmentInput

	// LogsAliasOnly makes /audit_trails/ answer 404 so the client must use
	// the /logs/ alias.
	LogsAliasOnly bool
}

type account struct {
	user domain.User
	hash []byte
}

// New starts a fake backend seeded with the given accounts.
func New(accounts ...Account) *Server {
	s := &Server{
		accounts:   make(map[string]account),
		tokens:     make(map[string]domain.User),
		nextUserID: 1000,
		Settings:   ports.Settings{},
	}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("backendtest: hash password: %v", err))
		}
		s.accounts[a.User.Username] = account{user: a.User, hash: hash}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.route))
	return s
}

// TokenFor mints a bearer token for a seeded user, bypassing login.
func (s *Server) TokenFor(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[username]
	if !ok {
		panic("backendtest: unknown account " + username)
	}
	return s.issueToken(acc.user)
}

func (s *Server) issueToken(u domain.User) string {
	s.nextToken++
	token := fmt.Sprintf("tok-%s-%d", u.Username, s.nextToken)
	s.tokens[token] = u
	return token
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/auth/login" && r.Method == http.MethodPost {
		s.handleLogin(w, r)
		return
	}

	if _, ok := s.authenticate(r); !ok {
		detail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case r.URL.Path == "/shipments/" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.Shipments)
	case r.URL.Path == "/users/" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.userList())
	case r.URL.Path == "/users/" && r.Method == http.MethodPost:
		s.handleCreateUser(w, r)
	case strings.HasPrefix(r.URL.Path, "/users/") && r.Method == http.MethodPatch:
		s.handlePatchUser(w, r)
	case r.URL.Path == "/feedbacks/" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.Feedbacks)
	case r.URL.Path == "/feedbacks/" && r.Method == http.MethodPost:
		s.handlePostFeedback(w, r)
	case r.URL.Path == "/issues/" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.Issues)
	case r.URL.Path == "/audit_trails/" && r.Method == http.MethodGet:
		if s.LogsAliasOnly {
			detail(w, http.StatusNotFound, "Not Found")
			return
		}
		writeJSON(w, http.StatusOK, s.AuditTrail)
	case r.URL.Path == "/logs/" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.AuditTrail)
	case r.URL.Path == "/beneficiaries/total" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]int64{"total": s.Beneficiaries})
	case strings.HasSuffix(r.URL.Path, "/scan") && r.Method == http.MethodPost:
		s.handleScan(w, r)
	case r.URL.Path == "/shipments/assign" && r.Method == http.MethodPost:
		s.handleAssign(w, r)
	case r.URL.Path == "/reports/shipments" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.ReportRows)
	case r.URL.Path == "/admin/settings" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.Settings)
	case r.URL.Path == "/admin/settings" && r.Method == http.MethodPost:
		s.handleSaveSettings(w, r)
	default:
		detail(w, http.StatusNotFound, "Not Found")
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		detailList(w, http.StatusUnprocessableEntity, "value is not a valid dict")
		return
	}
	if creds.Username == "" || creds.Password == "" {
		detailList(w, http.StatusUnprocessableEntity, "field required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[creds.Username]
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(creds.Password)) != nil {
		detail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	if !acc.user.Active {
		detail(w, http.StatusUnauthorized, "Inactive user")
		return
	}

	writeJSON(w, http.StatusOK, ports.LoginResult{
		AccessToken: s.issueToken(acc.user),
		User:        acc.user,
	})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in ports.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detailList(w, http.StatusUnprocessableEntity, "value is not a valid dict")
		return
	}
	if _, exists := s.accounts[in.Username]; exists {
		detail(w, http.StatusConflict, "Username already registered")
		return
	}
	s.nextUserID++
	u := domain.User{ID: s.nextUserID, Username: in.Username, Role: in.Role, Active: true}
	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.MinCost)
	s.accounts[in.Username] = account{user: u, hash: hash}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handlePatchUser(w http.ResponseWriter, r *http.Request) {
	raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users/"), "/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		detail(w, http.StatusNotFound, "Not Found")
		return
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		detailList(w, http.StatusUnprocessableEntity, "value is not a valid dict")
		return
	}
	for name, acc := range s.accounts {
		if acc.user.ID == id {
			acc.user.Active = body.Active
			s.accounts[name] = acc
			writeJSON(w, http.StatusOK, acc.user)
			return
		}
	}
	detail(w, http.StatusNotFound, "User not found")
}

func (s *Server) handlePostFeedback(w http.ResponseWriter, r *http.Request) {
	var f domain.Feedback
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		detailList(w, http.StatusUnprocessableEntity, "value is not a valid dict")
		return
	}
	f.ID = int64(len(s.Feedbacks) + 1)
	if f.SubmittedAt.IsZero() {
		f.SubmittedAt = time.Now().UTC()
	}
	s.Feedbacks = append(s.Feedbacks, f)
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/shipments/"), "/scan")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		detail(w, http.StatusNotFound, "Not Found")
		return
	}
	var found bool
	for _, sh := range s.Shipments {
		if sh.ID == id {
			found = true
			break
		}
	}
	if !found {
		detail(w, http.StatusNotFound, "Shipment not found")
		return
	}
	var p ports.ScanPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		detailList(w, http.StatusUnprocessableEntity, "value is not a valid dict")
		return
	}
	s.Scans = append(s.Scans, p)
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var in ports.AssignShipmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detailList(w, http.StatusUnprocessableEntity, "value is not a valid dict")
		return
	}
	for i, sh := range s.Shipments {
		if sh.ID == in.ShipmentID {
			s.Shipments[i].DistributorID = in.DistributorID
			s.Assignments = append(s.Assignments, in)
			writeJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
			return
		}
	}
	detail(w, http.StatusNotFound, "Shipment not found")
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var in ports.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detailList(w, http.StatusUnprocessableEntity, "value is not a valid dict")
		return
	}
	s.Settings = in
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) authenticate(r *http.Request) (domain.User, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return domain.User{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.tokens[token]
	return u, ok
}

func (s *Server) userList() []domain.User {
	users := make([]domain.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		users = append(users, acc.user)
	}
	return users
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// detail writes the backend's plain error shape: {"detail": "<msg>"}.
func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// detailList writes the validation error shape: {"detail": [{"msg": ...}]}.
func detailList(w http.ResponseWriter, status int, msgs ...string) {
	items := make([]map[string]string, len(msgs))
	for i, m := range msgs {
		items[i] = map[string]string{"msg": m}
	}
	writeJSON(w, status, map[string]any{"detail": items})
}
