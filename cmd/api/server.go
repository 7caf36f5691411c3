package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"qantora/auth"
	"qantora/waitlist"
)

// waitlistJoiner is the slice of the waitlist service the server needs.
type waitlistJoiner interface {
	Join(ctx context.Context, sub waitlist.Submission) waitlist.Result
}

// readinessProber reports whether the waitlist store is provisioned.
type readinessProber interface {
	Ready(ctx context.Context) error
}

// authService is the slice of the auth service the server needs.
type authService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error)
}

// Server wires HTTP handlers to the domain services.
type Server struct {
	log          *zap.Logger
	waitlistSvc  waitlistJoiner
	waitlistRepo readinessProber
	authSvc      authService
}

// NewServer builds a Server over the given services.
func NewServer(log *zap.Logger, waitlistSvc waitlistJoiner, waitlistRepo readinessProber, authSvc authService) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		log:          log,
		waitlistSvc:  waitlistSvc,
		waitlistRepo: waitlistRepo,
		authSvc:      authSvc,
	}
}

// Routes returns the HTTP mux for the API surface.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/waitlist", s.handleJoinWaitlist)
	mux.HandleFunc("/api/waitlist/health", s.handleWaitlistHealth)
	mux.HandleFunc("/api/auth/register", s.handleRegister)
	mux.HandleFunc("/api/auth/login", s.handleLogin)
	return mux
}

type waitlistRecordResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type joinResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    *waitlistRecordResponse `json:"data,omitempty"`
}

func (s *Server) handleJoinWaitlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var sub waitlist.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, joinResponse{Success: false, Message: "invalid request body"})
		return
	}

	// Same gates the form enforces step by step.
	if !waitlist.ValidFullName(sub.FullName) || !waitlist.ValidEmail(sub.Email) || !waitlist.ValidUsername(sub.Username) {
		writeJSON(w, http.StatusBadRequest, joinResponse{Success: false, Message: "full_name, email and username are required"})
		return
	}

	result := s.waitlistSvc.Join(r.Context(), sub)

	resp := joinResponse{Success: result.Joined(), Message: result.Message}
	if result.Record.ID != "" {
		resp.Data = &waitlistRecordResponse{
			ID:        result.Record.ID,
			FullName:  result.Record.FullName,
			Email:     result.Record.Email,
			Username:  result.Record.Username,
			Status:    string(result.Record.Status),
			CreatedAt: result.Record.CreatedAt.Format(time.RFC3339),
		}
	}

	switch result.Kind {
	case waitlist.ResultJoined:
		writeJSON(w, http.StatusCreated, resp)
	case waitlist.ResultDuplicateEmail:
		writeJSON(w, http.StatusConflict, resp)
	case waitlist.ResultStoreUnavailable:
		s.log.Warn("waitlist store unavailable")
		writeJSON(w, http.StatusServiceUnavailable, resp)
	default:
		s.log.Error("waitlist join failed", zap.String("email", sub.Email))
		writeJSON(w, http.StatusBadGateway, resp)
	}
}

func (s *Server) handleWaitlistHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.waitlistRepo.Ready(r.Context()); err != nil {
		status := http.StatusServiceUnavailable
		msg := "waitlist store unavailable"
		if errors.Is(err, waitlist.ErrTableMissing) {
			msg = "waitlist table missing; apply migrations"
		} else {
			s.log.Error("waitlist readiness probe", zap.Error(err))
		}
		writeJSON(w, status, map[string]string{"status": "unavailable", "message": msg})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := s.authSvc.Register(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email, FullName: user.FullName})
	case errors.Is(err, auth.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "email already registered"})
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.log.Error("register", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "registration failed"})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := s.authSvc.Login(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"token": result.Token,
			"user":  userResponse{ID: result.User.ID, Email: result.User.Email, FullName: result.User.FullName},
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	default:
		s.log.Error("login", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
