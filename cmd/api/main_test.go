package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"qantora/auth"
	"qantora/waitlist"
)

type stubWaitlistService struct {
	result waitlist.Result
	calls  int
}

func (s *stubWaitlistService) Join(_ context.Context, _ waitlist.Submission) waitlist.Result {
	s.calls++
	return s.result
}

type stubProber struct {
	err error
}

func (s *stubProber) Ready(_ context.Context) error { return s.err }

type stubAuthService struct {
	user        *auth.User
	registerErr error
	loginResult auth.LoginResult
	loginErr    error
}

func (s *stubAuthService) Register(_ context.Context, _ auth.RegisterRequest) (*auth.User, error) {
	return s.user, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, _ auth.LoginRequest) (auth.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func TestHandleJoinWaitlist_Created(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	svc := &stubWaitlistService{
		result: waitlist.Result{
			Kind:    waitlist.ResultJoined,
			Message: "Successfully joined the waitlist!",
			Record: waitlist.Record{
				ID:        "row-1",
				FullName:  "Jordan Lee",
				Email:     "jordan@example.com",
				Username:  "jlee",
				Status:    waitlist.StatusPending,
				CreatedAt: now,
			},
		},
	}
	server := NewServer(nil, svc, &stubProber{}, &stubAuthService{})

	body := strings.NewReader(`{"full_name":"Jordan Lee","email":"jordan@example.com","username":"jlee"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", body)
	rec := httptest.NewRecorder()

	server.handleJoinWaitlist(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp joinResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data == nil || resp.Data.ID != "row-1" || resp.Data.Status != "pending" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp.Data.CreatedAt != now.Format(time.RFC3339) {
		t.Fatalf("expected createdAt %s, got %s", now.Format(time.RFC3339), resp.Data.CreatedAt)
	}
	if svc.calls != 1 {
		t.Fatalf("expected one join call, got %d", svc.calls)
	}
}

func TestHandleJoinWaitlist_ValidationRejected(t *testing.T) {
	svc := &stubWaitlistService{}
	server := NewServer(nil, svc, &stubProber{}, &stubAuthService{})

	cases := []string{
		`{"full_name":"","email":"jordan@example.com","username":"jlee"}`,
		`{"full_name":"Jordan Lee","email":"jordan.example.com","username":"jlee"}`,
		`{"full_name":"Jordan Lee","email":"jordan@example.com","username":"  "}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(body))
		rec := httptest.NewRecorder()

		server.handleJoinWaitlist(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if svc.calls != 0 {
		t.Fatalf("invalid submissions reached the service: %d calls", svc.calls)
	}
}

func TestHandleJoinWaitlist_OutcomeStatusCodes(t *testing.T) {
	cases := []struct {
		kind waitlist.ResultKind
		want int
	}{
		{waitlist.ResultDuplicateEmail, http.StatusConflict},
		{waitlist.ResultStoreUnavailable, http.StatusServiceUnavailable},
		{waitlist.ResultFailed, http.StatusBadGateway},
	}
	for _, tc := range cases {
		server := NewServer(nil, &stubWaitlistService{result: waitlist.Result{Kind: tc.kind, Message: "m"}}, &stubProber{}, &stubAuthService{})

		body := strings.NewReader(`{"full_name":"Jordan Lee","email":"jordan@example.com","username":"jlee"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/waitlist", body)
		rec := httptest.NewRecorder()

		server.handleJoinWaitlist(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("kind %d: expected %d, got %d", tc.kind, tc.want, rec.Code)
		}
		var resp joinResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Success {
			t.Fatalf("kind %d: expected success=false", tc.kind)
		}
	}
}

func TestHandleJoinWaitlist_WrongMethod(t *testing.T) {
	server := NewServer(nil, &stubWaitlistService{}, &stubProber{}, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/waitlist", nil)
	rec := httptest.NewRecorder()

	server.handleJoinWaitlist(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandleWaitlistHealth(t *testing.T) {
	server := NewServer(nil, &stubWaitlistService{}, &stubProber{}, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/waitlist/health", nil)
	rec := httptest.NewRecorder()

	server.handleWaitlistHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	server = NewServer(nil, &stubWaitlistService{}, &stubProber{err: waitlist.ErrTableMissing}, &stubAuthService{})
	rec = httptest.NewRecorder()

	server.handleWaitlistHealth(rec, httptest.NewRequest(http.MethodGet, "/api/waitlist/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "waitlist table missing") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleRegister(t *testing.T) {
	server := NewServer(nil, &stubWaitlistService{}, &stubProber{}, &stubAuthService{
		user: &auth.User{ID: "user-1", Email: "jordan@example.com", FullName: "Jordan Lee"},
	})

	body := strings.NewReader(`{"email":"jordan@example.com","password":"strongpassword","full_name":"Jordan Lee"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()

	server.handleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "user-1" || resp.Email != "jordan@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	server := NewServer(nil, &stubWaitlistService{}, &stubProber{}, &stubAuthService{
		registerErr: auth.ErrDuplicateEmail,
	})

	body := strings.NewReader(`{"email":"jordan@example.com","password":"strongpassword","full_name":"Jordan Lee"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()

	server.handleRegister(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	server := NewServer(nil, &stubWaitlistService{}, &stubProber{}, &stubAuthService{
		loginErr: auth.ErrInvalidCredentials,
	})

	body := strings.NewReader(`{"email":"jordan@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()

	server.handleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleLogin_Success(t *testing.T) {
	server := NewServer(nil, &stubWaitlistService{}, &stubProber{}, &stubAuthService{
		loginResult: auth.LoginResult{
			Token: "tok",
			User:  auth.User{ID: "user-1", Email: "jordan@example.com", FullName: "Jordan Lee"},
		},
	})

	body := strings.NewReader(`{"email":"jordan@example.com","password":"strongpassword"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()

	server.handleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "tok" || resp.User.ID != "user-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
