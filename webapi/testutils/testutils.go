// Package testutils provides an HTTP test suite over a fully wired controller.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/compago/infra/initializer"
	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/clock"
	"github.com/amirasaad/compago/pkg/config"
	"github.com/amirasaad/compago/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// Response mirrors common.Response with the data left raw for typed decoding.
type Response struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Problem mirrors common.ProblemDetails.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Errors any    `json:"errors"`
}

// TestConfig returns the stock configuration with a cheap bcrypt cost.
func TestConfig() *config.App {
	return &config.App{
		Env:  "test",
		Log:  &config.Log{Format: "text", Prefix: "[compago]"},
		Auth: &config.Auth{Pin: "1234", HashCost: bcrypt.MinCost},
		Payment: &config.Payment{
			SettlementDelay: 1500 * time.Millisecond,
			SettlementMode:  "intent",
			SourceAccount:   "Banesco",
			ReceiveAccount:  "Provincial",
			Currency:        "VES",
		},
		Notification: &config.Notification{TTL: 3 * time.Second},
		Receive:      &config.Receive{Phone: "04167890123", ID: "V-10000000", Bank: "COMPAGO Bank"},
		Dashboard:    &config.Dashboard{RecentLimit: 5},
		Seed:         &config.Seed{},
		RateLimit:    &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
}

// APITestSuite runs requests against webapi.SetupApp backed by a manual clock.
type APITestSuite struct {
	suite.Suite
	Clock *clock.Manual
	App   *app.App
	Fiber *fiber.App
}

// SetupTest builds a fresh controller for every test.
func (s *APITestSuite) SetupTest() {
	s.Build(TestConfig())
}

// Build replaces the controller with one built from cfg.
func (s *APITestSuite) Build(cfg *config.App) {
	if s.App != nil {
		_ = s.App.Close()
	}
	s.Clock = clock.NewManual(time.Date(2025, 1, 5, 9, 0, 0, 0, time.Local))
	var err error
	s.App, err = initializer.NewApp(cfg,
		initializer.WithClock(s.Clock),
		initializer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)
	s.Fiber = webapi.SetupApp(s.App)
}

// TearDownTest stops the controller loop.
func (s *APITestSuite) TearDownTest() {
	if s.App != nil {
		_ = s.App.Close()
		s.App = nil
	}
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *APITestSuite) MakeRequest(method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope and unmarshals its data into out when non-nil.
func (s *APITestSuite) Decode(resp *http.Response, out any) Response {
	defer resp.Body.Close() //nolint: errcheck
	var r Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&r))
	if out != nil {
		s.Require().NoError(json.Unmarshal(r.Data, out))
	}
	return r
}

// DecodeProblem reads a problem+json body.
func (s *APITestSuite) DecodeProblem(resp *http.Response) Problem {
	defer resp.Body.Close() //nolint: errcheck
	var p Problem
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&p))
	return p
}

// Login authenticates with the stock PIN.
func (s *APITestSuite) Login() {
	resp := s.MakeRequest(fiber.MethodPost, "/session/login", `{"pin":"1234"}`)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

// Advance moves the clock and waits for the callbacks it released to run.
func (s *APITestSuite) Advance(d time.Duration) {
	s.Clock.Advance(d)
	_, err := s.App.Snapshot(context.Background())
	s.Require().NoError(err)
}
