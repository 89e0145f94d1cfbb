package webapi_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/compago/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type RateLimitTestSuite struct {
	testutils.APITestSuite
}

func (s *RateLimitTestSuite) SetupTest() {
	cfg := testutils.TestConfig()
	cfg.RateLimit.MaxRequests = 5
	cfg.RateLimit.Window = time.Second
	s.Build(cfg)
}

func (s *RateLimitTestSuite) TestRateLimit() {
	for i := range 6 {
		resp := s.MakeRequest(fiber.MethodGet, "/", "")
		_ = resp.Body.Close()
		if i < 5 {
			s.Equal(fiber.StatusOK, resp.StatusCode, "Expected OK for request %d", i+1)
		} else {
			s.Equal(fiber.StatusTooManyRequests, resp.StatusCode, "Expected Too Many Requests for request %d", i+1)
		}
	}

	// Wait for the rate limit window to reset
	time.Sleep(1100 * time.Millisecond)

	resp := s.MakeRequest(fiber.MethodGet, "/", "")
	_ = resp.Body.Close()
	s.Equal(fiber.StatusOK, resp.StatusCode, "Expected OK after rate limit reset")
}

func (s *RateLimitTestSuite) TestForwardedForKeysSeparately() {
	for i := range 5 {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 172.16.0.1")
		resp, err := s.Fiber.Test(req, -1)
		s.Require().NoError(err)
		_ = resp.Body.Close()
		s.Equal(fiber.StatusOK, resp.StatusCode, "request %d", i+1)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.2")
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func TestRateLimitTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimitTestSuite))
}
