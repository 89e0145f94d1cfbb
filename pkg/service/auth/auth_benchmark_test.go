package auth_test

import (
	"io"
	"log/slog"
	"testing"

	authsvc "github.com/amirasaad/compago/pkg/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func BenchmarkAuthenticate_Success(b *testing.B) {
	s, err := authsvc.NewWithPin("1234", bcrypt.DefaultCost, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		_ = s.Authenticate(b.Context(), "1234")
	}
}

func BenchmarkAuthenticate_Rejected(b *testing.B) {
	s, err := authsvc.NewWithPin("1234", bcrypt.DefaultCost, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		_ = s.Authenticate(b.Context(), "0000")
	}
}
