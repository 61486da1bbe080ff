package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/metrics"
)

// ProfileGate tells whether the signed-in user finished onboarding.
// It fails closed: any error is reported as "no profile".
type ProfileGate struct {
	backend ports.ProfileBackend
	log     zerolog.Logger
}

func NewProfileGate(backend ports.ProfileBackend, log zerolog.Logger) *ProfileGate {
	return &ProfileGate{backend: backend, log: log}
}

func (g *ProfileGate) HasCompletedProfile(ctx context.Context, sess domain.Session) bool {
	if sess.Token == "" {
		metrics.ProfileGateTotal.WithLabelValues("error").Inc()
		return false
	}

	ok, err := g.backend.CheckProfile(ctx, sess.Token)
	if err != nil {
		g.log.Warn().Err(err).Str("email", sess.Email).Msg("profile check failed, gate closed")
		metrics.ProfileGateTotal.WithLabelValues("error").Inc()
		return false
	}
	if !ok {
		metrics.ProfileGateTotal.WithLabelValues("closed").Inc()
		return false
	}
	metrics.ProfileGateTotal.WithLabelValues("open").Inc()
	return true
}
