package service

import (
	"context"

	"tinytales/storefront/internal/models"
)

const msgProfileUnavailable = "We could not load your profile right now."

type DashboardView struct {
	Outcome
	User *models.User
}

// Dashboard always re-fetches the profile; the cached copy is never trusted
// here. A rejected fetch means the token is no longer good, so the visitor
// is logged out instead of being shown an error.
func (s *AuthService) Dashboard(ctx context.Context, sess SessionRepository) (DashboardView, error) {
	token, err := sess.Token(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	if token == "" {
		return DashboardView{Outcome: Outcome{Redirect: RouteLogin}}, nil
	}

	env, err := s.api.Get(ctx, PathUserData, token)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return DashboardView{}, ctxErr
		}
		s.logTransport(err, "dashboard")
		return DashboardView{Outcome: Outcome{Error: msgProfileUnavailable}}, nil
	}
	if err := ctx.Err(); err != nil {
		return DashboardView{}, err
	}

	if !env.Status {
		s.log.Info().Str("visitor", sess.ID()).Msg("profile fetch rejected, ending session")
		out, err := s.Logout(ctx, sess)
		return DashboardView{Outcome: out}, err
	}

	user := &models.User{}
	if env.HasData() {
		if err := env.DecodeData(user); err != nil {
			s.log.Warn().Err(err).Msg("profile payload not understood")
		} else if err := sess.SaveUser(ctx, env.Data); err != nil {
			return DashboardView{}, err
		}
	}
	return DashboardView{User: user}, nil
}

// Logout tells the backend on a best-effort basis, then clears the local
// session whatever the backend said.
func (s *AuthService) Logout(ctx context.Context, sess SessionRepository) (Outcome, error) {
	token, err := sess.Token(ctx)
	if err != nil {
		return Outcome{}, err
	}

	if token != "" {
		if _, err := s.api.Post(ctx, PathLogout, nil, token); err != nil {
			s.log.Warn().Err(err).Str("visitor", sess.ID()).Msg("backend logout failed")
		}
	}

	local := context.WithoutCancel(ctx)
	if err := sess.RemoveToken(local); err != nil {
		return Outcome{}, err
	}
	if err := sess.RemoveUser(local); err != nil {
		return Outcome{}, err
	}
	return Outcome{Redirect: RouteLogin}, nil
}
