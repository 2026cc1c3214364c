package service

import (
	"context"
	"strings"

	"tinytales/storefront/internal/apiclient"
)

const (
	msgNeedSession = "Please login or register first."

	msgVerifyFailed     = "Verification failed. Try again."
	msgVerifyUnexpected = "An unexpected error occurred during verification."

	msgResendOK         = "A new verification code has been sent successfully."
	msgResendFailed     = "Resend failed. Please try again."
	msgResendUnexpected = "An unexpected error occurred while resending the code."
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// NormalizeCode keeps only ASCII digits and truncates to CodeLength.
func NormalizeCode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == CodeLength {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// VerifyGuard sends visitors without a session back to login.
func (s *AuthService) VerifyGuard(ctx context.Context, sess SessionRepository) (Outcome, error) {
	token, err := sess.Token(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if token == "" {
		return Outcome{Redirect: RouteLogin}, nil
	}
	return Outcome{}, nil
}

// Verify submits the emailed code. On success the cached profile is
// refreshed from the backend before moving on to the dashboard.
func (s *AuthService) Verify(ctx context.Context, sess SessionRepository, code string) (Outcome, error) {
	token, err := sess.Token(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if token == "" {
		return Outcome{Error: msgNeedSession}, nil
	}

	release, ok := s.latch.Acquire(sess.ID(), "verify")
	if !ok {
		return Outcome{Error: msgBusy}, nil
	}
	defer release()

	env, err := s.api.Post(ctx, PathVerifyEmail, map[string]string{"code": NormalizeCode(code)}, token)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		s.logTransport(err, "verify")
		return Outcome{Error: msgVerifyUnexpected}, nil
	}
	if !env.Status {
		return Outcome{Error: apiclient.ErrorMessage(env, msgVerifyFailed)}, nil
	}

	userEnv, err := s.api.Get(ctx, PathUserData, token)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		s.logTransport(err, "verify")
		return Outcome{Error: msgVerifyUnexpected}, nil
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	if userEnv.Status && userEnv.HasData() {
		if err := sess.SaveUser(ctx, userEnv.Data); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{Redirect: RouteDashboard}, nil
}

// Resend asks the backend for a fresh code. It has its own latch so it
// never waits on a pending Verify.
func (s *AuthService) Resend(ctx context.Context, sess SessionRepository) (Outcome, error) {
	token, err := sess.Token(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if token == "" {
		return Outcome{Error: msgNeedSession}, nil
	}

	release, ok := s.latch.Acquire(sess.ID(), "resend")
	if !ok {
		return Outcome{Error: msgBusy}, nil
	}
	defer release()

	env, err := s.api.Post(ctx, PathResendCode, nil, token)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		s.logTransport(err, "resend")
		return Outcome{Error: msgResendUnexpected}, nil
	}
	if env.Status {
		return Outcome{Notice: msgResendOK}, nil
	}
	return Outcome{Error: apiclient.ErrorMessage(env, msgResendFailed)}, nil
}
