package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"tinytales/storefront/internal/apiclient"
	"tinytales/storefront/internal/models"
)

// Storefront routes a flow may send the visitor to.
const (
	RouteLogin          = "/"
	RouteRegister       = "/register"
	RouteVerify         = "/verify"
	RouteDashboard      = "/dashboard"
	RouteProductDetails = "/product-details"
)

// Backend endpoints.
const (
	PathLogin       = "/auth/login"
	PathRegister    = "/auth/register"
	PathVerifyEmail = "/auth/verify-email"
	PathResendCode  = "/auth/verify-email/resend-code"
	PathUserData    = "/auth/user-data"
	PathLogout      = "/auth/logout"
)

const (
	msgBusy = "A request is already in progress."

	msgLoginFailed     = "Login failed. Please check your details."
	msgLoginUnexpected = "An unexpected error occurred during login."

	msgRegisterFailed     = "Registration failed. Please review your data."
	msgRegisterUnexpected = "An unexpected error occurred during registration."
)

// Backend is the subset of the API client the flows need.
type Backend interface {
	Post(ctx context.Context, path string, fields map[string]string, token string) (apiclient.Envelope, error)
	Get(ctx context.Context, path string, token string) (apiclient.Envelope, error)
}

// SessionRepository is one visitor's persisted session. session.Vault is the
// production implementation.
type SessionRepository interface {
	ID() string
	SaveToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	RemoveToken(ctx context.Context) error
	SaveUser(ctx context.Context, user any) error
	User(ctx context.Context, dst any) (bool, error)
	RemoveUser(ctx context.Context) error
	// Rotate moves the session to a new id; ID reports the new one after.
	Rotate(ctx context.Context) error
}

// Outcome is what a page does after a flow step: navigate, or stay and show
// an error or a status notice.
type Outcome struct {
	Redirect string
	Error    string
	Notice   string
}

type AuthService struct {
	api   Backend
	latch *Latch
	log   zerolog.Logger
}

func NewAuthService(api Backend, log zerolog.Logger) *AuthService {
	return &AuthService{
		api:   api,
		latch: NewLatch(),
		log:   log.With().Str("component", "auth_service").Logger(),
	}
}

type LoginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (in LoginInput) fields() map[string]string {
	return map[string]string{
		"email":    in.Email,
		"password": in.Password,
	}
}

type RegisterInput struct {
	Name                 string `form:"name" binding:"required"`
	Email                string `form:"email" binding:"required,email"`
	Mobile               string `form:"mobile" binding:"required"`
	MobileCountryCode    string `form:"mobile_country_code" binding:"required"`
	Password             string `form:"password" binding:"required"`
	PasswordConfirmation string `form:"password_confirmation" binding:"required"`
}

// NewRegisterInput is the blank registration form.
func NewRegisterInput() RegisterInput {
	return RegisterInput{MobileCountryCode: "971"}
}

func (in RegisterInput) fields() map[string]string {
	return map[string]string{
		"name":                  in.Name,
		"email":                 in.Email,
		"mobile":                in.Mobile,
		"mobile_country_code":   in.MobileCountryCode,
		"password":              in.Password,
		"password_confirmation": in.PasswordConfirmation,
	}
}

// Login authenticates against the backend and, when a token comes back,
// starts the visitor's session and sends them to the dashboard.
func (s *AuthService) Login(ctx context.Context, sess SessionRepository, input LoginInput) (Outcome, error) {
	return s.authenticate(ctx, sess, authAttempt{
		action:     "login",
		path:       PathLogin,
		fields:     input.fields(),
		next:       RouteDashboard,
		failed:     msgLoginFailed,
		unexpected: msgLoginUnexpected,
	})
}

// Register creates the account. Registration alone does not reach the
// dashboard; the visitor must verify first.
func (s *AuthService) Register(ctx context.Context, sess SessionRepository, input RegisterInput) (Outcome, error) {
	return s.authenticate(ctx, sess, authAttempt{
		action:     "register",
		path:       PathRegister,
		fields:     input.fields(),
		next:       RouteVerify,
		failed:     msgRegisterFailed,
		unexpected: msgRegisterUnexpected,
	})
}

type authAttempt struct {
	action     string
	path       string
	fields     map[string]string
	next       string
	failed     string
	unexpected string
}

func (s *AuthService) authenticate(ctx context.Context, sess SessionRepository, attempt authAttempt) (Outcome, error) {
	release, ok := s.latch.Acquire(sess.ID(), attempt.action)
	if !ok {
		return Outcome{Error: msgBusy}, nil
	}
	defer release()

	env, err := s.api.Post(ctx, attempt.path, attempt.fields, "")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		s.logTransport(err, attempt.action)
		return Outcome{Error: attempt.unexpected}, nil
	}
	// The page request is gone; the session must not change behind it.
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	var user models.User
	if env.Status && env.DecodeData(&user) == nil && user.Token != "" {
		// A pre-login visitor id may have been planted; never promote it.
		if err := sess.Rotate(ctx); err != nil {
			return Outcome{}, err
		}
		if err := sess.SaveToken(ctx, user.Token); err != nil {
			return Outcome{}, err
		}
		if err := sess.SaveUser(ctx, env.Data); err != nil {
			return Outcome{}, err
		}
		s.log.Info().Str("action", attempt.action).Str("visitor", sess.ID()).Msg("session started")
		return Outcome{Redirect: attempt.next}, nil
	}

	return Outcome{Error: apiclient.ErrorMessage(env, attempt.failed)}, nil
}

func (s *AuthService) logTransport(err error, action string) {
	event := s.log.Warn()
	if errors.Is(err, apiclient.ErrBaseURLUnset) {
		event = s.log.Error()
	}
	event.Err(err).Str("action", action).Msg("backend request failed")
}
