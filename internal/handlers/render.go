package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"tinytales/storefront/internal/middleware"
	"tinytales/storefront/internal/models"
	"tinytales/storefront/internal/service"
	"tinytales/storefront/internal/web"
)

type authPanel struct {
	Title       string
	Description string
}

var (
	loginPanel = authPanel{
		Title:       "Your baby-care store in one secure place.",
		Description: "Sign in to manage orders, explore products, and continue your Tinytales shopping journey.",
	}
	registerPanel = authPanel{
		Title:       "Create your account and start shopping with confidence.",
		Description: "Register once, verify your account, and manage everything from your Tinytales dashboard.",
	}
	verifyPanel = authPanel{
		Title:       "One final step to activate your account.",
		Description: "Enter your verification code and continue to your personalized Tinytales dashboard.",
	}
)

// page is the data every template receives.
type page struct {
	Title   string
	Chrome  bool
	Visitor string
	Error   string
	Notice  string
	Panel   authPanel
	Form    any
	Body    any
}

func (p page) with(out service.Outcome) page {
	p.Error = out.Error
	p.Notice = out.Notice
	return p
}

// fieldLabels names form fields the way the forms label them.
var fieldLabels = map[string]string{
	"Email":                "Email",
	"Password":             "Password",
	"Name":                 "Full Name",
	"Mobile":               "Phone Number",
	"MobileCountryCode":    "Country Code",
	"PasswordConfirmation": "Confirm Password",
	"Code":                 "Verification Code",
}

// validationMessage turns a binding failure into the single line shown above
// the submit button.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please check the form and try again."
	}

	fe := verrs[0]
	if fe.Tag() == "email" {
		return "Please enter a valid email address."
	}
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	return fmt.Sprintf("Please fill in %s.", label)
}

// redirectAfterPost sends the browser on with a GET.
func redirectAfterPost(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func redirectGuard(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// visitorName is the cached user's name for the header, if the session
// holds one.
func (h HandlerSet) visitorName(c *gin.Context) string {
	vault := middleware.CurrentSession(c)
	if vault == nil {
		return ""
	}
	var user models.User
	ok, err := vault.User(c.Request.Context(), &user)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("cached user unreadable")
		return ""
	}
	if !ok {
		return ""
	}
	return user.DisplayName()
}

// fail handles errors a flow could not turn into an Outcome. A request that
// was cancelled gets no response at all; anything else is a 500 page.
func (h HandlerSet) fail(c *gin.Context, err error) {
	logger := zerolog.Ctx(c.Request.Context())
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Debug().Err(err).Msg("request abandoned")
		c.Abort()
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.HTML(http.StatusInternalServerError, web.ErrorTemplate, page{
		Title: "Something went wrong",
		Error: "Please try again in a moment.",
	})
	c.Abort()
}
