package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tinytales/storefront/internal/middleware"
	"tinytales/storefront/internal/service"
	"tinytales/storefront/internal/session"
	"tinytales/storefront/internal/web"
)

func (h HandlerSet) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, web.LoginTemplate, loginPage(service.LoginInput{}))
}

func (h HandlerSet) SubmitLogin(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		data := loginPage(input)
		data.Error = validationMessage(err)
		c.HTML(http.StatusBadRequest, web.LoginTemplate, data)
		return
	}

	out, err := h.authService.Login(c.Request.Context(), middleware.CurrentSession(c), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	if out.Redirect != "" {
		h.signedIn(c, out.Redirect)
		return
	}
	c.HTML(http.StatusOK, web.LoginTemplate, loginPage(input).with(out))
}

// signedIn reissues the cookie for the id the flow rotated to.
func (h HandlerSet) signedIn(c *gin.Context, location string) {
	session.SetCookie(c.Writer, middleware.CurrentSession(c).ID(), h.cookie)
	redirectAfterPost(c, location)
}

func loginPage(input service.LoginInput) page {
	input.Password = ""
	return page{Title: "Login", Panel: loginPanel, Form: input}
}

func (h HandlerSet) ShowRegistration(c *gin.Context) {
	c.HTML(http.StatusOK, web.RegisterTemplate, registerPage(service.NewRegisterInput()))
}

func (h HandlerSet) SubmitRegistration(c *gin.Context) {
	input := service.NewRegisterInput()
	if err := c.ShouldBind(&input); err != nil {
		data := registerPage(input)
		data.Error = validationMessage(err)
		c.HTML(http.StatusBadRequest, web.RegisterTemplate, data)
		return
	}

	out, err := h.authService.Register(c.Request.Context(), middleware.CurrentSession(c), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	if out.Redirect != "" {
		h.signedIn(c, out.Redirect)
		return
	}
	c.HTML(http.StatusOK, web.RegisterTemplate, registerPage(input).with(out))
}

func registerPage(input service.RegisterInput) page {
	input.Password = ""
	input.PasswordConfirmation = ""
	return page{Title: "Register", Panel: registerPanel, Form: input}
}
