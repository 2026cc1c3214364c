package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"tinytales/storefront/internal/middleware"
	"tinytales/storefront/internal/service"
	"tinytales/storefront/internal/web"
)

type verifyForm struct {
	Code string `form:"code" binding:"required"`
}

func verifyPage(form verifyForm) page {
	form.Code = service.NormalizeCode(form.Code)
	return page{Title: "Verify", Panel: verifyPanel, Form: form}
}

func (h HandlerSet) ShowVerify(c *gin.Context) {
	out, err := h.authService.VerifyGuard(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if out.Redirect != "" {
		redirectGuard(c, out.Redirect)
		return
	}
	c.HTML(http.StatusOK, web.VerifyTemplate, verifyPage(verifyForm{}))
}

func (h HandlerSet) SubmitVerify(c *gin.Context) {
	// Validate what would actually be sent: "abc" normalises to nothing.
	form := verifyForm{Code: service.NormalizeCode(c.PostForm("code"))}
	if err := binding.Validator.ValidateStruct(&form); err != nil {
		data := verifyPage(form)
		data.Error = validationMessage(err)
		c.HTML(http.StatusBadRequest, web.VerifyTemplate, data)
		return
	}

	out, err := h.authService.Verify(c.Request.Context(), middleware.CurrentSession(c), form.Code)
	if err != nil {
		h.fail(c, err)
		return
	}
	if out.Redirect != "" {
		redirectAfterPost(c, out.Redirect)
		return
	}
	c.HTML(http.StatusOK, web.VerifyTemplate, verifyPage(form).with(out))
}

// ResendCode keeps whatever the visitor already typed in the code field.
func (h HandlerSet) ResendCode(c *gin.Context) {
	form := verifyForm{Code: c.PostForm("code")}

	out, err := h.authService.Resend(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, web.VerifyTemplate, verifyPage(form).with(out))
}
