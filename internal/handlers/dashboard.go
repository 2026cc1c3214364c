package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tinytales/storefront/internal/middleware"
	"tinytales/storefront/internal/session"
	"tinytales/storefront/internal/web"
)

func (h HandlerSet) ShowDashboard(c *gin.Context) {
	view, err := h.authService.Dashboard(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if view.Redirect != "" {
		redirectGuard(c, view.Redirect)
		return
	}

	data := page{
		Title:   "Dashboard",
		Chrome:  true,
		Visitor: h.visitorName(c),
	}.with(view.Outcome)
	if view.User != nil {
		data.Body = view.User
	}
	c.HTML(http.StatusOK, web.DashboardTemplate, data)
}

// Logout also drops the visitor cookie so the next page starts a fresh
// session.
func (h HandlerSet) Logout(c *gin.Context) {
	out, err := h.authService.Logout(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	session.ClearCookie(c.Writer, h.cookie)
	redirectAfterPost(c, out.Redirect)
}
