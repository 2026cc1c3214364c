package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tinytales/storefront/internal/apiclient"
	"tinytales/storefront/internal/catalog"
	"tinytales/storefront/internal/config"
	"tinytales/storefront/internal/middleware"
	"tinytales/storefront/internal/service"
	"tinytales/storefront/internal/session"
	"tinytales/storefront/internal/storage"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	api         *apiclient.Client
	authService *service.AuthService
	sessions    session.Store
	cookie      session.CookieOptions
	assets      *storage.AssetStore
	product     catalog.Product
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, api *apiclient.Client, sessions session.Store, assets *storage.AssetStore) HandlerSet {
	return HandlerSet{
		log:         log,
		cfg:         cfg,
		api:         api,
		authService: service.NewAuthService(api, log),
		sessions:    sessions,
		cookie: session.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.SecureCookie,
			TTL:    cfg.Session.TTL,
		},
		assets:  assets,
		product: catalog.Featured(),
	}
}

func (h HandlerSet) Register(router gin.IRouter) {
	router.GET("/healthz", h.Health)

	pages := router.Group("/")
	pages.Use(middleware.Session(h.sessions, h.cookie))
	{
		pages.GET(service.RouteLogin, h.ShowLogin)
		pages.POST(service.RouteLogin, h.SubmitLogin)

		pages.GET(service.RouteRegister, h.ShowRegistration)
		pages.POST(service.RouteRegister, h.SubmitRegistration)

		pages.GET(service.RouteVerify, h.ShowVerify)
		pages.POST(service.RouteVerify, h.SubmitVerify)
		pages.POST(service.RouteVerify+"/resend", h.ResendCode)

		pages.GET(service.RouteDashboard, h.ShowDashboard)
		pages.POST("/logout", h.Logout)

		pages.GET(service.RouteProductDetails, h.ShowProduct)
	}
}
