package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tinytales/storefront/internal/catalog"
	"tinytales/storefront/internal/service"
	"tinytales/storefront/internal/web"
)

type productBody struct {
	Page   catalog.Page
	Assets map[string]string
}

// ShowProduct is public. All page state comes from the query string.
func (h HandlerSet) ShowProduct(c *gin.Context) {
	view := catalog.ParseView(h.product, c.Request.URL.Query())

	c.HTML(http.StatusOK, web.ProductTemplate, page{
		Title:   h.product.ShortTitle,
		Chrome:  true,
		Visitor: h.visitorName(c),
		Body: productBody{
			Page:   catalog.BuildPage(service.RouteProductDetails, h.product, view),
			Assets: h.resolveAssets(c, h.product),
		},
	})
}

// resolveAssets maps every image key on the page to a URL. A key that cannot
// be presigned falls back to the static prefix.
func (h HandlerSet) resolveAssets(c *gin.Context, p catalog.Product) map[string]string {
	keys := make([]string, 0, len(p.Images)+len(p.Similar))
	for _, img := range p.Images {
		keys = append(keys, img.Key)
	}
	for _, item := range p.Similar {
		keys = append(keys, item.ImageKey)
	}

	urls := make(map[string]string, len(keys))
	for _, key := range keys {
		if _, done := urls[key]; done {
			continue
		}
		u, err := h.assets.URL(c.Request.Context(), key)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("key", key).Msg("asset url fallback")
			u = h.assets.StaticURL(key)
		}
		urls[key] = u
	}
	return urls
}
