package middleware

import (
	"github.com/gin-gonic/gin"

	"tinytales/storefront/internal/session"
)

const sessionContextKey = "visitor_session"

// Session resolves the visitor cookie to a session.Vault, issuing a new id
// when the cookie is missing or not a well-formed id. Any well-formed id is
// accepted here; sign-in rotates it. The cookie is rewritten on every page so
// its lifetime slides with the server-side record.
func Session(store session.Store, opts session.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(opts.Name)
		if err != nil || !session.ValidID(id) {
			id = session.NewID()
		}
		session.SetCookie(c.Writer, id, opts)

		c.Set(sessionContextKey, session.NewVault(store, id))
		c.Next()
	}
}

// CurrentSession returns the vault installed by Session, or nil on routes
// that are not behind it.
func CurrentSession(c *gin.Context) *session.Vault {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	vault, _ := v.(*session.Vault)
	return vault
}
