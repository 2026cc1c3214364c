package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
)

// CookieOptions defines how the visitor cookie is issued.
type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// NewID returns a fresh visitor id.
func NewID() string {
	return ksuid.New().String()
}

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := ksuid.Parse(id)
	return err == nil
}

// SetCookie replaces any visitor cookie already queued on w.
func SetCookie(w http.ResponseWriter, id string, opts CookieOptions) {
	dropCookie(w.Header(), opts.Name)
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(opts.TTL / time.Second),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	dropCookie(w.Header(), opts.Name)
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func dropCookie(h http.Header, name string) {
	prefix := name + "="
	var kept []string
	for _, line := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(line, prefix) {
			kept = append(kept, line)
		}
	}
	h.Del("Set-Cookie")
	for _, line := range kept {
		h.Add("Set-Cookie", line)
	}
}
