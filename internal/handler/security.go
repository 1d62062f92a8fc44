package handler

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
)

// realm is sent in the WWW-Authenticate challenge for admin endpoints.
const realm = "SAJJ Admin"

// requireAdmin guards admin endpoints with HTTP Basic auth. Credentials are
// compared as SHA-256 digests in constant time to avoid both length leaks
// and timing side-channels. With no admin password configured the guard is
// disabled, which keeps local development friction-free.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.AdminPass == "" {
			next(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok || !equalDigest(user, h.cfg.AdminUser) || !equalDigest(pass, h.cfg.AdminPass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

func equalDigest(got, want string) bool {
	g := sha256.Sum256([]byte(got))
	w := sha256.Sum256([]byte(want))
	return subtle.ConstantTimeCompare(g[:], w[:]) == 1
}
