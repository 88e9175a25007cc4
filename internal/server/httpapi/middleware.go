package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/passkeep/passkeep/internal/common"
	"github.com/passkeep/passkeep/internal/server/auth"
)

// requireToken gates record and password endpoints behind a Bearer access
// token issued by the login endpoint.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		if err := auth.VerifyToken(token, []byte(s.config.SecretKey)); err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				s.writeError(w, http.StatusUnauthorized, "token expired")
				return
			}
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
