package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// GenerateToken issues an HS256 bearer token accepted by the http transport.
func GenerateToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("server.jwt_secret is not configured")
	}
	if subject == "" {
		subject = "anonymous"
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
	}
	if ttl > 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// authenticate returns the token subject of an authorized request.
func authenticate(r *http.Request, secret string) (string, error) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("no token provided")
	}

	parsed, err := jwt.Parse(strings.TrimSpace(token), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		sub = "anonymous"
	}
	return sub, nil
}

// requireAuth guards next when a secret is configured.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	secret := s.config.Server.JWTSecret
	if secret == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := authenticate(r, secret)
		if err != nil {
			s.logger.Warn("Rejected unauthenticated request",
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.Error(err),
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="modelbridge"`)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		s.logger.Debug("Authenticated request", zap.String("sub", sub), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
