package checkerserver

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
)

type subjectKey struct{}

func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("jwt.ParseRSAPublicKeyFromPEM: %w", err)
	}

	return key, nil
}

func verifyToken(accessToken string, publicKey *rsa.PublicKey) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodRSA)
		if !ok {
			return nil, ErrInvalidSigningMethod
		}

		return publicKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("jwt.ParseWithClaims: %w", errors.Join(ErrInvalidToken, err))
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if ok && token.Valid {
		return claims.Subject, nil
	}

	return "", ErrInvalidToken
}

func jwtAuth(publicKey *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			headerParts := strings.Split(r.Header.Get("Authorization"), " ")
			if len(headerParts) != 2 || headerParts[0] != "Bearer" {
				w.WriteHeader(http.StatusUnauthorized)

				return
			}

			subject, err := verifyToken(headerParts[1], publicKey)
			if errors.Is(err, ErrInvalidToken) {
				w.WriteHeader(http.StatusUnauthorized)

				return
			}

			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)

				return
			}

			r = r.WithContext(context.WithValue(r.Context(), subjectKey{}, subject))
			next.ServeHTTP(w, r)
		}

		return fn
	}
}

func (h *Handler) metric(next http.Handler) http.Handler {
	var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		pattern := chi.RouteContext(r.Context()).RoutePattern()

		h.metrics.duration.WithLabelValues(http.StatusText(ww.Status()), r.Method,
			pattern).Observe(time.Since(started).Seconds())
		h.metrics.requests.WithLabelValues(http.StatusText(ww.Status()), r.Method, pattern).Inc()
	}

	return fn
}
