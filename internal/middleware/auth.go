package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// requestContextKeyType is a custom type for the identity context key to avoid collisions.
type requestContextKeyType struct{}

var requestContextKey = requestContextKeyType{}

// Claims defines the structure of the JWT claims expected from the token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// WithRequestContext stores the call identity in ctx.
func WithRequestContext(ctx context.Context, rc domain.RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// RequestContextFrom returns the identity stored by JWTAuth, or an anonymous one.
func RequestContextFrom(ctx context.Context) domain.RequestContext {
	if rc, ok := ctx.Value(requestContextKey).(domain.RequestContext); ok {
		return rc
	}
	return domain.Anonymous()
}

// JWTAuth builds the RequestContext of every request. A request without an
// Authorization header proceeds anonymously so public queries work; operations
// that need an identity reject it later. A header that is present but invalid
// is rejected here with 401.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), domain.Anonymous())))
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Warn("JWTAuth: invalid 'authorization' header format", zap.String("path", r.URL.Path))
				unauthorized(w, "authorization token format is invalid, expected 'Bearer <token>'")
				return
			}

			claims := &Claims{}
			token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil {
				log.Warn("JWTAuth: token parsing/validation failed", zap.String("path", r.URL.Path), zap.Error(err))
				if errors.Is(err, jwt.ErrTokenExpired) {
					unauthorized(w, "token has expired")
					return
				}
				unauthorized(w, "token is invalid")
				return
			}
			if !token.Valid || claims.UserID == "" {
				log.Warn("JWTAuth: token carries no user id", zap.String("path", r.URL.Path))
				unauthorized(w, "UserID not found in token claims")
				return
			}

			role := domain.Role(claims.Role)
			if !role.IsValid() {
				// Unknown roles still authenticate but never pass a role check.
				log.Warn("JWTAuth: unknown role in token", zap.String("user_id", claims.UserID), zap.String("role", claims.Role))
				role = ""
			}

			rc := domain.NewRequestContext(claims.UserID, role, claims.Email)
			log.Debug("JWTAuth: user authenticated", zap.String("user_id", rc.UserID()), zap.String("role", string(rc.Role())))
			next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), rc)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"success": false,
		"message": message,
	})
}
