package middleware

import (
	"errors"
	"net/http"
	"strings"

	"pobackend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextSubject is the gin context key holding the token subject.
const ContextSubject = "subject"

var errMissingToken = errors.New("authorization is missing")

// RequireToken validates an HMAC-signed JWT taken from the Authorization
// header, the x-auth-token header or the access_token cookie. With an empty
// secret every request passes.
func RequireToken(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		tokenString, err := extractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}

		claims, err := ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			c.Set(ContextSubject, sub)
		}
		c.Next()
	}
}

// ParseToken verifies tokenString against secret and returns its claims.
func ParseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func extractToken(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errors.New("invalid authorization format. Expected 'Bearer <token>'")
		}
		return parts[1], nil
	}
	if t := c.GetHeader("x-auth-token"); t != "" {
		return t, nil
	}
	if t, err := c.Cookie("access_token"); err == nil && t != "" {
		return t, nil
	}
	return "", errMissingToken
}
