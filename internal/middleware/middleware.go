package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuth validates the Bearer token issued at login and stores the
// session identity in the request context (userID, userRole).
func JWTAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RFC 6750: Extract Bearer token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondUnauthorized(c, "Missing Authorization header. A valid Bearer token is required.")
			return
		}

		// Validate Bearer scheme format
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondUnauthorized(c, "Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			respondUnauthorized(c, "Bearer token is empty")
			return
		}

		// Parse and validate the JWT token
		claims, err := parseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			respondUnauthorized(c, err.Error())
			return
		}

		// Extract and validate required claims, setting context
		if err := extractAndSetClaims(c, claims); err != nil {
			respondUnauthorized(c, err.Error())
			return
		}

		c.Next()
	}
}

func respondUnauthorized(c *gin.Context, description string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":             "invalid_token",
		"error_description": description,
	})
	c.Abort()
}

// parseJWTToken validates and parses a JWT token using HMAC signing method
// Returns the claims if valid, error otherwise
func parseJWTToken(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	// Parse with validation
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		// This protects against attacks where an attacker changes the algorithm header
		// See: https://auth0.com/blog/critical-vulnerabilities-in-json-web-token-libraries/
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	// Extract and validate claims
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	return claims, nil
}

// parseAndValidateJWT parses the JWT and performs strict validation
func parseAndValidateJWT(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	claims, err := parseJWTToken(tokenString, jwtSecret)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Validate token expiration (exp claim)
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return nil, fmt.Errorf("token has expired")
	}

	// Validate not before (nbf claim) if present
	nbf, err := claims.GetNotBefore()
	if err != nil {
		return nil, fmt.Errorf("invalid nbf claim: %w", err)
	}
	if nbf != nil && nbf.After(now) {
		return nil, fmt.Errorf("token not yet valid")
	}

	// Validate issued at (iat claim) - prevents using tokens issued in the future
	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(now) {
		return nil, fmt.Errorf("token issued in the future")
	}

	return claims, nil
}

// extractAndSetClaims extracts the session identity from JWT claims and
// sets it in the Gin context. Both claims are strictly required.
func extractAndSetClaims(c *gin.Context, claims jwt.MapClaims) error {
	// The uid claim carries the user's document ID
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return fmt.Errorf("token missing required 'uid' claim. This token is not valid for this API")
	}
	c.Set("userID", uid)

	// Extract role claim - STRICTLY required, no defaults
	role, err := extractRole(claims)
	if err != nil {
		return err
	}
	c.Set("userRole", role)

	return nil
}

// extractRole extracts and validates the role from JWT claims
// All tokens must have an explicit role claim - no defaults are provided
func extractRole(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", fmt.Errorf("token missing required 'role' claim. Tokens must explicitly specify user roles")
	}

	// Validate role against allowed values
	allowedRoles := map[string]bool{
		"admin": true,
		"user":  true,
	}

	if !allowedRoles[role] {
		return "", fmt.Errorf("invalid role '%s'. Allowed roles: admin, user", role)
	}

	return role, nil
}
