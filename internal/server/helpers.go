package server

import (
	"fmt"
	"strings"
	"time"

	"milaan/internal/models"
	"milaan/internal/session"
	"milaan/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// respondError writes err with the status its error code maps to.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}

// generateToken creates a JWT binding the user to their session sandbox.
func (s *Server) generateToken(sess *session.Session, userID string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"sid": sess.ID,
		"iss": "milaan-api",
		"aud": "milaan-client",
		"exp": now.Add(7 * 24 * time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseToken validates the JWT and extracts the session and user ids.
func (s *Server) parseToken(tokenString string) (sid, sub string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", models.NewUnauthorizedError("Invalid token claims")
	}
	sid, _ = claims["sid"].(string)
	sub, _ = claims["sub"].(string)
	if sid == "" || sub == "" {
		return "", "", models.NewUnauthorizedError("Invalid token structure")
	}
	return sid, sub, nil
}

// bearerToken extracts the token from the Authorization header, or "".
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// resolve attaches the token's session and identity to the request context.
func (s *Server) resolve(c *fiber.Ctx, tokenString string) error {
	sid, _, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}
	sess, ok := s.sessions.Resume(c.UserContext(), sid)
	if !ok {
		return models.NewUnauthorizedError("Session has ended, please log in again")
	}
	user := sess.Current()
	if user == nil {
		return models.NewUnauthorizedError("You are logged out")
	}
	c.Locals("session", sess)
	c.Locals("sessionID", sess.ID)
	c.Locals("user", user)
	return nil
}

// AuthRequired enforces authentication for protected routes.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return s.respondError(c, models.NewUnauthorizedError("Authorization required"))
		}
		if err := s.resolve(c, tokenString); err != nil {
			return s.respondError(c, err)
		}
		return c.Next()
	}
}

// OptionalAuth resolves a token when one is presented but lets anonymous
// requests through; they are served from the shared default sandbox.
func (s *Server) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString := bearerToken(c); tokenString != "" {
			// A bad token on a public route degrades to anonymous.
			_ = s.resolve(c, tokenString)
		}
		return c.Next()
	}
}

// currentSession returns the request's session, or nil for anonymous
// requests.
func (s *Server) currentSession(c *fiber.Ctx) *session.Session {
	if sess, ok := c.Locals("session").(*session.Session); ok {
		return sess
	}
	return nil
}

// currentUser returns the acting identity, or nil.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals("user").(*models.User); ok {
		return u
	}
	return nil
}

// sandbox returns the state container serving this request: the session's
// own copy when authenticated, the shared default otherwise.
func (s *Server) sandbox(c *fiber.Ctx) *store.Store {
	if sess := s.currentSession(c); sess != nil {
		return sess.Store
	}
	return s.sessions.Default().Store
}
