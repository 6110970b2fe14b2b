package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	contextEmailKey = "auth_email"
	contextRoleKey  = "auth_role"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid or expired token")
	errNoSecret     = errors.New("token verification is not configured")
)

// Claims carried by identity provider tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for email and role valid for ttl.
func IssueToken(secret, email string, role model.UserRole, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errNoSecret
	}
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseToken(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, errNoSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	if claims.Email == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func setIdentity(c *gin.Context, claims *Claims) {
	c.Set(contextEmailKey, claims.Email)
	c.Set(contextRoleKey, model.UserRole(strings.ToUpper(claims.Role)))
}

// Authenticate requires a valid bearer token and stores its identity in the context.
func Authenticate(secret string, audit *util.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			audit.LogUnauthorizedAccess(c.ClientIP(), c.Request.URL.Path, errMissingToken.Error())
			util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Unauthorized", Err: errMissingToken})
			c.Abort()
			return
		}

		claims, err := parseToken(secret, tokenString)
		if err != nil {
			audit.LogUnauthorizedAccess(c.ClientIP(), c.Request.URL.Path, err.Error())
			util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Unauthorized", Err: err})
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthenticate lets anonymous requests through. A token that is
// present but invalid is still rejected.
func OptionalAuthenticate(secret string, audit *util.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearerToken(c) == "" {
			c.Next()
			return
		}
		Authenticate(secret, audit)(c)
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(audit *util.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := GetRole(c)
		if role != model.RoleAdmin {
			email, _ := GetEmail(c)
			audit.Log(util.AuditEvent{
				EventType:  util.EventForbiddenAccess,
				ActorEmail: email,
				IP:         c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
				Message:    fmt.Sprintf("Non-admin access to %s", c.Request.URL.Path),
			})
			util.CallForbidden(c, util.APIErrorParams{
				Msg: "Forbidden",
				Err: errors.New("admin role required"),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetEmail returns the authenticated email, if any.
func GetEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(contextEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}

// GetRole returns the authenticated role, if any.
func GetRole(c *gin.Context) (model.UserRole, bool) {
	v, ok := c.Get(contextRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(model.UserRole)
	return role, ok
}
