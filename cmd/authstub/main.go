// Command authstub is a development stand-in for the external auth service.
// It issues HS256 JWTs for a fixed set of dev accounts and answers the
// /verify contract the main server depends on:
//
//	GET /verify  ->  200 {"userId": ..., "roles": [...], "permissions": [...], "exp": ...}
//
// Any invalid or missing token answers 401, which the main server treats as
// an invalid claims assertion.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/masstest/masstest-backend/internal/logger"
)

// tokenClaims is the JWT payload. The /verify response is derived from it.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"userId"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// devAccount is a seeded login. Password hashes are computed at startup so
// no plaintext survives past boot.
type devAccount struct {
	UserID       string
	Password     string
	PasswordHash []byte
	Roles        []string
	Permissions  []string
}

type stub struct {
	secret   []byte
	expiry   time.Duration
	accounts map[string]*devAccount
	log      zerolog.Logger
}

func main() {
	_ = godotenv.Load()

	log := logger.Setup(getEnv("LOG_LEVEL", "info"), getEnv("LOG_FORMAT", "pretty"))

	expiryHours, err := strconv.Atoi(getEnv("AUTHSTUB_JWT_EXPIRY_HOURS", "24"))
	if err != nil {
		expiryHours = 24
	}

	s := &stub{
		secret: []byte(getEnv("AUTHSTUB_JWT_SECRET", "dev-only-secret")),
		expiry: time.Duration(expiryHours) * time.Hour,
		accounts: map[string]*devAccount{
			"admin": {
				UserID:   "u1",
				Password: getEnv("AUTHSTUB_ADMIN_PASSWORD", "admin123"),
				Roles:    []string{"Admin"},
			},
			"teacher": {
				UserID:   "u2",
				Password: getEnv("AUTHSTUB_TEACHER_PASSWORD", "teacher123"),
				Roles:    []string{"Teacher"},
				Permissions: []string{
					"course:add", "quest:create", "quest:read",
					"test:create", "course:test:read", "attempt:read",
				},
			},
			"student": {
				UserID:      "u3",
				Password:    getEnv("AUTHSTUB_STUDENT_PASSWORD", "student123"),
				Roles:       []string{"Student"},
				Permissions: []string{"course:test:read"},
			},
		},
		log: log,
	}

	for username, acc := range s.accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Str("username", username).Msg("Hash dev password failed")
		}
		acc.PasswordHash = hash
		acc.Password = ""
	}

	gin.SetMode(getEnv("GIN_MODE", "debug"))
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", s.login)
	r.GET("/verify", s.verify)

	port := getEnv("AUTHSTUB_PORT", "8081")
	log.Info().Str("addr", ":"+port).Msg("Auth stub listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Auth stub server error")
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login checks the dev credentials and issues a signed access token.
func (s *stub) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	acc, ok := s.accounts[req.Username]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		UserID:      acc.UserID,
		Roles:       acc.Roles,
		Permissions: acc.Permissions,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.log.Error().Err(err).Msg("Sign token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"expires_at":   claims.ExpiresAt.Unix(),
	})
}

// verify validates a bearer token and answers the oracle contract JSON.
func (s *stub) verify(c *gin.Context) {
	token, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	claims, err := s.parseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":      claims.UserID,
		"roles":       claims.Roles,
		"permissions": claims.Permissions,
		"exp":         claims.ExpiresAt.Unix(),
	})
}

func (s *stub) parseToken(tokenStr string) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("authorization header required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
