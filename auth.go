// auth.go login, token validation and password management
package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey int

const identityKey ctxKey = iota

type authIdentity struct {
	ID    string
	Email string
}

func identityFrom(r *http.Request) authIdentity {
	id, _ := r.Context().Value(identityKey).(authIdentity)
	return id
}

func tokenTTL() time.Duration {
	hours, err := strconv.Atoi(envOr("TOKEN_TTL_HOURS", "24"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// invalidCredentials is the constant-shape auth failure: unknown email,
// wrong password and wrong current-password all look identical to clients.
func invalidCredentials() error {
	return fmt.Errorf("%w: invalid credentials", errAuth)
}

func Login(w http.ResponseWriter, r *http.Request) {
	var loginData struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &loginData); err != nil {
		writeErr(w, err)
		return
	}

	var user AdminUser
	if err := db.Where("email = ?", loginData.Email).First(&user).Error; err != nil {
		writeErr(w, invalidCredentials())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(loginData.Password)); err != nil {
		writeErr(w, invalidCredentials())
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(tokenTTL()).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		writeErr(w, fmt.Errorf("generating token: %w", err))
		return
	}

	logger.Info().Str("email", user.Email).Msg("admin logged in")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": tokenString,
		"user":  user,
	})
}

func authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeErr(w, fmt.Errorf("%w: authorization header is required", errAuth))
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			writeErr(w, fmt.Errorf("%w: invalid authorization header format", errAuth))
			return
		}

		token, err := jwt.Parse(bearerToken[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			writeErr(w, fmt.Errorf("%w: invalid token", errAuth))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			writeErr(w, fmt.Errorf("%w: invalid token claims", errAuth))
			return
		}

		identity := authIdentity{}
		identity.ID, _ = claims["sub"].(string)
		identity.Email, _ = claims["email"].(string)
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func Me(w http.ResponseWriter, r *http.Request) {
	var user AdminUser
	if err := db.First(&user, "id = ?", identityFrom(r).ID).Error; err != nil {
		writeErr(w, fmt.Errorf("%w: unknown identity", errAuth))
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeErr(w, err)
		return
	}
	if len(payload.NewPassword) < 8 {
		writeErr(w, validationErr("new password must be at least 8 characters"))
		return
	}

	var user AdminUser
	if err := db.First(&user, "id = ?", identityFrom(r).ID).Error; err != nil {
		writeErr(w, fmt.Errorf("%w: unknown identity", errAuth))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.CurrentPassword)); err != nil {
		writeErr(w, invalidCredentials())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		writeErr(w, err)
		return
	}

	// Existing tokens stay valid until natural expiry.
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
