package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"skillink/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 24 * time.Hour

// GenerateJWT signs an HS256 token carrying the actor's id and role.
func GenerateJWT(actor domain.Actor, secret string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": actor.ID,
		"role":    string(actor.Role),
		"exp":     now.Add(tokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates the token and returns the actor it identifies.
func ParseJWT(tokenStr, secret string) (domain.Actor, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithJSONNumber())
	if err != nil {
		return domain.Actor{}, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Actor{}, ErrInvalidToken
	}

	// Numbers stay json.Number so ids above 2^53 survive.
	raw, ok := claims["user_id"].(json.Number)
	if !ok {
		return domain.Actor{}, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(raw.String(), 10, 64)
	if err != nil || userID == 0 {
		return domain.Actor{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	actor := domain.Actor{ID: userID, Role: domain.ParseRole(role)}
	if actor.Role == domain.RoleGuest {
		actor.ID = 0
	}
	return actor, nil
}

func ExtractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}
