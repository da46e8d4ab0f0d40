package jwt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
)

const accessTokenTTL = 15 * time.Minute

// roleChars maps each role to the character appended to its tokens. The
// trailing character lets the middleware pick the right secret before
// verifying the signature.
var roleChars = map[Role]string{
	RoleMember:       "m",
	RoleAdmin:        "a",
	RoleTechDirector: "t",
}

func appendRoleChar(token string, role Role) string {
	return token + roleChars[role]
}

// stripRoleChar removes and validates the trailing role character.
func stripRoleChar(token string, role Role) (string, error) {
	if token == "" {
		return "", errors.New("token string is empty")
	}
	if token[len(token)-1:] != roleChars[role] {
		return "", errors.New("invalid role character in token")
	}
	return token[:len(token)-1], nil
}

// IdentifyRole reads the trailing role character without verifying the
// signature. The caller still has to ParseToken with the returned role.
func IdentifyRole(tokenString string) (Role, bool) {
	if len(tokenString) == 0 {
		return 0, false
	}
	suffix := tokenString[len(tokenString)-1:]
	for role, ch := range roleChars {
		if ch == suffix {
			return role, true
		}
	}
	return 0, false
}

func roleSecret(role Role) (string, error) {
	secret, ok := RoleSecrets[role]
	if !ok || secret == "" {
		return "", errors.New("invalid role specified")
	}
	return secret, nil
}

func CreateToken(member Member, role Role, validUntil int64) (string, error) {
	secret, err := roleSecret(role)
	if err != nil {
		return "", err
	}

	if validUntil == 0 {
		validUntil = time.Now().Add(accessTokenTTL).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    member.Id,
		"email": member.Email,
		"exp":   validUntil,
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	return appendRoleChar(signed, role), nil
}

// CreateTokenWithRefresh issues an access token plus a refresh token whose
// raw value keys the member's identity in Redis for RefreshTokenTTL.
func CreateTokenWithRefresh(member Member, role Role, validUntil int64) (TokenResponse, error) {
	accessToken, err := CreateToken(member, role, validUntil)
	if err != nil {
		return TokenResponse{}, err
	}

	refreshTokenRaw := utils.CreateToken()

	memberJSON, _ := json.Marshal(map[string]string{
		"id":    member.Id,
		"email": member.Email,
	})
	if err := RedisClient.Set(context.Background(), refreshTokenRaw, memberJSON, RefreshTokenTTL).Err(); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: appendRoleChar(refreshTokenRaw, role),
	}, nil
}

// ParseToken verifies an access token against the role's secret after
// stripping the role character.
func ParseToken(tokenString string, role Role) (jwt.MapClaims, error) {
	stripped, err := stripRoleChar(tokenString, role)
	if err != nil {
		return nil, err
	}

	secret, err := roleSecret(role)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(stripped, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %v", err)
	}
	if !token.Valid {
		return nil, errors.New("token is not valid - unauthorized")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims of unauthorized type")
	}
	return claims, nil
}

// RefreshToken exchanges a valid refresh token for a fresh access token,
// renewing the refresh token's TTL and sweeping the member's expired ones.
func RefreshToken(refreshToken string, role Role) (string, error) {
	refreshTokenRaw, err := stripRoleChar(refreshToken, role)
	if err != nil {
		return "", err
	}

	member, err := lookupRefreshMember(refreshTokenRaw)
	if err != nil {
		return "", err
	}

	if err := sweepExpiredTokens(member.Email, refreshTokenRaw); err != nil {
		return "", fmt.Errorf("failed to clean up expired refresh tokens: %v", err)
	}

	if err := RedisClient.Expire(context.Background(), refreshTokenRaw, RefreshTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to update refresh token expiration: %v", err)
	}

	return CreateToken(member, role, 0)
}

func lookupRefreshMember(refreshTokenRaw string) (Member, error) {
	val, err := RedisClient.Get(context.Background(), refreshTokenRaw).Result()
	if err == redis.Nil {
		return Member{}, errors.New("invalid refresh token")
	}
	if err != nil {
		return Member{}, err
	}

	var data map[string]string
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return Member{}, errors.New("invalid token data")
	}

	return Member{Id: data["id"], Email: data["email"]}, nil
}

// sweepExpiredTokens deletes the member's other refresh tokens whose TTL has
// run out, keeping the store from accumulating dead sessions.
func sweepExpiredTokens(email, currentRefreshTokenRaw string) error {
	ctx := context.Background()
	iter := RedisClient.Scan(ctx, 0, "*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == currentRefreshTokenRaw {
			continue
		}

		val, err := RedisClient.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("error fetching key %s: %v", key, err)
		}

		var data map[string]string
		if err := json.Unmarshal([]byte(val), &data); err != nil {
			continue
		}
		if data["email"] != email {
			continue
		}

		ttl, err := RedisClient.TTL(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("error checking TTL for key %s: %v", key, err)
		}
		if ttl <= 0 {
			_ = RedisClient.Del(ctx, key).Err()
		}
	}
	return iter.Err()
}
