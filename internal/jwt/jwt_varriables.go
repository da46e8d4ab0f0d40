package jwt

import (
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/env"

	"github.com/go-redis/redis/v8"
)

const RefreshTokenTTL = 24 * 30 * time.Hour

const (
	RoleMember Role = iota
	RoleAdmin
	RoleTechDirector
)

var (
	RoleSecrets = map[Role]string{}
	RedisClient *redis.Client
)

// Init loads signing secrets and connects the refresh token store. Called
// once from main before serving. Tests inject secrets with SetRoleSecret and
// never touch redis.
func Init() {
	RoleSecrets[RoleMember] = env.Get(env.MemberSecretKey)
	RoleSecrets[RoleAdmin] = env.Get(env.AdminSecretKey)
	RoleSecrets[RoleTechDirector] = env.Get(env.TechDirectorSecretKey)

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.AuthRedisURL),
		Password: env.Get(env.AuthRedisPass),
		DB:       0,
	})
}

func SetRoleSecret(role Role, secret string) {
	RoleSecrets[role] = secret
}
