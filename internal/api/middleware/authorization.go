package middleware

import (
	"net/http"
	"strings"
	"time"

	internaljwt "github.com/autoassistgroup-dev/AutoAssist--portal/internal/jwt"

	"github.com/golang-jwt/jwt"
)

func ValidateJWTMiddleware(role internaljwt.Role) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")

			if !strings.HasPrefix(tokenString, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString = tokenString[len("Bearer "):]

			claims, err := internaljwt.ParseToken(tokenString, role)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			expires := int64(claims["exp"].(float64))
			if time.Now().Unix() > expires {
				http.Error(w, "Token expired", http.StatusUnauthorized)
				return
			}

			next(w, r)
		}
	}
}

func ValidateMultipleJWTMiddleware(roles ...internaljwt.Role) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")
			if !strings.HasPrefix(tokenString, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString = tokenString[len("Bearer "):]

			var claims jwt.MapClaims
			var err error

			for _, role := range roles {
				claims, err = internaljwt.ParseToken(tokenString, role)
				if err == nil {
					break
				}
			}

			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			expires := int64(claims["exp"].(float64))
			if time.Now().Unix() > expires {
				http.Error(w, "Token expired", http.StatusUnauthorized)
				return
			}

			next(w, r)
		}
	}
}

// ValidateStaffJWT admits any signed-in staff member. Admin and tech director
// routes narrow that down.
var ValidateStaffJWT = ValidateMultipleJWTMiddleware(internaljwt.RoleMember, internaljwt.RoleAdmin, internaljwt.RoleTechDirector)
var ValidateAdminJWT = ValidateJWTMiddleware(internaljwt.RoleAdmin)
var ValidateTechDirectorJWT = ValidateMultipleJWTMiddleware(internaljwt.RoleTechDirector, internaljwt.RoleAdmin)
