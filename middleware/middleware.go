package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"naturesbasket/db"
	"naturesbasket/globals"
	"naturesbasket/models"
	"naturesbasket/rdx"
	"naturesbasket/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Tokens carry only the user id; role and account status are re-resolved
// from the user record on every protected call.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

const TokenTTL = 30 * 24 * time.Hour

func IssueToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// RevocationKey is the cache key an explicit logout writes; the entry lives
// as long as the token it blocks could.
func RevocationKey(token string) string { return "revoked:" + token }

// sessionSuperseded reports whether a newer login has replaced the presented
// token. An absent cache entry keeps the session valid, so a cold or
// unreachable cache never locks anyone out.
func sessionSuperseded(stored, presented string) bool {
	return stored != "" && stored != presented
}

// Authenticate resolves the bearer token to a live user record. Suspended and
// rejected accounts are turned away here even when the token itself is still
// valid, as are tokens revoked by logout or superseded by a newer login.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Missing token", "AUTH_INVALID")
			return
		}
		if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
			utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Invalid token format", "AUTH_INVALID")
			return
		}

		raw := tokenString[7:]
		claims, err := ParseToken(raw)
		if err != nil {
			utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Invalid token", "AUTH_INVALID")
			return
		}

		if v, err := rdx.RdxGet(RevocationKey(raw)); err == nil && v != "" {
			utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Token has been logged out", "AUTH_INVALID")
			return
		}
		if stored, err := rdx.RdxHget("tokki", claims.UserID); err == nil && sessionSuperseded(stored, raw) {
			utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Signed in elsewhere, log in again", "AUTH_INVALID")
			return
		}

		var user models.User
		err = db.UserCollection.FindOne(r.Context(), bson.M{"userid": claims.UserID}).Decode(&user)
		if err != nil {
			utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Account not found", "AUTH_INVALID")
			return
		}
		if user.Blocked() {
			utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Account is not allowed to access the service", "AUTH_INVALID")
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, user.UserID)
		ctx = context.WithValue(ctx, globals.RoleKey, user.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireRoles gates a handler on the authenticated user's role. Must be
// wrapped by Authenticate.
func RequireRoles(next httprouter.Handle, roles ...models.Role) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		role := utils.GetRoleFromRequest(r)
		for _, allowed := range roles {
			if role == allowed {
				next(w, r, ps)
				return
			}
		}
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Insufficient role", "FORBIDDEN")
	}
}

// RequireApproved blocks farmer mutations until the account is active.
// Read-only dashboard routes stay reachable for pending farmers.
func RequireApproved(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		var user models.User
		if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
			utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Account not found", "AUTH_INVALID")
			return
		}
		if user.Role == models.RoleFarmer && user.Status != models.UserActive {
			utils.RespondWithErrorCode(w, http.StatusForbidden, "Account pending approval", "ACCOUNT_INACTIVE")
			return
		}
		next(w, r, ps)
	}
}

// OptionalAuth attaches the user id when a valid token is present and
// proceeds regardless.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if len(tokenString) >= 8 && tokenString[:7] == "Bearer " {
			if claims, err := ParseToken(tokenString[7:]); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, claims.UserID))
			}
		}
		next(w, r, ps)
	}
}
