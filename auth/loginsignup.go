package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"naturesbasket/db"
	"naturesbasket/middleware"
	"naturesbasket/models"
	"naturesbasket/mq"
	"naturesbasket/rdx"
	"naturesbasket/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type registerInput struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Role        models.Role `json:"role"`
	PhoneNumber string      `json:"phone_number"`
	Address     string      `json:"address"`
}

// ValidateRegistration checks the registration payload and returns an error
// code suitable for the response body.
func ValidateRegistration(in registerInput) string {
	if !in.Role.Valid() || in.Role == models.RoleAdmin {
		// admin accounts are provisioned out of band, never self-registered
		return "INVALID_ROLE"
	}
	if in.Name == "" || in.Email == "" || len(in.Password) < 6 || !strings.Contains(in.Email, "@") {
		return "INVALID_DATA"
	}
	return ""
}

// NewUser builds the role-tagged user record. The role-specific subrecord is
// chosen at construction and never reassigned.
func NewUser(in registerInput, hashedPassword string) models.User {
	now := time.Now()
	user := models.User{
		UserID:      "u" + utils.GenerateRandomString(10),
		Name:        in.Name,
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Password:    hashedPassword,
		Role:        in.Role,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch in.Role {
	case models.RoleFarmer:
		// farmers wait for admin verification before selling
		user.Status = models.UserPending
		user.Farmer = &models.FarmerProfile{}
	default:
		user.Status = models.UserActive
		user.Customer = &models.CustomerProfile{Wishlist: []string{}, Orders: []string{}}
	}
	return user
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid input", "INVALID_DATA")
		return
	}

	if code := ValidateRegistration(input); code != "" {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid registration data", code)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Same email may register once per role.
	var existing models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": email, "role": input.Role}).Decode(&existing)
	if err == nil {
		utils.RespondWithErrorCode(w, http.StatusConflict, "An account with this email and role already exists", "EMAIL_ROLE_EXISTS")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := NewUser(input, string(hashedPassword))

	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithErrorCode(w, http.StatusConflict, "An account with this email and role already exists", "EMAIL_ROLE_EXISTS")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if err := rdx.RdxSet(fmt.Sprintf("users:%s", user.UserID), user.Name); err != nil {
		log.Printf("Failed to cache username: %v", err)
	}

	go mq.Emit(context.Background(), "user-registered", models.Index{EntityType: "user", EntityId: user.UserID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Registration successful", "user": user})
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid input", "INVALID_DATA")
		return
	}
	if input.Email == "" || input.Password == "" || !input.Role.Valid() {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Email, password and role are required", "INVALID_DATA")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{
		"email": strings.ToLower(strings.TrimSpace(input.Email)),
		"role":  input.Role,
	}).Decode(&user)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
		return
	}

	if !user.CanAuthenticate() {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Account is not active", "ACCOUNT_INACTIVE")
		return
	}

	tokenString, err := middleware.IssueToken(user.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if _, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{"last_login": time.Now()}},
	); err != nil {
		log.Printf("Failed to record last login for %s: %v", user.UserID, err)
	}

	if err := rdx.RdxHset("tokki", user.UserID, tokenString); err != nil {
		log.Printf("Failed to cache token: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   tokenString,
		"user":    user,
	})
}

func logoutHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithErrorCode(w, http.StatusUnauthorized, "Missing token", "AUTH_INVALID")
		return
	}

	if _, err := rdx.RdxHdel("tokki", userID); err != nil {
		log.Printf("Error removing token from Redis: %v", err)
	}

	// Deny the token itself for the rest of its lifetime.
	if token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "); token != "" {
		if err := rdx.SetWithExpiry(middleware.RevocationKey(token), "1", middleware.TokenTTL); err != nil {
			log.Printf("Failed to revoke token: %v", err)
		}
	}

	go mq.Emit(context.Background(), "user-loggedout", models.Index{EntityType: "user", EntityId: userID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out"})
}

func meHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user})
}
