package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bloomnext/pos-inventory/internal/auth"
	"github.com/bloomnext/pos-inventory/internal/models"
	"github.com/bloomnext/pos-inventory/internal/repo"
)

// RegisterHandler godoc
// @Summary Register a new user and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "User exists"
// @Router /register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if len(creds.Username) < 3 || len(creds.Password) < 6 {
		http.Error(w, "username or password too short", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	user, err := h.users.CreateUser(r.Context(), models.User{
		Username:     creds.Username,
		PasswordHash: string(hashed),
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, repo.ErrUsernameTaken) {
			http.Error(w, "username already exists", http.StatusConflict)
			return
		}
		log.Printf("could not register user: %v", err)
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResult{
		Message: "user registered",
		Token:   token,
	})
}

// LoginHandler godoc
// @Summary Log in and receive access + refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid credentials"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByUsername(r.Context(), creds.Username)
	if err != nil {
		// same response as a bad password so usernames cannot be probed
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	h.issueTokens(w, r, user)
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid refresh token"
// @Router /refresh [post]
func (h *Handler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	username, err := h.refresh.Consume(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			http.Error(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		log.Printf("could not consume refresh token: %v", err)
		http.Error(w, "could not refresh session", http.StatusInternalServerError)
		return
	}

	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	h.issueTokens(w, r, user)
}

func (h *Handler) issueTokens(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	refreshToken, err := auth.NewRefreshToken()
	if err != nil {
		http.Error(w, "failed to generate refresh token", http.StatusInternalServerError)
		return
	}
	if err := h.refresh.Save(r.Context(), refreshToken, user.Username); err != nil {
		log.Printf("could not store refresh token: %v", err)
		http.Error(w, "could not complete login", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{
		Token:        token,
		RefreshToken: refreshToken,
	})
}
