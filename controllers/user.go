package controllers

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"krist-backend/apperr"
	"krist-backend/models"
	"krist-backend/store"
	"krist-backend/utils"
)

// UserController handles registration and login.
type UserController struct {
	Users store.UserStore
}

// NewUserController creates a new UserController.
func NewUserController(users store.UserStore) *UserController {
	return &UserController{Users: users}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles user registration.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Img      string `json:"img"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid input", err))
		return
	}
	if input.Email == "" || input.Password == "" {
		apperr.Write(w, apperr.New(apperr.BadRequest, http.StatusBadRequest, "Email and password are required"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user, err := uc.Users.CreateUser(r.Context(), models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Img:      input.Img,
	})
	if err != nil {
		apperr.Write(w, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login handles user authentication.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid input", err))
		return
	}

	user, err := uc.Users.FindUserByEmail(r.Context(), creds.Email)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		apperr.Write(w, apperr.New(apperr.InvalidCredential, http.StatusForbidden, "Incorrect password"))
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
