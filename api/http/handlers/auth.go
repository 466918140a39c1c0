package handlers

import (
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/todolist/api/api/http/presenter"
	"github.com/todolist/api/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse exposes the public account fields only; the password hash never
// crosses the HTTP boundary.
type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginData struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// Register handles user registration.
// @Summary Register new user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} presenter.SuccessResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	var violations []string
	if strings.TrimSpace(req.Name) == "" {
		violations = append(violations, "Name is required")
	}
	if !validEmail(req.Email) {
		violations = append(violations, "Email is invalid")
	}
	if len(req.Password) < 6 {
		violations = append(violations, "Password must be at least 6 characters")
	}
	if len(violations) > 0 {
		return presenter.Error(c, http.StatusBadRequest, strings.Join(violations, ", "))
	}

	user, err := h.useCase.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch err {
		case auth.ErrUserAlreadyExists:
			// Kept as 400 rather than 409: existing clients rely on it
			return presenter.Error(c, http.StatusBadRequest, "Email already used")
		default:
			log.Printf("register: %v", err)
			return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	return presenter.Success(c, http.StatusCreated, "Registered", userResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	})
}

// Login handles user login and issues a bearer token.
// @Summary Login and get token
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} presenter.SuccessResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	var violations []string
	if !validEmail(req.Email) {
		violations = append(violations, "Email is invalid")
	}
	if len(req.Password) < 6 {
		violations = append(violations, "Password must be at least 6 characters")
	}
	if len(violations) > 0 {
		return presenter.Error(c, http.StatusBadRequest, strings.Join(violations, ", "))
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			return presenter.Error(c, http.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("login: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	return presenter.Success(c, http.StatusOK, "Logged in", loginData{
		Token: result.Token,
		User: userResponse{
			ID:    result.User.ID.String(),
			Name:  result.User.Name,
			Email: result.User.Email,
		},
	})
}
