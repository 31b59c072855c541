package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/ticket-tracker/internal/auth"
	apierrors "github.com/yukikurage/ticket-tracker/internal/errors"
	"github.com/yukikurage/ticket-tracker/internal/services"
	"github.com/yukikurage/ticket-tracker/internal/web"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// ErrInvalidForm is reported when a submitted form cannot be decoded.
var ErrInvalidForm = apierrors.Validation("Invalid form submission.")

func invalidForm(err error) error {
	return apierrors.Wrap(apierrors.ErrCodeValidation, ErrInvalidForm.Message, err)
}

type credentialsForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	web.Render(c, "register.html", gin.H{"Title": "Register"})
}

// Register creates a user. The caller is not logged in afterwards.
func (h *AuthHandler) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		web.Fail(c, invalidForm(err), "/register")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		web.Fail(c, err, "/register")
		return
	}

	web.AddNotice(c, apierrors.SeveritySuccess, "Registration successful. You can now log in.")
	if user.IsAdmin {
		web.AddNotice(c, apierrors.SeverityInfo, "This account was made admin because it was the first registration.")
	}
	web.Redirect(c, "/login")
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	web.Render(c, "login.html", gin.H{"Title": "Log in"})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		web.Fail(c, invalidForm(err), "/login")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		web.Fail(c, err, "/login")
		return
	}

	auth.StartSession(c, user)
	web.AddNotice(c, apierrors.SeveritySuccess, "Login successful.")
	web.Redirect(c, "/")
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.EndSession(c)
	web.AddNotice(c, apierrors.SeverityInfo, "You have been logged out.")
	web.Redirect(c, "/login")
}
