package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"doit/internal/auth"
	"doit/internal/middleware"
	"doit/internal/model"
	"doit/internal/repository"
	"doit/internal/validation"
)

const loginErrorMessage = "Please enter a correct username and password. " +
	"Note that both fields may be case-sensitive"

type UserHandler struct {
	repo   repository.UserRepositoryInterface
	secret []byte
}

func NewUserHandler(repo repository.UserRepositoryInterface, sessionSecret string) *UserHandler {
	return &UserHandler{repo: repo, secret: []byte(sessionSecret)}
}

func (h *UserHandler) SignUpForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"error":      "",
		"username":   "",
		"first_name": "",
		"last_name":  "",
		"email":      "",
	})
}

// SignUp runs the sign-up rule chain and creates the account. Every
// failure re-renders the form with the rule's message and status 200.
func (h *UserHandler) SignUp(c *gin.Context) {
	password := c.PostForm("password")
	if password == "" {
		// the stock user-creation form posts password1/password2
		password = c.PostForm("password1")
	}

	input := validation.SignUp{
		Username:  c.PostForm("username"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Email:     c.PostForm("email"),
		Password:  password,
		Password2: c.PostForm("password2"),
	}

	if msg := validation.ValidateSignUp(input); msg != "" {
		h.renderSignUp(c, input, msg)
		return
	}

	existing, err := h.repo.FindByUsername(c.Request.Context(), input.Username)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing != nil {
		h.renderSignUp(c, input, validation.MsgUsernameTaken)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Username:       input.Username,
		HashedPassword: string(hash),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	flash(c, "User "+user.Username+" Added")
	c.Redirect(http.StatusFound, "/login")
}

func (h *UserHandler) renderSignUp(c *gin.Context, in validation.SignUp, msg string) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"error":      msg,
		"username":   in.Username,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
	})
}

func (h *UserHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"error":         "",
		"username":      "",
		"notifications": takeFlashes(c),
	})
}

// Login checks the credentials and stores a signed token in the cookie
// session. Failures re-render the form unauthenticated with status 200.
func (h *UserHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.repo.FindByUsername(c.Request.Context(), username)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"error":    loginErrorMessage,
			"username": username,
		})
		return
	}

	token, err := auth.GenerateToken(h.secret, user.ID.String(), user.Username)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionTokenKey, token)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *UserHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionTokenKey)
	_ = session.Save()
	c.Redirect(http.StatusFound, "/login")
}
