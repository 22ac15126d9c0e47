package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Form error texts shown inline.
const (
	msgEmailTaken          = "Email already registered"
	msgInvalidCredentials  = "Invalid credentials"
	msgFieldsRequired      = "All fields are required."
	msgPasswordTooLong     = "Password is too long."
	msgTitleRequired       = "Title is required."
	msgRegistrationSuccess = "Registration successful! Please log in."
)

// Accounts is the account service as seen by the handlers.
type Accounts interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Tasks is the task service as seen by the handlers.
type Tasks interface {
	Create(ctx context.Context, ownerID, title, description string) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
}

// Gatekeeper resolves the session behind a request.
type Gatekeeper interface {
	Require(r *http.Request) auth.Outcome
	Current(r *http.Request) *models.User
}

type registerForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type taskForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
}

// Handler serves the HTML pages.
type Handler struct {
	accounts      Accounts
	tasks         Tasks
	gate          Gatekeeper
	sessionTTL    time.Duration
	secureCookies bool
	logger        logging.Logger
}

func NewHandler(accounts Accounts, tasks Tasks, gate Gatekeeper, sessionTTL time.Duration, secureCookies bool, logger logging.Logger) *Handler {
	return &Handler{
		accounts:      accounts,
		tasks:         tasks,
		gate:          gate,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		logger:        logger.With("module", "web"),
	}
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", page{Title: "Home", User: h.gate.Current(c.Request)})
}

func (h *Handler) registerPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", page{Title: "Register"})
}

func (h *Handler) register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", page{
			Title: "Register", Error: msgFieldsRequired, Username: form.Username, Email: form.Email,
		})
		return
	}

	_, err := h.accounts.Register(c.Request.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		failed := page{Title: "Register", Username: form.Username, Email: form.Email}
		switch {
		case errors.Is(err, common.ErrEmailTaken):
			failed.Error = msgEmailTaken
			c.HTML(http.StatusOK, "register.html", failed)
		case errors.Is(err, common.ErrPasswordTooLong):
			failed.Error = msgPasswordTooLong
			c.HTML(http.StatusOK, "register.html", failed)
		case errors.Is(err, common.ErrorValidation):
			failed.Error = msgFieldsRequired
			c.HTML(http.StatusBadRequest, "register.html", failed)
		default:
			h.internalError(c, "registration failed", err)
		}
		return
	}

	h.logger.Info(c.Request.Context(), "Registered", "email", form.Email)
	c.HTML(http.StatusOK, "login.html", page{Title: "Log in", Message: msgRegistrationSuccess, Email: form.Email})
}

// loginPage shows the form together with any pending flash message, which
// is cleared in the same response.
func (h *Handler) loginPage(c *gin.Context) {
	p := page{Title: "Log in"}
	if flash, err := c.Request.Cookie(common.FlashMessageCookieName); err == nil && flash.Value != "" {
		p.Message = flash.Value
		http.SetCookie(c.Writer, auth.ExpiredCookie(common.FlashMessageCookieName, h.secureCookies))
	}
	c.HTML(http.StatusOK, "login.html", p)
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", page{Title: "Log in", Error: msgFieldsRequired, Email: form.Email})
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.HTML(http.StatusOK, "login.html", page{Title: "Log in", Error: msgInvalidCredentials, Email: form.Email})
			return
		}
		h.internalError(c, "login failed", err)
		return
	}

	http.SetCookie(c.Writer, auth.SessionCookie(token, h.sessionTTL, h.secureCookies))
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// logout only drops the cookie. The token itself stays valid until it expires.
func (h *Handler) logout(c *gin.Context) {
	http.SetCookie(c.Writer, auth.ExpiredCookie(common.AccessTokenCookieName, h.secureCookies))
	c.Redirect(http.StatusSeeOther, auth.LoginPath)
}

func (h *Handler) dashboard(c *gin.Context) {
	var user *models.User
	switch o := h.gate.Require(c.Request).(type) {
	case auth.Redirect:
		o.Write(c.Writer, c.Request, h.secureCookies)
		return
	case auth.Identity:
		user = o.User
	}

	h.renderDashboard(c, http.StatusOK, user, "")
}

func (h *Handler) createTask(c *gin.Context) {
	var user *models.User
	switch o := h.gate.Require(c.Request).(type) {
	case auth.Redirect:
		o.Write(c.Writer, c.Request, h.secureCookies)
		return
	case auth.Identity:
		user = o.User
	}

	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderDashboard(c, http.StatusBadRequest, user, msgTitleRequired)
		return
	}

	if _, err := h.tasks.Create(c.Request.Context(), user.ID, form.Title, form.Description); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			h.renderDashboard(c, http.StatusBadRequest, user, msgTitleRequired)
			return
		}
		h.internalError(c, "task creation failed", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) renderDashboard(c *gin.Context, status int, user *models.User, formError string) {
	list, err := h.tasks.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		h.internalError(c, "listing tasks failed", err)
		return
	}
	c.HTML(status, "dashboard.html", page{Title: "Dashboard", User: user, Tasks: list, Error: formError})
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(c.Request.Context(), msg, "request_id", c.GetString(requestIDKey), "error", err)
	c.HTML(http.StatusInternalServerError, "error.html", page{Title: "Error"})
}
