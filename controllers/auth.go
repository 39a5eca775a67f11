package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"barbershop-web/models"
	"barbershop-web/services"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
)

// AuthForm is the login and signup form. Name is only read on signup.
type AuthForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Validate returns field errors keyed by form field name.
func (f AuthForm) Validate(signup bool) map[string]string {
	errs := map[string]string{}
	if signup && strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	switch {
	case strings.TrimSpace(f.Email) == "":
		errs["email"] = "Email is required"
	case !utils.ValidateEmail(f.Email):
		errs["email"] = "Email is invalid"
	}
	if msg := utils.ValidatePassword(f.Password); msg != "" {
		errs["password"] = msg
	}
	return errs
}

type AuthController struct {
	Deps
}

type authView struct {
	Page
	Signup bool
	Form   AuthForm
	Errors map[string]string
}

// LoginPage handles GET /login.
func (ac *AuthController) LoginPage(c *gin.Context) {
	ac.render(c, ac.page(c, "Login", "login"), false, AuthForm{}, nil)
}

// SignupPage handles GET /signup.
func (ac *AuthController) SignupPage(c *gin.Context) {
	ac.render(c, ac.page(c, "Sign Up", "signup"), true, AuthForm{}, nil)
}

// Login handles POST /login.
func (ac *AuthController) Login(c *gin.Context) {
	ac.submit(c, false)
}

// Signup handles POST /signup.
func (ac *AuthController) Signup(c *gin.Context) {
	ac.submit(c, true)
}

func (ac *AuthController) submit(c *gin.Context, signup bool) {
	const op = "controllers.Auth.submit"

	title, active := "Login", "login"
	if signup {
		title, active = "Sign Up", "signup"
	}
	page := ac.page(c, title, active)

	var form AuthForm
	_ = c.ShouldBind(&form)
	form.Email = strings.TrimSpace(form.Email)
	if errs := form.Validate(signup); len(errs) > 0 {
		ac.render(c, page, signup, form, errs)
		return
	}

	ctx := c.Request.Context()
	var (
		user models.AuthUser
		err  error
	)
	if signup {
		user, err = ac.API.Signup(ctx, models.SignupInput{FullName: strings.TrimSpace(form.Name), Email: form.Email, Password: form.Password})
	} else {
		user, err = ac.API.Login(ctx, models.LoginInput{Email: form.Email, Password: form.Password})
	}
	if err != nil {
		ac.Log.Warn("authentication failed", slog.String("op", op), slog.Bool("signup", signup), sl.Err(err))
		page.Dialog = infoDialog("Authentication Failed", authFailureMessage(err))
		ac.render(c, page, signup, form, nil)
		return
	}

	s, err := ac.Sessions.Login(c, user)
	if err != nil {
		ac.Log.Error("failed to start session", slog.String("op", op), sl.Err(err))
		page.Dialog = infoDialog("Authentication Failed", "Something went wrong. Please try again.")
		ac.render(c, page, signup, form, nil)
		return
	}
	c.Redirect(http.StatusFound, s.Role.Home())
}

func authFailureMessage(err error) string {
	switch {
	case services.IsUnauthorized(err):
		return "Invalid email or password."
	case services.IsBadRequest(err):
		return "Email already used."
	}
	return "Something went wrong. Please try again."
}

// Logout handles POST /logout.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.Sessions.Logout(c); err != nil {
		ac.Log.Error("logout failed", slog.String("op", "controllers.Auth.Logout"), sl.Err(err))
	}
	c.Redirect(http.StatusFound, "/login")
}

func (ac *AuthController) render(c *gin.Context, page Page, signup bool, form AuthForm, errs map[string]string) {
	form.Password = ""
	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "auth.html", authView{Page: page, Signup: signup, Form: form, Errors: errs})
}
