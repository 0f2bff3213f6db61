package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Login", "Username": ""})
}

func (h *Handler) Login(c *gin.Context) {
	username, password := c.PostForm("username"), c.PostForm("password")

	tok, err := h.api.Login(c.Request.Context(), username, password, c.ClientIP())
	if err != nil {
		status, msg := http.StatusOK, "Invalid credentials"
		switch {
		case IsTooManyRequests(err):
			status, msg = http.StatusTooManyRequests, "Too many login attempts. Try again in a minute."
		case IsTransport(err):
			logFailure(c, "login", err)
		}
		c.HTML(status, "login.html", gin.H{
			"Title":    "Login",
			"Error":    msg,
			"Username": username,
		})
		return
	}

	h.setCookie(c, tok)
	c.Redirect(http.StatusFound, "/ui/categories")
}

func (h *Handler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Title": "Register", "Username": ""})
}

func (h *Handler) RegisterUser(c *gin.Context) {
	username, password := c.PostForm("username"), c.PostForm("password")

	if err := h.api.Register(c.Request.Context(), username, password, c.ClientIP()); err != nil {
		msg := "User already exists"
		if IsTransport(err) {
			logFailure(c, "register", err)
			msg = "Registration is unavailable right now"
		}
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Title":    "Register",
			"Error":    msg,
			"Username": username,
		})
		return
	}
	c.Redirect(http.StatusFound, loginPath)
}

func (h *Handler) Logout(c *gin.Context) {
	h.clearCookie(c)
	c.Redirect(http.StatusFound, loginPath)
}
