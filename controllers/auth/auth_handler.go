package auth

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"nuppy-backend/controllers/base"
	"nuppy-backend/metrics"
	"nuppy-backend/middleware"
	"nuppy-backend/stores"
)

// mensaje único para email inexistente y contraseña equivocada, así el
// formulario no sirve para enumerar cuentas
const mensajeCredenciales = "credenciales inválidas"

type AuthController struct {
	*base.BaseController
	usuarios *stores.UsuarioStore
	logs     *stores.LogStore
}

func NewAuthController(usuarios *stores.UsuarioStore, logs *stores.LogStore) *AuthController {
	return &AuthController{
		BaseController: &base.BaseController{},
		usuarios:       usuarios,
		logs:           logs,
	}
}

func (ac *AuthController) LoginPage(c *gin.Context) {
	if _, ok := middleware.UsuarioActual(c); ok {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (ac *AuthController) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	u, err := ac.usuarios.PorEmail(c.Request.Context(), email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("fallo").Inc()
		ac.Fallo(c, http.StatusUnauthorized, mensajeCredenciales)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashPassword), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("fallo").Inc()
		ac.Fallo(c, http.StatusUnauthorized, mensajeCredenciales)
		return
	}

	s := sessions.Default(c)
	s.Set(middleware.ClaveSesionUsuario, u.ID)
	if err := s.Save(); err != nil {
		ac.Fallo(c, http.StatusInternalServerError, "no se pudo iniciar la sesión")
		return
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	ac.logs.Registrar(c.Request.Context(), u, "login", "", "")
	ac.OK(c, gin.H{"redirect": "/home"})
}

func (ac *AuthController) Logout(c *gin.Context) {
	s := sessions.Default(c)
	s.Clear()
	if err := s.Save(); err != nil {
		ac.Fallo(c, http.StatusInternalServerError, "no se pudo cerrar la sesión")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
