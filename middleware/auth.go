// Package middleware resuelve la autenticación una sola vez por request y
// expone las barreras que los grupos de rutas usan de manera uniforme.
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"nuppy-backend/models"
	"nuppy-backend/stores"
)

const claveContexto = "usuario_actual"

// ClaveSesionUsuario es la clave del id de usuario dentro de la sesión.
const ClaveSesionUsuario = "usuario_id"

// CargarUsuario lee la sesión, resuelve el usuario autenticado (si hay) y lo
// deja en el contexto del request. No corta nada: cada ruta decide después
// si exige sesión o rol.
func CargarUsuario(usuarios *stores.UsuarioStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		crudo := s.Get(ClaveSesionUsuario)
		if crudo == nil {
			c.Next()
			return
		}
		id, ok := crudo.(uint)
		if !ok {
			c.Next()
			return
		}
		u, err := usuarios.Obtener(c.Request.Context(), id)
		if err != nil {
			// sesión vieja de un usuario borrado: sigue como anónimo
			c.Next()
			return
		}
		c.Set(claveContexto, u)
		c.Next()
	}
}

// UsuarioActual devuelve el usuario autenticado del request, si lo hay.
func UsuarioActual(c *gin.Context) (models.Usuario, bool) {
	v, ok := c.Get(claveContexto)
	if !ok {
		return models.Usuario{}, false
	}
	u, ok := v.(models.Usuario)
	return u, ok
}

// RequiereSesion corta con 401 JSON si no hay usuario autenticado.
func RequiereSesion(c *gin.Context) {
	if _, ok := UsuarioActual(c); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "sesión requerida"})
	}
}

// RequiereSesionPagina redirige a /login; es la variante para rutas HTML.
func RequiereSesionPagina(c *gin.Context) {
	if _, ok := UsuarioActual(c); !ok {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// RequiereAdmin corta con 403 JSON si el usuario no es administrador.
func RequiereAdmin(c *gin.Context) {
	u, ok := UsuarioActual(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "sesión requerida"})
		return
	}
	if !u.EsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "se requiere rol administrador"})
	}
}

// RequiereAdminPagina es la variante HTML de RequiereAdmin.
func RequiereAdminPagina(c *gin.Context) {
	u, ok := UsuarioActual(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	if !u.EsAdmin {
		c.HTML(http.StatusForbidden, "error.html", gin.H{"Mensaje": "Se requiere rol administrador."})
		c.Abort()
	}
}
