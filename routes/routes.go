package routes

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"nuppy-backend/controllers/auth"
	"nuppy-backend/controllers/calificaciones"
	logscontroller "nuppy-backend/controllers/logs"
	usuarioscontroller "nuppy-backend/controllers/usuarios"
	"nuppy-backend/middleware"
	"nuppy-backend/services/fotos"
	"nuppy-backend/stores"
)

// Opciones agrupa lo que las rutas necesitan del entorno.
type Opciones struct {
	SecretoSesion   string
	MediaRoot       string
	ExtensionesFoto []string
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, o Opciones) {

	usuarioStore := stores.NewUsuarioStore(db)
	calificacionStore := stores.NewCalificacionStore(db)
	logStore := stores.NewLogStore(db)
	almacen := fotos.NewAlmacen(o.MediaRoot, o.ExtensionesFoto)

	authController := auth.NewAuthController(usuarioStore, logStore)
	calificacionController := calificaciones.NewCalificacionController(calificacionStore, logStore)
	usuarioController := usuarioscontroller.NewUsuarioController(usuarioStore, logStore, almacen)
	logController := logscontroller.NewLogController(logStore)

	r.Use(sessions.Sessions("nuppy_sesion", cookie.NewStore([]byte(o.SecretoSesion))))
	r.Use(middleware.CargarUsuario(usuarioStore))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/home") })
	r.GET("/login", authController.LoginPage)
	r.POST("/login", authController.Login)
	r.GET("/logout", authController.Logout)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/media", o.MediaRoot)

	// páginas con sesión
	pagina := r.Group("/", middleware.RequiereSesionPagina)
	pagina.GET("/home", calificacionController.Home)
	pagina.GET("/ingresar", calificacionController.IngresarPage)

	// AJAX con sesión
	api := r.Group("/", middleware.RequiereSesion)
	api.GET("/buscar-calificaciones", calificacionController.BuscarCalificaciones)
	api.POST("/ingresar", calificacionController.Ingresar)
	api.POST("/calcular-factores", calificacionController.CalcularFactores)
	api.POST("/guardar-factores", calificacionController.GuardarFactores)

	// AJAX sólo administradores
	admin := r.Group("/", middleware.RequiereSesion, middleware.RequiereAdmin)
	admin.POST("/eliminar-calificacion", calificacionController.Eliminar)
	admin.POST("/crear_usuario", usuarioController.CrearUsuario)
	admin.POST("/eliminar_usuarios", usuarioController.EliminarUsuarios)
	admin.GET("/obtener-usuario/:id", usuarioController.ObtenerUsuario)
	admin.POST("/modificar-usuario", usuarioController.ModificarUsuario)

	// páginas sólo administradores
	adminPagina := r.Group("/", middleware.RequiereSesionPagina, middleware.RequiereAdminPagina)
	adminPagina.GET("/administrar", usuarioController.Administrar)
	adminPagina.GET("/ver-logs", logController.VerLogs)
}
