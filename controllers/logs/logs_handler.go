package logs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nuppy-backend/controllers/base"
	"nuppy-backend/middleware"
	"nuppy-backend/stores"
)

type LogController struct {
	*base.BaseController
	logs *stores.LogStore
}

func NewLogController(logsStore *stores.LogStore) *LogController {
	return &LogController{
		BaseController: &base.BaseController{},
		logs:           logsStore,
	}
}

// VerLogs muestra el registro de auditoría con las referencias resueltas.
// Actores o calificaciones ya borrados aparecen con su placeholder, nunca
// como error.
func (lc *LogController) VerLogs(c *gin.Context) {
	vistas, err := lc.logs.ListarResueltos(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Mensaje": "No se pudo cargar el registro de auditoría."})
		return
	}
	u, _ := middleware.UsuarioActual(c)
	c.HTML(http.StatusOK, "logs.html", gin.H{"Usuario": u, "Entradas": vistas})
}
