package base

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

/*
BaseController concentra lo compartido por todos los controllers:
- helpers de respuesta con el sobre {success: ...}
- formateo de montos para pantalla
Se embebe en los controllers concretos para no duplicar.
*/
type BaseController struct{}

// OK responde 200 con success: true más el payload.
func (b *BaseController) OK(c *gin.Context, payload gin.H) {
	out := gin.H{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

// Fallo responde el sobre de error con un mensaje único.
func (b *BaseController) Fallo(c *gin.Context, status int, mensaje string) {
	c.JSON(status, gin.H{"success": false, "error": mensaje})
}

// FalloCampos responde 400 con mensajes por campo del formulario.
func (b *BaseController) FalloCampos(c *gin.Context, campos map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "errores": campos})
}

// FormatoMonto imprime un monto en formato es ($1.234,56), como se muestra
// la suma base en pantalla.
func (b *BaseController) FormatoMonto(monto decimal.Decimal) string {
	p := message.NewPrinter(language.Spanish)
	f, _ := monto.Float64()
	return p.Sprintf("$%.2f", f)
}
