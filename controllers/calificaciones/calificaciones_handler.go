package calificaciones

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"nuppy-backend/config"
	"nuppy-backend/controllers/base"
	"nuppy-backend/metrics"
	"nuppy-backend/middleware"
	"nuppy-backend/models"
	"nuppy-backend/services/factores"
	"nuppy-backend/stores"
	"nuppy-backend/utils"
)

// SecuenciaMinima es la regla de negocio sobre la secuencia de evento:
// cuando viene informada tiene que ser mayor a 10000.
const SecuenciaMinima = 10000

const formatoFecha = "2006-01-02"

type CalificacionController struct {
	*base.BaseController
	calificaciones *stores.CalificacionStore
	logs           *stores.LogStore
	motor          factores.Estrategia
}

func NewCalificacionController(calificaciones *stores.CalificacionStore, logs *stores.LogStore) *CalificacionController {
	return &CalificacionController{
		BaseController: &base.BaseController{},
		calificaciones: calificaciones,
		logs:           logs,
		// los endpoints en vivo calculan siempre con la variante uniforme
		motor: factores.EstrategiaUniforme{},
	}
}

func filtroDesdeQuery(c *gin.Context) stores.FiltroCalificacion {
	return stores.FiltroCalificacion{
		Mercado: c.Query("mercado"),
		Origen:  c.Query("origen"),
		Periodo: c.Query("periodo"),
	}
}

// Home es el tablero: lista de calificaciones con los filtros aplicados.
func (cc *CalificacionController) Home(c *gin.Context) {
	filtro := filtroDesdeQuery(c)
	filas, err := cc.calificaciones.Buscar(c.Request.Context(), filtro)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Mensaje": "No se pudieron cargar las calificaciones."})
		return
	}
	u, _ := middleware.UsuarioActual(c)
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Usuario":        u,
		"Calificaciones": filas,
		"Filtro":         filtro,
		"Mercados":       utils.CargarMapa(config.GetEnv("MERCADOS")),
	})
}

// BuscarCalificaciones es la variante AJAX del tablero: misma búsqueda,
// factores serializados como strings decimales de 8 dígitos.
func (cc *CalificacionController) BuscarCalificaciones(c *gin.Context) {
	filas, err := cc.calificaciones.Buscar(c.Request.Context(), filtroDesdeQuery(c))
	if err != nil {
		cc.Fallo(c, http.StatusInternalServerError, "error buscando calificaciones")
		return
	}
	items := make([]gin.H, 0, len(filas))
	for i := range filas {
		items = append(items, serializar(&filas[i]))
	}
	cc.OK(c, gin.H{"calificaciones": items})
}

func serializar(cal *models.Calificacion) gin.H {
	item := gin.H{
		"id":                 cal.ID,
		"mercado":            cal.Mercado,
		"origen":             cal.Origen,
		"instrumento":        cal.Instrumento,
		"descripcion":        cal.Descripcion,
		"ejercicio":          cal.Ejercicio,
		"fecha_modificacion": cal.FechaModificacion.Format("2006-01-02 15:04:05"),
	}
	if cal.FechaPago != nil {
		item["fecha_pago"] = cal.FechaPago.Format(formatoFecha)
	}
	if cal.SecuenciaEvento != nil {
		item["secuencia_evento"] = *cal.SecuenciaEvento
	}
	for n, v := range cal.Factores() {
		item[models.NombreFactor(n)] = factores.FormatoFijo(v)
	}
	return item
}

// IngresarPage renderiza el formulario de metadatos, vacío o precargado con
// ?id= para corregir una calificación existente.
func (cc *CalificacionController) IngresarPage(c *gin.Context) {
	datos := gin.H{"Buckets": models.Buckets}
	if u, ok := middleware.UsuarioActual(c); ok {
		datos["Usuario"] = u
	}
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err == nil {
			if cal, err := cc.calificaciones.Obtener(c.Request.Context(), uint(id)); err == nil {
				datos["Calificacion"] = cal
			}
		}
	}
	c.HTML(http.StatusOK, "ingresar.html", datos)
}

// Ingresar crea o actualiza los metadatos de una calificación (los factores
// van por /guardar-factores). Valida ejercicio y la regla de la secuencia.
func (cc *CalificacionController) Ingresar(c *gin.Context) {
	campos := map[string]string{}

	ejercicio, err := strconv.Atoi(strings.TrimSpace(c.PostForm("ejercicio")))
	if err != nil {
		campos["ejercicio"] = "el ejercicio es obligatorio y debe ser numérico"
	}

	var secuencia *int
	if v := strings.TrimSpace(c.PostForm("secuencia_evento")); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			campos["secuencia_evento"] = "la secuencia de evento debe ser numérica"
		case n <= SecuenciaMinima:
			campos["secuencia_evento"] = fmt.Sprintf("la secuencia de evento debe ser mayor a %d", SecuenciaMinima)
		default:
			secuencia = &n
		}
	}

	var fechaPago *time.Time
	if v := strings.TrimSpace(c.PostForm("fecha_pago")); v != "" {
		t, err := time.Parse(formatoFecha, v)
		if err != nil {
			campos["fecha_pago"] = "la fecha de pago debe tener formato AAAA-MM-DD"
		} else {
			fechaPago = &t
		}
	}

	if len(campos) > 0 {
		cc.FalloCampos(c, campos)
		return
	}

	actor, _ := middleware.UsuarioActual(c)
	ctx := c.Request.Context()

	idStr := strings.TrimSpace(c.PostForm("calificacion_id"))
	if idStr == "" {
		cal := models.Calificacion{
			Mercado:         strings.TrimSpace(c.PostForm("mercado")),
			Origen:          strings.TrimSpace(c.PostForm("origen")),
			Instrumento:     strings.TrimSpace(c.PostForm("instrumento")),
			Descripcion:     strings.TrimSpace(c.PostForm("descripcion")),
			Ejercicio:       ejercicio,
			FechaPago:       fechaPago,
			SecuenciaEvento: secuencia,
		}
		if err := cc.calificaciones.Crear(ctx, &cal); err != nil {
			cc.Fallo(c, http.StatusInternalServerError, "no se pudo crear la calificación")
			return
		}
		cc.logs.Registrar(ctx, actor, "ingresar_calificacion", strconv.FormatUint(uint64(cal.ID), 10), "")
		cc.OK(c, gin.H{"id": cal.ID})
		return
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		cc.Fallo(c, http.StatusBadRequest, "calificacion_id inválido")
		return
	}
	cal, err := cc.calificaciones.Obtener(ctx, uint(id))
	if errors.Is(err, stores.ErrNoEncontrado) {
		cc.Fallo(c, http.StatusNotFound, "calificación no encontrada")
		return
	}
	if err != nil {
		cc.Fallo(c, http.StatusInternalServerError, "error buscando la calificación")
		return
	}

	cal.Mercado = strings.TrimSpace(c.PostForm("mercado"))
	cal.Origen = strings.TrimSpace(c.PostForm("origen"))
	cal.Instrumento = strings.TrimSpace(c.PostForm("instrumento"))
	cal.Descripcion = strings.TrimSpace(c.PostForm("descripcion"))
	cal.Ejercicio = ejercicio
	cal.FechaPago = fechaPago
	cal.SecuenciaEvento = secuencia

	if err := cc.calificaciones.Guardar(ctx, &cal); err != nil {
		cc.Fallo(c, http.StatusInternalServerError, "no se pudo guardar la calificación")
		return
	}
	cc.logs.Registrar(ctx, actor, "modificar_calificacion", idStr, "")
	cc.OK(c, gin.H{"id": cal.ID})
}

// CalcularFactores corre el motor con los montos del formulario y devuelve
// los factores formateados para pantalla. No persiste nada: el guardado es
// una decisión aparte del usuario (/guardar-factores).
func (cc *CalificacionController) CalcularFactores(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(strings.TrimSpace(c.PostForm("calificacion_id")), 10, 64)
	if err != nil {
		cc.Fallo(c, http.StatusBadRequest, "calificacion_id inválido")
		return
	}
	if _, err := cc.calificaciones.Obtener(ctx, uint(id)); err != nil {
		if errors.Is(err, stores.ErrNoEncontrado) {
			cc.Fallo(c, http.StatusNotFound, "calificación no encontrada")
			return
		}
		cc.Fallo(c, http.StatusInternalServerError, "error buscando la calificación")
		return
	}

	campos := map[string]string{}
	montos := make(map[int]decimal.Decimal, len(models.Buckets))
	for _, n := range models.Buckets {
		nombre := fmt.Sprintf("monto_%d", n)
		v := strings.TrimSpace(c.PostForm(nombre))
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			campos[nombre] = "el monto debe ser numérico"
			continue
		}
		montos[n] = d
	}
	if len(campos) > 0 {
		cc.FalloCampos(c, campos)
		return
	}

	res := cc.motor.Calcular(factores.Entrada{Montos: montos})
	metrics.CalculosTotal.Inc()

	salida := make(gin.H, len(res.Factores))
	for n, v := range res.Factores {
		salida[models.NombreFactor(n)] = factores.FormatoCorto(v)
	}
	cc.OK(c, gin.H{
		"factores":            salida,
		"suma_base":           factores.FormatoCorto(res.SumaBase),
		"suma_base_formateada": cc.FormatoMonto(res.SumaBase),
	})
}

// GuardarFactores persiste los valores Factor08..Factor37 tal como vienen,
// sin recalcular ni acotar: es la vía de corrección manual.
func (cc *CalificacionController) GuardarFactores(c *gin.Context) {
	ctx := c.Request.Context()

	idStr := strings.TrimSpace(c.PostForm("calificacion_id"))
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		cc.Fallo(c, http.StatusBadRequest, "calificacion_id inválido")
		return
	}
	cal, err := cc.calificaciones.Obtener(ctx, uint(id))
	if errors.Is(err, stores.ErrNoEncontrado) {
		cc.Fallo(c, http.StatusNotFound, "calificación no encontrada")
		return
	}
	if err != nil {
		cc.Fallo(c, http.StatusInternalServerError, "error buscando la calificación")
		return
	}

	campos := map[string]string{}
	for _, n := range models.Buckets {
		nombre := models.NombreFactor(n)
		v := strings.TrimSpace(c.PostForm(nombre))
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			campos[nombre] = "el factor debe ser numérico"
			continue
		}
		cal.AsignarFactor(n, d)
	}
	if len(campos) > 0 {
		cc.FalloCampos(c, campos)
		return
	}

	if err := cc.calificaciones.Guardar(ctx, &cal); err != nil {
		cc.Fallo(c, http.StatusInternalServerError, "no se pudieron guardar los factores")
		return
	}
	actor, _ := middleware.UsuarioActual(c)
	cc.logs.Registrar(ctx, actor, "guardar_factores", idStr, "")
	cc.OK(c, gin.H{"id": cal.ID})
}

// Eliminar borra una calificación. Las entradas de auditoría que la
// referencian quedan como están: la referencia es débil a propósito.
func (cc *CalificacionController) Eliminar(c *gin.Context) {
	ctx := c.Request.Context()

	idStr := strings.TrimSpace(c.PostForm("calificacion_id"))
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		cc.Fallo(c, http.StatusBadRequest, "calificacion_id inválido")
		return
	}
	if err := cc.calificaciones.Eliminar(ctx, uint(id)); err != nil {
		if errors.Is(err, stores.ErrNoEncontrado) {
			cc.Fallo(c, http.StatusNotFound, "calificación no encontrada")
			return
		}
		cc.Fallo(c, http.StatusInternalServerError, "no se pudo eliminar la calificación")
		return
	}
	actor, _ := middleware.UsuarioActual(c)
	cc.logs.Registrar(ctx, actor, "eliminar_calificacion", idStr, "")
	cc.OK(c, gin.H{"id": id})
}
