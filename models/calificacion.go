package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	BucketMinimo = 8
	BucketMaximo = 37
)

// Buckets enumera los números de factor válidos (8..37), en orden.
var Buckets = func() []int {
	nums := make([]int, 0, BucketMaximo-BucketMinimo+1)
	for n := BucketMinimo; n <= BucketMaximo; n++ {
		nums = append(nums, n)
	}
	return nums
}()

// NombreFactor devuelve el nombre de campo del bucket: 8 -> "Factor08".
func NombreFactor(n int) string {
	return fmt.Sprintf("Factor%02d", n)
}

// Calificacion es el registro de calificación con sus 30 factores
// proporcionales más los metadatos del evento.
type Calificacion struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Mercado           string     `json:"mercado"`
	Origen            string     `json:"origen"`
	Instrumento       string     `json:"instrumento"`
	Descripcion       string     `json:"descripcion"`
	Ejercicio         int        `gorm:"index" json:"ejercicio"`
	FechaPago         *time.Time `json:"fecha_pago"`
	SecuenciaEvento   *int       `json:"secuencia_evento"`
	FechaModificacion time.Time  `gorm:"index" json:"fecha_modificacion"`

	Factor08 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor08"`
	Factor09 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor09"`
	Factor10 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor10"`
	Factor11 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor11"`
	Factor12 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor12"`
	Factor13 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor13"`
	Factor14 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor14"`
	Factor15 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor15"`
	Factor16 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor16"`
	Factor17 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor17"`
	Factor18 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor18"`
	Factor19 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor19"`
	Factor20 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor20"`
	Factor21 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor21"`
	Factor22 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor22"`
	Factor23 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor23"`
	Factor24 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor24"`
	Factor25 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor25"`
	Factor26 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor26"`
	Factor27 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor27"`
	Factor28 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor28"`
	Factor29 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor29"`
	Factor30 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor30"`
	Factor31 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor31"`
	Factor32 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor32"`
	Factor33 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor33"`
	Factor34 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor34"`
	Factor35 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor35"`
	Factor36 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor36"`
	Factor37 decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"Factor37"`

	RentasExentas       decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"rentas_exentas"`
	Factor19A           decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"factor_19a"`
	Dividendo           decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"dividendo"`
	ValorHistorico      decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"valor_historico"`
	FactorActualizacion decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"factor_actualizacion"`
}

func (Calificacion) TableName() string { return "calificaciones" }

// punteros indexa las 30 columnas de factores por número de bucket, para que
// el resto del código recorra los factores con bucles en vez de tocar 30
// campos sueltos.
func (c *Calificacion) punteros() map[int]*decimal.Decimal {
	return map[int]*decimal.Decimal{
		8: &c.Factor08, 9: &c.Factor09, 10: &c.Factor10, 11: &c.Factor11,
		12: &c.Factor12, 13: &c.Factor13, 14: &c.Factor14, 15: &c.Factor15,
		16: &c.Factor16, 17: &c.Factor17, 18: &c.Factor18, 19: &c.Factor19,
		20: &c.Factor20, 21: &c.Factor21, 22: &c.Factor22, 23: &c.Factor23,
		24: &c.Factor24, 25: &c.Factor25, 26: &c.Factor26, 27: &c.Factor27,
		28: &c.Factor28, 29: &c.Factor29, 30: &c.Factor30, 31: &c.Factor31,
		32: &c.Factor32, 33: &c.Factor33, 34: &c.Factor34, 35: &c.Factor35,
		36: &c.Factor36, 37: &c.Factor37,
	}
}

// FactorDe devuelve el factor del bucket, o cero si el número no existe.
func (c *Calificacion) FactorDe(n int) decimal.Decimal {
	if p, ok := c.punteros()[n]; ok {
		return *p
	}
	return decimal.Zero
}

// AsignarFactor escribe el factor del bucket; números fuera de 8..37 se ignoran.
func (c *Calificacion) AsignarFactor(n int, v decimal.Decimal) {
	if p, ok := c.punteros()[n]; ok {
		*p = v
	}
}

// Factores devuelve los 30 factores indexados por bucket, siempre completo.
func (c *Calificacion) Factores() map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(Buckets))
	for n, p := range c.punteros() {
		out[n] = *p
	}
	return out
}
