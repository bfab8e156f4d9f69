// Package factores implementa el motor de cálculo de factores: convierte los
// montos ingresados por bucket (8..37) en factores proporcionales
// normalizados. El motor es puro: sin I/O, sin estado, misma entrada produce
// siempre la misma salida.
package factores

import (
	"github.com/shopspring/decimal"

	"nuppy-backend/models"
)

const (
	// la suma base toma los montos de los buckets 8..19
	baseHasta = 19
	// la suma secundaria (divisor del Factor18 en la variante parcial)
	// toma los buckets 8..10
	secundariaHasta = 10

	bucketFactor18 = 18
	bucketFactor19 = 19
)

// Entrada agrupa los montos por bucket más los dos montos auxiliares que la
// variante parcial usa para los factores 18 y 19. Los buckets ausentes del
// mapa valen 0.
type Entrada struct {
	Montos        map[int]decimal.Decimal
	RentasExentas decimal.Decimal
	MontoFactor19 decimal.Decimal
}

func (e Entrada) monto(n int) decimal.Decimal {
	if m, ok := e.Montos[n]; ok {
		return m
	}
	return decimal.Zero
}

// Resultado trae los 30 factores (siempre las 30 claves, sin huecos) y la
// suma base calculada, que se muestra como diagnóstico.
type Resultado struct {
	Factores map[int]decimal.Decimal
	SumaBase decimal.Decimal
}

// Estrategia es una variante del cálculo. Hay dos: la uniforme, que usan los
// endpoints en producción, y la parcial heredada del script de verificación.
type Estrategia interface {
	Calcular(e Entrada) Resultado
}

// SumaBase suma los montos de los buckets 8..19, el divisor principal.
func SumaBase(e Entrada) decimal.Decimal {
	total := decimal.Zero
	for n := models.BucketMinimo; n <= baseHasta; n++ {
		total = total.Add(e.monto(n))
	}
	return total
}

func sumaSecundaria(e Entrada) decimal.Decimal {
	total := decimal.Zero
	for n := models.BucketMinimo; n <= secundariaHasta; n++ {
		total = total.Add(e.monto(n))
	}
	return total
}

func resultadoEnCero(base decimal.Decimal) Resultado {
	factores := make(map[int]decimal.Decimal, len(models.Buckets))
	for _, n := range models.Buckets {
		factores[n] = decimal.Zero
	}
	return Resultado{Factores: factores, SumaBase: base}
}

// EstrategiaUniforme es la variante de producción: todos los buckets 8..37
// se dividen por la suma base. Con suma base cero todos los factores quedan
// en 0.
type EstrategiaUniforme struct{}

func (EstrategiaUniforme) Calcular(e Entrada) Resultado {
	base := SumaBase(e)
	res := resultadoEnCero(base)
	if base.IsZero() {
		return res
	}
	for _, n := range models.Buckets {
		res.Factores[n] = Dividir(e.monto(n), base)
	}
	return res
}

// EstrategiaParcial reproduce la variante heredada del script de
// verificación: los buckets 8..12 no se calculan (quedan en 0), el Factor18
// divide RentasExentas por la suma secundaria y el Factor19 divide su monto
// auxiliar por la suma base. Se mantiene porque todavía circulan reportes
// generados con ella; ningún endpoint la usa.
type EstrategiaParcial struct{}

func (EstrategiaParcial) Calcular(e Entrada) Resultado {
	base := SumaBase(e)
	res := resultadoEnCero(base)
	for n := 13; n <= models.BucketMaximo; n++ {
		switch n {
		case bucketFactor18:
			res.Factores[n] = Dividir(e.RentasExentas, sumaSecundaria(e))
		case bucketFactor19:
			res.Factores[n] = Dividir(e.MontoFactor19, base)
		default:
			res.Factores[n] = Dividir(e.monto(n), base)
		}
	}
	return res
}
