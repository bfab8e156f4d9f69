package factores_test

import (
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"nuppy-backend/models"
	"nuppy-backend/services/factores"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// montos del escenario de referencia: suma base 1525, suma secundaria 600
func montosEscenario() map[int]decimal.Decimal {
	return map[int]decimal.Decimal{
		8: d("100"), 9: d("200"), 10: d("300"), 11: d("150"), 12: d("250"),
		13: d("50"), 14: d("75"), 15: d("100"), 16: d("125"), 17: d("175"),
		20: d("200"), 21: d("300"),
	}
}

func TestEstrategiaUniforme(t *testing.T) {
	Convey("Dada la estrategia uniforme", t, func() {
		motor := factores.EstrategiaUniforme{}

		Convey("Con el escenario de referencia", func() {
			res := motor.Calcular(factores.Entrada{Montos: montosEscenario()})

			Convey("La suma base es 1525", func() {
				So(res.SumaBase.String(), ShouldEqual, "1525")
			})

			Convey("Todos los buckets se dividen por la suma base", func() {
				So(factores.FormatoFijo(res.Factores[8]), ShouldEqual, "0.06557377")
				So(factores.FormatoFijo(res.Factores[20]), ShouldEqual, "0.13114754")
				So(factores.FormatoFijo(res.Factores[21]), ShouldEqual, "0.19672131")
			})

			Convey("La salida trae siempre las 30 claves", func() {
				So(len(res.Factores), ShouldEqual, 30)
				for _, n := range models.Buckets {
					_, ok := res.Factores[n]
					So(ok, ShouldBeTrue)
				}
			})

			Convey("Con entradas no negativas todo factor queda en [0, 1]", func() {
				for _, f := range res.Factores {
					So(f.IsNegative(), ShouldBeFalse)
					So(f.LessThanOrEqual(d("1")), ShouldBeTrue)
				}
			})
		})

		Convey("Con suma base cero todos los factores son cero", func() {
			res := motor.Calcular(factores.Entrada{Montos: map[int]decimal.Decimal{
				// el bucket 20 no integra la suma base
				20: d("100"),
			}})
			So(res.SumaBase.IsZero(), ShouldBeTrue)
			for _, f := range res.Factores {
				So(f.IsZero(), ShouldBeTrue)
			}
		})

		Convey("El redondeo es a 8 decimales, mitad hacia arriba", func() {
			// suma base 1 + 2 = 3
			res := motor.Calcular(factores.Entrada{Montos: map[int]decimal.Decimal{
				8: d("1"), 9: d("2"),
			}})
			So(factores.FormatoFijo(res.Factores[8]), ShouldEqual, "0.33333333")
			So(factores.FormatoFijo(res.Factores[9]), ShouldEqual, "0.66666667")
		})

		Convey("Un monto en 8..19 integra su propio divisor", func() {
			// el bucket 13 también suma a la base: 3 + 1 = 4
			res := motor.Calcular(factores.Entrada{Montos: map[int]decimal.Decimal{
				8: d("3"), 13: d("1"),
			}})
			So(res.SumaBase.String(), ShouldEqual, "4")
			So(factores.FormatoFijo(res.Factores[13]), ShouldEqual, "0.25000000")
			So(factores.FormatoFijo(res.Factores[8]), ShouldEqual, "0.75000000")
		})

		Convey("Un ratio mayor a 1 se acota a 1", func() {
			res := motor.Calcular(factores.Entrada{Montos: map[int]decimal.Decimal{
				8: d("100"), 20: d("500"),
			}})
			So(factores.FormatoFijo(res.Factores[20]), ShouldEqual, "1.00000000")
		})

		Convey("Un monto negativo produce un factor negativo, no se acota por abajo", func() {
			res := motor.Calcular(factores.Entrada{Montos: map[int]decimal.Decimal{
				8: d("100"), 20: d("-50"),
			}})
			So(factores.FormatoFijo(res.Factores[20]), ShouldEqual, "-0.50000000")
		})

		Convey("El cálculo es determinista: dos corridas dan strings idénticos", func() {
			e := factores.Entrada{Montos: montosEscenario()}
			primera := motor.Calcular(e)
			segunda := motor.Calcular(e)
			for _, n := range models.Buckets {
				So(factores.FormatoFijo(segunda.Factores[n]), ShouldEqual, factores.FormatoFijo(primera.Factores[n]))
			}
		})
	})
}

func TestEstrategiaParcial(t *testing.T) {
	Convey("Dada la estrategia parcial heredada", t, func() {
		motor := factores.EstrategiaParcial{}
		entrada := factores.Entrada{
			Montos:        montosEscenario(),
			RentasExentas: d("150"),
			MontoFactor19: d("200"),
		}
		res := motor.Calcular(entrada)

		Convey("Los buckets 8..12 no se calculan", func() {
			for n := 8; n <= 12; n++ {
				So(res.Factores[n].IsZero(), ShouldBeTrue)
			}
		})

		Convey("Los buckets 13..17 y 20..37 dividen por la suma base", func() {
			So(factores.FormatoFijo(res.Factores[20]), ShouldEqual, "0.13114754")
			So(factores.FormatoFijo(res.Factores[21]), ShouldEqual, "0.19672131")
		})

		Convey("El Factor18 divide rentas exentas por la suma secundaria (8..10)", func() {
			// 150 / (100+200+300)
			So(factores.FormatoFijo(res.Factores[18]), ShouldEqual, "0.25000000")
		})

		Convey("El Factor19 divide su monto auxiliar por la suma base", func() {
			So(factores.FormatoFijo(res.Factores[19]), ShouldEqual, "0.13114754")
		})

		Convey("Diverge de la uniforme justamente en 8..12 y 18", func() {
			uniforme := factores.EstrategiaUniforme{}.Calcular(entrada)
			So(uniforme.Factores[8].IsZero(), ShouldBeFalse)
			So(res.Factores[8].IsZero(), ShouldBeTrue)
			// en la uniforme el 18 divide su propio monto (0) por la base
			So(uniforme.Factores[18].IsZero(), ShouldBeTrue)
			So(res.Factores[18].IsZero(), ShouldBeFalse)
		})

		Convey("Con todo en cero no hay división por cero", func() {
			vacio := motor.Calcular(factores.Entrada{})
			So(len(vacio.Factores), ShouldEqual, 30)
			for _, f := range vacio.Factores {
				So(f.IsZero(), ShouldBeTrue)
			}
		})
	})
}
