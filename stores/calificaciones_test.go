package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"nuppy-backend/models"
)

func TestCalificacionCicloDeVida(t *testing.T) {
	ctx := context.Background()
	store := NewCalificacionStore(abrirDB(t))

	cal := models.Calificacion{Mercado: "bcs", Ejercicio: 2024}
	if err := store.Crear(ctx, &cal); err != nil {
		t.Fatalf("crear: %v", err)
	}
	if cal.ID == 0 {
		t.Fatal("crear no asignó id")
	}
	if cal.FechaModificacion.IsZero() {
		t.Fatal("crear no selló la fecha de modificación")
	}

	tercio, _ := decimal.NewFromString("0.33333333")
	cal.AsignarFactor(13, tercio)
	antes := cal.FechaModificacion
	time.Sleep(10 * time.Millisecond)
	if err := store.Guardar(ctx, &cal); err != nil {
		t.Fatalf("guardar: %v", err)
	}
	if !cal.FechaModificacion.After(antes) {
		t.Fatal("guardar no volvió a sellar la fecha de modificación")
	}

	leida, err := store.Obtener(ctx, cal.ID)
	if err != nil {
		t.Fatalf("obtener: %v", err)
	}
	if !leida.FactorDe(13).Equal(tercio) {
		t.Fatalf("el factor 13 no sobrevivió el roundtrip: %s", leida.FactorDe(13))
	}
	if !leida.FactorDe(20).IsZero() {
		t.Fatalf("el factor 20 debería seguir en cero: %s", leida.FactorDe(20))
	}

	if err := store.Eliminar(ctx, cal.ID); err != nil {
		t.Fatalf("eliminar: %v", err)
	}
	if _, err := store.Obtener(ctx, cal.ID); !errors.Is(err, ErrNoEncontrado) {
		t.Fatalf("obtener tras eliminar: esperaba ErrNoEncontrado, fue %v", err)
	}
	if err := store.Eliminar(ctx, cal.ID); !errors.Is(err, ErrNoEncontrado) {
		t.Fatalf("eliminar inexistente: esperaba ErrNoEncontrado, fue %v", err)
	}
}

func TestBuscarCombinaFiltrosYOrdena(t *testing.T) {
	ctx := context.Background()
	store := NewCalificacionStore(abrirDB(t))

	sembrar := func(mercado, origen string, ejercicio int) uint {
		c := models.Calificacion{Mercado: mercado, Origen: origen, Ejercicio: ejercicio}
		if err := store.Crear(ctx, &c); err != nil {
			t.Fatalf("sembrar: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
		return c.ID
	}

	primera := sembrar("bcs", "chile", 2023)
	_ = sembrar("bcs", "extranjero", 2024)
	ultima := sembrar("bec", "chile", 2023)

	todas, err := store.Buscar(ctx, FiltroCalificacion{})
	if err != nil {
		t.Fatalf("buscar sin filtros: %v", err)
	}
	if len(todas) != 3 {
		t.Fatalf("esperaba 3 filas, hubo %d", len(todas))
	}
	if todas[0].ID != ultima || todas[2].ID != primera {
		t.Fatalf("el orden no es por fecha de modificación descendente: %v", []uint{todas[0].ID, todas[1].ID, todas[2].ID})
	}

	porMercado, err := store.Buscar(ctx, FiltroCalificacion{Mercado: "bcs"})
	if err != nil {
		t.Fatalf("buscar por mercado: %v", err)
	}
	if len(porMercado) != 2 {
		t.Fatalf("mercado=bcs: esperaba 2, hubo %d", len(porMercado))
	}

	combinada, err := store.Buscar(ctx, FiltroCalificacion{Mercado: "bcs", Origen: "chile"})
	if err != nil {
		t.Fatalf("buscar combinada: %v", err)
	}
	if len(combinada) != 1 || combinada[0].ID != primera {
		t.Fatalf("los filtros no se combinaron con AND: %+v", combinada)
	}

	porPeriodo, err := store.Buscar(ctx, FiltroCalificacion{Periodo: "2023"})
	if err != nil {
		t.Fatalf("buscar por periodo: %v", err)
	}
	if len(porPeriodo) != 2 {
		t.Fatalf("periodo=2023: esperaba 2, hubo %d", len(porPeriodo))
	}

	// un periodo no numérico se descarta, no rechaza la búsqueda
	invalida, err := store.Buscar(ctx, FiltroCalificacion{Periodo: "abc"})
	if err != nil {
		t.Fatalf("buscar con periodo inválido: %v", err)
	}
	if len(invalida) != 3 {
		t.Fatalf("el periodo inválido debía ignorarse: hubo %d filas", len(invalida))
	}
}
