package stores

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"nuppy-backend/models"
)

func TestRegistrarYResolver(t *testing.T) {
	ctx := context.Background()
	db := abrirDB(t)
	usuarios := NewUsuarioStore(db)
	calificaciones := NewCalificacionStore(db)
	logs := NewLogStore(db)

	ana := models.Usuario{Nombre: "Ana", Email: "ana@nuppy.cl", HashPassword: "x"}
	if err := usuarios.Crear(ctx, &ana); err != nil {
		t.Fatalf("crear usuario: %v", err)
	}
	cal := models.Calificacion{Mercado: "bcs", Ejercicio: 2024}
	if err := calificaciones.Crear(ctx, &cal); err != nil {
		t.Fatalf("crear calificación: %v", err)
	}

	logs.Registrar(ctx, ana, "guardar_factores", strconv.FormatUint(uint64(cal.ID), 10), "")

	vistas, err := logs.ListarResueltos(ctx)
	if err != nil {
		t.Fatalf("listar: %v", err)
	}
	if len(vistas) != 1 {
		t.Fatalf("esperaba 1 entrada, hubo %d", len(vistas))
	}
	if vistas[0].Actor != "Ana" {
		t.Fatalf("el actor no se resolvió: %q", vistas[0].Actor)
	}
	if !strings.Contains(vistas[0].Afectado, "calificación") {
		t.Fatalf("la calificación no se resolvió: %q", vistas[0].Afectado)
	}

	// borrar el destino no invalida la entrada, sólo cambia el placeholder
	if err := calificaciones.Eliminar(ctx, cal.ID); err != nil {
		t.Fatalf("eliminar calificación: %v", err)
	}
	if _, err := usuarios.EliminarVarios(ctx, []uint{ana.ID}); err != nil {
		t.Fatalf("eliminar usuario: %v", err)
	}

	vistas, err = logs.ListarResueltos(ctx)
	if err != nil {
		t.Fatalf("listar tras borrar: %v", err)
	}
	if vistas[0].Actor != ActorDesconocido {
		t.Fatalf("esperaba actor %q, fue %q", ActorDesconocido, vistas[0].Actor)
	}
	if vistas[0].Afectado != AfectadoNoEncontrado {
		t.Fatalf("esperaba afectado %q, fue %q", AfectadoNoEncontrado, vistas[0].Afectado)
	}
	// el snapshot del email sobrevive al borrado del actor
	if vistas[0].EmailUsuario != "ana@nuppy.cl" {
		t.Fatalf("el snapshot de email se perdió: %q", vistas[0].EmailUsuario)
	}
}

func TestResolverReferenciasHeredadas(t *testing.T) {
	ctx := context.Background()
	db := abrirDB(t)
	logs := NewLogStore(db)

	// entradas migradas del almacén documental anterior, con referencias
	// serializadas en vez de ids planos
	heredadas := []models.LogEntrada{
		{
			UsuarioID:       "ObjectId('507f1f77bcf86cd799439011')",
			EmailUsuario:    "viejo@nuppy.cl",
			Accion:          "ingresar_calificacion",
			CalificacionRef: "DBRef('calificaciones', ObjectId('507f191e810c19729de860ea'))",
			Fecha:           time.Now(),
		},
		{
			UsuarioID:    "42",
			EmailUsuario: "otro@nuppy.cl",
			Accion:       "login",
			Fecha:        time.Now(),
		},
	}
	for i := range heredadas {
		if err := db.Create(&heredadas[i]).Error; err != nil {
			t.Fatalf("sembrar entrada heredada: %v", err)
		}
	}

	vistas, err := logs.ListarResueltos(ctx)
	if err != nil {
		t.Fatalf("listar no debe fallar con referencias heredadas: %v", err)
	}
	if len(vistas) != 2 {
		t.Fatalf("esperaba 2 entradas, hubo %d", len(vistas))
	}
	for _, v := range vistas {
		if v.Actor != ActorDesconocido {
			t.Fatalf("actor inexistente debía ser %q, fue %q", ActorDesconocido, v.Actor)
		}
	}
	for _, v := range vistas {
		if v.Accion == "ingresar_calificacion" && v.Afectado != AfectadoNoEncontrado {
			t.Fatalf("la referencia heredada debía resolver a %q, fue %q", AfectadoNoEncontrado, v.Afectado)
		}
	}
}

func TestRegistrarNoCortaAnteFallas(t *testing.T) {
	ctx := context.Background()
	db := abrirDB(t)
	logs := NewLogStore(db)

	// se tira la tabla para forzar la falla de escritura
	if err := db.Migrator().DropTable(&models.LogEntrada{}); err != nil {
		t.Fatalf("drop: %v", err)
	}

	// no debe entrar en pánico ni devolver nada: la falla se absorbe
	logs.Registrar(ctx, models.Usuario{ID: 1, Email: "ana@nuppy.cl"}, "login", "", "")
}
