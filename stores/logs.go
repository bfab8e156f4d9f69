package stores

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"nuppy-backend/metrics"
	"nuppy-backend/models"
)

// LogStore escribe y lee el registro de auditoría.
type LogStore struct {
	db *gorm.DB
}

func NewLogStore(db *gorm.DB) *LogStore {
	return &LogStore{db: db}
}

// Registrar agrega una entrada inmutable. Nunca interrumpe la operación que
// lo dispara: si la escritura falla queda una advertencia en el log del
// proceso y se sigue.
func (s *LogStore) Registrar(ctx context.Context, actor models.Usuario, accion string, calificacionRef string, usuarioAfectadoRef string) {
	entrada := models.LogEntrada{
		UsuarioID:          strconv.FormatUint(uint64(actor.ID), 10),
		EmailUsuario:       actor.Email,
		Accion:             accion,
		CalificacionRef:    calificacionRef,
		UsuarioAfectadoRef: usuarioAfectadoRef,
		Fecha:              time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&entrada).Error; err != nil {
		log.Printf("advertencia: no se pudo registrar la acción %q en el log: %v", accion, err)
		return
	}
	metrics.LogsTotal.Inc()
}

func (s *LogStore) Listar(ctx context.Context) ([]models.LogEntrada, error) {
	entradas := make([]models.LogEntrada, 0)
	if err := s.db.WithContext(ctx).Order("fecha DESC, id DESC").Find(&entradas).Error; err != nil {
		return nil, err
	}
	return entradas, nil
}

// LogVista es una entrada con las referencias débiles resueltas para mostrar.
// Actor y Afectado caen a un texto fijo cuando el destino ya no existe.
type LogVista struct {
	models.LogEntrada
	Actor    string `json:"actor"`
	Afectado string `json:"afectado"`
}

const (
	ActorDesconocido     = "desconocido"
	AfectadoNoEncontrado = "no encontrado"
)

// ListarResueltos devuelve las entradas más nuevas primero, con los ids
// crudos decodificados (ExtraerID) y resueltos contra usuarios y
// calificaciones. Un destino borrado no es un error, es un placeholder.
func (s *LogStore) ListarResueltos(ctx context.Context) ([]LogVista, error) {
	entradas, err := s.Listar(ctx)
	if err != nil {
		return nil, err
	}

	vistas := make([]LogVista, 0, len(entradas))
	for _, e := range entradas {
		v := LogVista{LogEntrada: e, Actor: ActorDesconocido}

		if id := models.ExtraerID(e.UsuarioID); id != "" {
			var u models.Usuario
			if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err == nil {
				v.Actor = u.Nombre
			}
		}

		if e.CalificacionRef != "" {
			v.Afectado = AfectadoNoEncontrado
			if id := models.ExtraerID(e.CalificacionRef); id != "" {
				var c models.Calificacion
				if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err == nil {
					v.Afectado = fmt.Sprintf("calificación %d (%s %d)", c.ID, c.Mercado, c.Ejercicio)
				}
			}
		} else if e.UsuarioAfectadoRef != "" {
			v.Afectado = AfectadoNoEncontrado
			if id := models.ExtraerID(e.UsuarioAfectadoRef); id != "" {
				var u models.Usuario
				if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err == nil {
					v.Afectado = fmt.Sprintf("usuario %s", u.Email)
				}
			}
		}

		vistas = append(vistas, v)
	}
	return vistas, nil
}
