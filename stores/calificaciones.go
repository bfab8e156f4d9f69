package stores

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"nuppy-backend/models"
)

type CalificacionStore struct {
	db *gorm.DB
}

func NewCalificacionStore(db *gorm.DB) *CalificacionStore {
	return &CalificacionStore{db: db}
}

// FiltroCalificacion llega crudo desde la query string; los campos vacíos o
// no parseables se descartan, no se rechazan.
type FiltroCalificacion struct {
	Mercado string
	Origen  string
	Periodo string
}

func (s *CalificacionStore) Crear(ctx context.Context, c *models.Calificacion) error {
	c.FechaModificacion = time.Now()
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *CalificacionStore) Obtener(ctx context.Context, id uint) (models.Calificacion, error) {
	var c models.Calificacion
	err := s.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c, ErrNoEncontrado
	}
	return c, err
}

// Guardar persiste el registro completo y vuelve a sellar la fecha de
// modificación. El registro tiene que venir de Obtener; un id inexistente ya
// falló ahí.
func (s *CalificacionStore) Guardar(ctx context.Context, c *models.Calificacion) error {
	c.FechaModificacion = time.Now()
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *CalificacionStore) Eliminar(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Calificacion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}

// Buscar combina los filtros con AND y ordena por fecha de modificación
// descendente. Sin paginación: el volumen de este dominio no la necesita.
func (s *CalificacionStore) Buscar(ctx context.Context, f FiltroCalificacion) ([]models.Calificacion, error) {
	q := s.db.WithContext(ctx).Model(&models.Calificacion{})

	if v := strings.TrimSpace(f.Mercado); v != "" {
		q = q.Where("mercado = ?", v)
	}
	if v := strings.TrimSpace(f.Origen); v != "" {
		q = q.Where("origen = ?", v)
	}
	if v := strings.TrimSpace(f.Periodo); v != "" {
		if anio, err := strconv.Atoi(v); err == nil {
			q = q.Where("ejercicio = ?", anio)
		}
		// un periodo no numérico se ignora en silencio
	}

	filas := make([]models.Calificacion, 0)
	if err := q.Order("fecha_modificacion DESC").Find(&filas).Error; err != nil {
		return nil, err
	}
	return filas, nil
}
