package stores

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"nuppy-backend/models"
)

type UsuarioStore struct {
	db *gorm.DB
}

func NewUsuarioStore(db *gorm.DB) *UsuarioStore {
	return &UsuarioStore{db: db}
}

func (s *UsuarioStore) Crear(ctx context.Context, u *models.Usuario) error {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	if _, err := s.PorEmail(ctx, u.Email); err == nil {
		return ErrEmailDuplicado
	} else if !errors.Is(err, ErrNoEncontrado) {
		return err
	}
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *UsuarioStore) Obtener(ctx context.Context, id uint) (models.Usuario, error) {
	var u models.Usuario
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrNoEncontrado
	}
	return u, err
}

func (s *UsuarioStore) PorEmail(ctx context.Context, email string) (models.Usuario, error) {
	var u models.Usuario
	email = strings.TrimSpace(strings.ToLower(email))
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrNoEncontrado
	}
	return u, err
}

func (s *UsuarioStore) Listar(ctx context.Context) ([]models.Usuario, error) {
	usuarios := make([]models.Usuario, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&usuarios).Error; err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (s *UsuarioStore) Contar(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Usuario{}).Count(&n).Error
	return n, err
}

// Actualizar guarda el usuario completo. Rechaza el cambio de email si otro
// usuario distinto ya lo tiene; conservar el email propio está bien.
func (s *UsuarioStore) Actualizar(ctx context.Context, u *models.Usuario) error {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	existente, err := s.PorEmail(ctx, u.Email)
	if err == nil && existente.ID != u.ID {
		return ErrEmailDuplicado
	}
	if err != nil && !errors.Is(err, ErrNoEncontrado) {
		return err
	}
	return s.db.WithContext(ctx).Save(u).Error
}

// EliminarVarios borra por id y devuelve los ids que realmente existían y
// se borraron; los inexistentes se ignoran sin error. La regla de no
// auto-eliminarse la valida el caller, que sabe quién es el actor.
func (s *UsuarioStore) EliminarVarios(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	existentes := make([]uint, 0, len(ids))
	if err := s.db.WithContext(ctx).Model(&models.Usuario{}).Where("id IN ?", ids).Pluck("id", &existentes).Error; err != nil {
		return nil, err
	}
	if len(existentes) == 0 {
		return nil, nil
	}
	if err := s.db.WithContext(ctx).Delete(&models.Usuario{}, existentes).Error; err != nil {
		return nil, err
	}
	return existentes, nil
}
