package models

import "time"

// Usuario es una cuenta del sistema. HashPassword guarda el hash bcrypt,
// nunca la contraseña plana.
type Usuario struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nombre       string    `json:"nombre"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	HashPassword string    `json:"-"`
	EsAdmin      bool      `json:"es_admin"`
	FotoPerfil   string    `json:"foto_perfil"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Usuario) TableName() string { return "usuarios" }
