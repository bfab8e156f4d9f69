// Package stores concentra la persistencia sobre gorm. Cada store recibe la
// conexión por constructor; no hay estado global acá.
package stores

import "errors"

var (
	ErrNoEncontrado    = errors.New("registro no encontrado")
	ErrEmailDuplicado  = errors.New("el email ya está registrado")
	ErrAutoEliminacion = errors.New("un usuario no puede eliminarse a sí mismo")
)
