package models

import (
	"regexp"
	"strings"
	"time"
)

// LogEntrada es una entrada del registro de auditoría. Se escribe una vez y
// no se modifica ni se borra. Las referencias son débiles: guardan el id
// crudo y el destino puede desaparecer después sin invalidar la entrada.
// EmailUsuario es una copia del email del actor al momento de la acción.
type LogEntrada struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UsuarioID          string    `json:"usuario_id"`
	EmailUsuario       string    `json:"email_usuario"`
	Accion             string    `json:"accion"`
	CalificacionRef    string    `json:"calificacion_ref"`
	UsuarioAfectadoRef string    `json:"usuario_afectado_ref"`
	Fecha              time.Time `gorm:"index" json:"fecha"`
}

func (LogEntrada) TableName() string { return "logs" }

// Formatos heredados del almacén documental anterior: además del id plano
// ("42") hay entradas con ObjectId('...') sueltos y volcados DBRef(...).
var (
	reObjectID = regexp.MustCompile(`ObjectId\(['"]?([0-9a-fA-F]{24})['"]?\)`)
	reNumero   = regexp.MustCompile(`[0-9]+`)
)

// ExtraerID saca el identificador crudo de una referencia, sin importar si
// se guardó como id directo o como una de las serializaciones heredadas.
// Si no reconoce nada devuelve la referencia recortada tal cual.
func ExtraerID(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if m := reObjectID.FindStringSubmatch(ref); m != nil {
		return m[1]
	}
	if m := reNumero.FindString(ref); m != "" {
		return m
	}
	return ref
}
