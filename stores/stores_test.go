package stores

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"nuppy-backend/models"
)

func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "nuppy_test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir db: %v", err)
	}
	if err := db.AutoMigrate(&models.Usuario{}, &models.Calificacion{}, &models.LogEntrada{}); err != nil {
		t.Fatalf("migrar esquema: %v", err)
	}
	return db
}
