package config

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// DBs guarda las conexiones abiertas por alias, para que cualquier capa pida
// la misma conexión sin reabrirla.
var DBs map[string]*gorm.DB = make(map[string]*gorm.DB)

func ConnectDB(alias string, path string) (*gorm.DB, error) {

	// Singleton - si ya hay una conexión con ese alias se reutiliza
	if db, exists := DBs[alias]; exists {
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("error trying to connect to database: %w", err)
	}

	DBs[alias] = db
	return db, nil
}
