package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("no se encontró .env, se usa el entorno del proceso")
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault devuelve el valor de la variable o el default si está vacía.
func GetEnvDefault(key string, porDefecto string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return porDefecto
}
