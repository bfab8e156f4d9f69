package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nuppy-backend/config"
	"nuppy-backend/models"
	"nuppy-backend/routes"
	"nuppy-backend/stores"
	"nuppy-backend/utils"
)

// Colores para los mensajes de arranque
type Color string

const (
	Verde    Color = "verde"
	Rojo     Color = "rojo"
	Amarillo Color = "amarillo"
	Cian     Color = "cian"
)

var mapaColores = map[Color]string{
	Rojo:     "31m",
	Verde:    "32m",
	Amarillo: "33m",
	Cian:     "1;36m",
}

func main() {
	imprimir(Amarillo, "iniciando servidor...")

	imprimir(Amarillo, "cargando variables de entorno...")
	config.LoadEnv()

	imprimir(Amarillo, "conectando a la base de datos...")
	db, err := config.ConnectDB("nuppy", config.GetEnvDefault("DB_PATH", "nuppy.db"))
	if err != nil {
		log.Fatal(formatear(Rojo, "error al conectar la base de datos: "+err.Error()))
	}

	imprimir(Amarillo, "migrando el esquema...")
	if err := db.AutoMigrate(&models.Usuario{}, &models.Calificacion{}, &models.LogEntrada{}); err != nil {
		log.Fatal(formatear(Rojo, "error migrando el esquema: "+err.Error()))
	}

	if err := sembrarAdmin(db); err != nil {
		log.Fatal(formatear(Rojo, "error creando el usuario administrador inicial: "+err.Error()))
	}

	imprimir(Amarillo, "configurando rutas...")
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.LoadHTMLGlob("templates/*.html")

	routes.SetupRoutes(r, db, routes.Opciones{
		SecretoSesion:   config.GetEnvDefault("SESSION_SECRET", "cambiar-en-produccion"),
		MediaRoot:       config.GetEnvDefault("MEDIA_ROOT", "media"),
		ExtensionesFoto: utils.CargarLista(config.GetEnv("EXTENSIONES_FOTO"), []string{"jpg", "jpeg", "png", "gif"}),
	})

	port := config.GetEnvDefault("PORT", "8080")
	imprimir(Cian, "sirviendo HTTP en el puerto "+port)

	r.Run("0.0.0.0:" + port)
}

// sembrarAdmin crea el administrador inicial desde el entorno cuando la
// tabla de usuarios está vacía; sin ADMIN_EMAIL/ADMIN_PASSWORD no hace nada.
func sembrarAdmin(db *gorm.DB) error {
	ctx := context.Background()
	usuarios := stores.NewUsuarioStore(db)

	n, err := usuarios.Contar(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	email := config.GetEnv("ADMIN_EMAIL")
	password := config.GetEnv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		imprimir(Amarillo, "sin ADMIN_EMAIL/ADMIN_PASSWORD: no se crea administrador inicial")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.Usuario{
		Nombre:       "Administrador",
		Email:        email,
		HashPassword: string(hash),
		EsAdmin:      true,
	}
	if err := usuarios.Crear(ctx, &admin); err != nil {
		return err
	}
	imprimir(Verde, "administrador inicial creado: "+email)
	return nil
}

func formatear(color Color, mensaje string) string {
	val, ok := mapaColores[color]
	if !ok {
		return mensaje
	}
	return "\033[" + val + mensaje + "\033[0m"
}

func imprimir(color Color, mensaje string) {
	fmt.Println(formatear(color, mensaje))
}
