// Package fotos guarda las fotos de perfil bajo la raíz de medios y las
// ajusta a 500x500 cuando la imagen se puede decodificar.
package fotos

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// SubcarpetaPerfiles cuelga de la raíz de medios configurada.
	SubcarpetaPerfiles = "fotos_perfil"

	// TamanoMaximo es el límite de 5MB por foto.
	TamanoMaximo = 5 << 20

	ladoMaximo = 500
)

type Almacen struct {
	raiz        string
	extensiones map[string]bool
}

func NewAlmacen(raiz string, extensiones []string) *Almacen {
	permitidas := make(map[string]bool, len(extensiones))
	for _, e := range extensiones {
		permitidas[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	return &Almacen{raiz: raiz, extensiones: permitidas}
}

// Validar chequea tamaño y extensión antes de tocar el disco.
func (a *Almacen) Validar(fh *multipart.FileHeader) error {
	if fh.Size > TamanoMaximo {
		return fmt.Errorf("la foto supera el máximo de 5MB")
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !a.extensiones[ext] {
		return fmt.Errorf("extensión de foto no permitida: %q", ext)
	}
	return nil
}

// Guardar escribe la foto como usuario_{id}_{nombre original} y después
// intenta ajustarla a 500x500 conservando la proporción. Si la imagen no se
// puede decodificar queda guardada tal cual; eso no corta el alta.
// Devuelve la ruta relativa a la raíz de medios.
func (a *Almacen) Guardar(idUsuario uint, fh *multipart.FileHeader) (string, error) {
	if err := a.Validar(fh); err != nil {
		return "", err
	}

	dir := filepath.Join(a.raiz, SubcarpetaPerfiles)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creando la carpeta de fotos: %w", err)
	}

	nombre := fmt.Sprintf("usuario_%d_%s", idUsuario, filepath.Base(fh.Filename))
	destino := filepath.Join(dir, nombre)

	origen, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("error abriendo la foto subida: %w", err)
	}
	defer origen.Close()

	salida, err := os.Create(destino)
	if err != nil {
		return "", fmt.Errorf("error creando el archivo de foto: %w", err)
	}
	if _, err := io.Copy(salida, origen); err != nil {
		salida.Close()
		os.Remove(destino)
		return "", fmt.Errorf("error escribiendo la foto: %w", err)
	}
	if err := salida.Close(); err != nil {
		return "", fmt.Errorf("error cerrando el archivo de foto: %w", err)
	}

	a.redimensionar(destino)

	return filepath.Join(SubcarpetaPerfiles, nombre), nil
}

// redimensionar es best effort: cualquier falla deja el original y avisa.
func (a *Almacen) redimensionar(ruta string) {
	img, err := imaging.Open(ruta)
	if err != nil {
		log.Printf("advertencia: no se pudo decodificar %s, se guarda sin redimensionar: %v", ruta, err)
		return
	}
	limites := img.Bounds()
	if limites.Dx() <= ladoMaximo && limites.Dy() <= ladoMaximo {
		return
	}
	ajustada := imaging.Fit(img, ladoMaximo, ladoMaximo, imaging.Lanczos)
	if err := imaging.Save(ajustada, ruta); err != nil {
		log.Printf("advertencia: no se pudo guardar %s redimensionada: %v", ruta, err)
	}
}
