package usuarios

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"nuppy-backend/controllers/base"
	"nuppy-backend/middleware"
	"nuppy-backend/models"
	"nuppy-backend/services/fotos"
	"nuppy-backend/stores"
)

type UsuarioController struct {
	*base.BaseController
	usuarios *stores.UsuarioStore
	logs     *stores.LogStore
	fotos    *fotos.Almacen
}

func NewUsuarioController(usuarios *stores.UsuarioStore, logs *stores.LogStore, almacen *fotos.Almacen) *UsuarioController {
	return &UsuarioController{
		BaseController: &base.BaseController{},
		usuarios:       usuarios,
		logs:           logs,
		fotos:          almacen,
	}
}

// Administrar es la página de administración de cuentas.
func (uc *UsuarioController) Administrar(c *gin.Context) {
	lista, err := uc.usuarios.Listar(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Mensaje": "No se pudieron cargar los usuarios."})
		return
	}
	u, _ := middleware.UsuarioActual(c)
	c.HTML(http.StatusOK, "administrar.html", gin.H{"Usuario": u, "Usuarios": lista})
}

func validarDatos(nombre, email, password string, exigirPassword bool) map[string]string {
	campos := map[string]string{}
	if nombre == "" {
		campos["nombre"] = "el nombre es obligatorio"
	}
	if email == "" || !strings.Contains(email, "@") {
		campos["email"] = "el email es obligatorio y debe ser válido"
	}
	if exigirPassword && password == "" {
		campos["password"] = "la contraseña es obligatoria"
	}
	return campos
}

// CrearUsuario da de alta la cuenta y después guarda la foto. Si la foto
// falla se borra la cuenta recién creada: el alta es todo o nada aunque no
// haya transacción que cubra el archivo.
func (uc *UsuarioController) CrearUsuario(c *gin.Context) {
	ctx := c.Request.Context()

	nombre := strings.TrimSpace(c.PostForm("nombre"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if campos := validarDatos(nombre, email, password, true); len(campos) > 0 {
		uc.FalloCampos(c, campos)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.Fallo(c, http.StatusInternalServerError, "no se pudo procesar la contraseña")
		return
	}

	nuevo := models.Usuario{
		Nombre:       nombre,
		Email:        email,
		HashPassword: string(hash),
		EsAdmin:      c.PostForm("es_admin") == "on" || c.PostForm("es_admin") == "true",
	}
	if err := uc.usuarios.Crear(ctx, &nuevo); err != nil {
		if errors.Is(err, stores.ErrEmailDuplicado) {
			uc.FalloCampos(c, map[string]string{"email": err.Error()})
			return
		}
		uc.Fallo(c, http.StatusInternalServerError, "no se pudo crear el usuario")
		return
	}

	if fh, err := c.FormFile("foto"); err == nil && fh != nil {
		ruta, err := uc.fotos.Guardar(nuevo.ID, fh)
		if err != nil {
			// compensación manual: la cuenta no queda a medias sin su foto
			if _, derr := uc.usuarios.EliminarVarios(ctx, []uint{nuevo.ID}); derr != nil {
				uc.Fallo(c, http.StatusInternalServerError, "falló la foto y no se pudo revertir el alta")
				return
			}
			uc.FalloCampos(c, map[string]string{"foto": err.Error()})
			return
		}
		nuevo.FotoPerfil = ruta
		if err := uc.usuarios.Actualizar(ctx, &nuevo); err != nil {
			uc.Fallo(c, http.StatusInternalServerError, "no se pudo asociar la foto")
			return
		}
	}

	actor, _ := middleware.UsuarioActual(c)
	uc.logs.Registrar(ctx, actor, "crear_usuario", "", strconv.FormatUint(uint64(nuevo.ID), 10))
	uc.OK(c, gin.H{"id": nuevo.ID})
}

// EliminarUsuarios borra las cuentas pedidas, menos la del propio actor.
func (uc *UsuarioController) EliminarUsuarios(c *gin.Context) {
	ctx := c.Request.Context()
	actor, _ := middleware.UsuarioActual(c)

	crudos := c.PostFormArray("ids")
	if len(crudos) == 1 && strings.Contains(crudos[0], ",") {
		crudos = strings.Split(crudos[0], ",")
	}

	ids := make([]uint, 0, len(crudos))
	for _, v := range crudos {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			uc.Fallo(c, http.StatusBadRequest, "id de usuario inválido: "+v)
			return
		}
		if uint(id) == actor.ID {
			uc.Fallo(c, http.StatusBadRequest, stores.ErrAutoEliminacion.Error())
			return
		}
		ids = append(ids, uint(id))
	}
	if len(ids) == 0 {
		uc.Fallo(c, http.StatusBadRequest, "no se indicó ningún usuario a eliminar")
		return
	}

	borrados, err := uc.usuarios.EliminarVarios(ctx, ids)
	if err != nil {
		uc.Fallo(c, http.StatusInternalServerError, "no se pudieron eliminar los usuarios")
		return
	}
	// sólo las cuentas que existían dejan rastro en la auditoría
	for _, id := range borrados {
		uc.logs.Registrar(ctx, actor, "eliminar_usuario", "", strconv.FormatUint(uint64(id), 10))
	}
	uc.OK(c, gin.H{"eliminados": len(borrados)})
}

// ObtenerUsuario devuelve una cuenta en JSON para precargar el formulario
// de edición. El hash nunca viaja (json:"-").
func (uc *UsuarioController) ObtenerUsuario(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		uc.Fallo(c, http.StatusBadRequest, "id inválido")
		return
	}
	u, err := uc.usuarios.Obtener(c.Request.Context(), uint(id))
	if errors.Is(err, stores.ErrNoEncontrado) {
		uc.Fallo(c, http.StatusNotFound, "usuario no encontrado")
		return
	}
	if err != nil {
		uc.Fallo(c, http.StatusInternalServerError, "error buscando el usuario")
		return
	}
	uc.OK(c, gin.H{"usuario": u})
}

// ModificarUsuario actualiza nombre, email, rol y opcionalmente contraseña
// y foto. La foto acá es best effort: si falla se informa el campo pero el
// resto de los cambios ya quedaron.
func (uc *UsuarioController) ModificarUsuario(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(strings.TrimSpace(c.PostForm("usuario_id")), 10, 64)
	if err != nil {
		uc.Fallo(c, http.StatusBadRequest, "usuario_id inválido")
		return
	}
	u, err := uc.usuarios.Obtener(ctx, uint(id))
	if errors.Is(err, stores.ErrNoEncontrado) {
		uc.Fallo(c, http.StatusNotFound, "usuario no encontrado")
		return
	}
	if err != nil {
		uc.Fallo(c, http.StatusInternalServerError, "error buscando el usuario")
		return
	}

	nombre := strings.TrimSpace(c.PostForm("nombre"))
	email := strings.TrimSpace(c.PostForm("email"))
	if campos := validarDatos(nombre, email, "", false); len(campos) > 0 {
		uc.FalloCampos(c, campos)
		return
	}

	u.Nombre = nombre
	u.Email = email
	u.EsAdmin = c.PostForm("es_admin") == "on" || c.PostForm("es_admin") == "true"

	if password := c.PostForm("password"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			uc.Fallo(c, http.StatusInternalServerError, "no se pudo procesar la contraseña")
			return
		}
		u.HashPassword = string(hash)
	}

	if fh, err := c.FormFile("foto"); err == nil && fh != nil {
		ruta, err := uc.fotos.Guardar(u.ID, fh)
		if err != nil {
			uc.FalloCampos(c, map[string]string{"foto": err.Error()})
			return
		}
		u.FotoPerfil = ruta
	}

	if err := uc.usuarios.Actualizar(ctx, &u); err != nil {
		if errors.Is(err, stores.ErrEmailDuplicado) {
			uc.FalloCampos(c, map[string]string{"email": err.Error()})
			return
		}
		uc.Fallo(c, http.StatusInternalServerError, "no se pudo modificar el usuario")
		return
	}

	actor, _ := middleware.UsuarioActual(c)
	uc.logs.Registrar(ctx, actor, "modificar_usuario", "", strconv.FormatUint(uint64(u.ID), 10))
	uc.OK(c, gin.H{"id": u.ID})
}
