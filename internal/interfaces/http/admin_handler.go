package http

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-store/internal/application/auth"
	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/application/dto"
)

// AdminHandler login del operador y disparo de los trabajos del catálogo.
type AdminHandler struct {
	auth        *auth.AuthUseCase
	importUC    *catalog.ImportUseCase
	imageUC     *catalog.ImageUseCase
	catalogFile string
	log         zerolog.Logger
}

// NewAdminHandler construye el handler. imageUC puede ser nil si no hay almacenamiento de imágenes.
func NewAdminHandler(
	authUC *auth.AuthUseCase,
	importUC *catalog.ImportUseCase,
	imageUC *catalog.ImageUseCase,
	catalogFile string,
	log zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{auth: authUC, importUC: importUC, imageUC: imageUC, catalogFile: catalogFile, log: log}
}

// Login godoc
// @Summary      Iniciar sesión como operador
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.auth.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImportCatalog godoc
// @Summary      Importar catálogo
// @Description  Usa el archivo subido en el campo "file" o, si no hay, el archivo configurado.
// @Tags         admin
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file   formData  file  false  "CSV del catálogo (;)"
// @Param        clear  formData  bool  false  "Borrar catálogo antes de importar"
// @Success      200  {object}  catalog.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/catalog/import [post]
func (h *AdminHandler) ImportCatalog(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}

	path := h.catalogFile
	if fh, err := c.FormFile("file"); err == nil {
		tmp := filepath.Join(os.TempDir(), "catalog-"+uuid.NewString()+".csv")
		if err := c.SaveFile(fh, tmp); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPLOAD_FAILED", Message: err.Error()})
		}
		defer os.Remove(tmp)
		path = tmp
	}

	res, err := h.importUC.ImportFile(c.UserContext(), path, catalog.ImportOptions{Clear: in.Clear})
	if err != nil {
		h.log.Error().Err(err).Str("operator", GetUsername(c)).Msg("importación de catálogo fallida")
		return writeError(c, err)
	}
	h.log.Info().Str("operator", GetUsername(c)).Interface("result", res).Msg("catálogo importado desde la API")
	return c.JSON(res)
}

// DownloadImages godoc
// @Summary      Descargar imágenes de categoría
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImagesRequest  false  "force"
// @Success      200  {object}  catalog.ImageResult
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/admin/catalog/images [post]
func (h *AdminHandler) DownloadImages(c *fiber.Ctx) error {
	if h.imageUC == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IMAGES_DISABLED", Message: "almacenamiento de imágenes no configurado"})
	}
	var in dto.ImagesRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	res, err := h.imageUC.DownloadCategoryImages(c.UserContext(), in.Force)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
