package dto

// LoginRequest credenciales del operador del catálogo.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token JWT para las rutas de administración.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}

// ImportRequest opciones de la importación disparada desde la API (multipart o JSON).
type ImportRequest struct {
	Clear bool `json:"clear" form:"clear"`
}

// ImagesRequest opciones de la descarga de imágenes de categoría.
type ImagesRequest struct {
	Force bool `json:"force" form:"force"`
}
