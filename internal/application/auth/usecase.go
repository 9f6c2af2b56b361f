package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalog-store/internal/application/dto"
	"github.com/jhoicas/catalog-store/internal/domain"
	"github.com/jhoicas/catalog-store/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Operator credenciales del único operador del catálogo (hash bcrypt desde config).
type Operator struct {
	Username     string
	PasswordHash string
}

// AuthUseCase login del operador que administra el catálogo.
type AuthUseCase struct {
	operator Operator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operator Operator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login verifica usuario/password contra el hash configurado y genera un JWT con rol admin.
// Sin hash configurado el login queda deshabilitado (ErrForbidden).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.NewValidationError("username y password son requeridos")
	}
	if uc.operator.PasswordHash == "" {
		return nil, domain.ErrForbidden
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(uc.operator.Username)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, username, jwt.RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
