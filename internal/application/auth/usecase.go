// Package auth registro, login y gestión de usuarios del panel. La
// configuración sensible (secreto JWT, email del superadmin) se inyecta en la
// construcción; nunca se lee del entorno dentro del caso de uso.
package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
	"github.com/factorg/factorg-api/pkg/jwt"
)

// Config configuración del caso de uso de auth.
type Config struct {
	JWTSecret       string
	JWTExpMinutes   int
	JWTIssuer       string
	SuperadminEmail string // este email recibe rol SUPERADMIN al registrarse
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	users repository.UserRepository
	cfg   Config
}

// NewUseCase construye el caso de uso.
func NewUseCase(users repository.UserRepository, cfg Config) *UseCase {
	return &UseCase{users: users, cfg: cfg}
}

// Register crea un usuario con hash bcrypt. Devuelve domain.ErrEmailExists si
// el email ya está registrado.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserView, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleUsuario
	}
	if uc.cfg.SuperadminEmail != "" && email == strings.ToLower(uc.cfg.SuperadminEmail) {
		role = entity.RoleSuperadmin
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		BusinessID:   in.BusinessID,
		CanDashboard: true,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if role == entity.RoleSuperadmin || role == entity.RoleAdmin {
		u.CanUploadXML = true
		u.CanViewTables = true
	}
	if err := uc.users.Create(u); err != nil {
		return nil, err
	}
	view := toUserView(u)
	return &view, nil
}

// Login verifica credenciales y emite el JWT con rol y negocio.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	businessID := ""
	if user.BusinessID != nil {
		businessID = *user.BusinessID
	}
	token, err := jwt.Generate(uc.cfg.JWTSecret, user.ID, user.Role, businessID, uc.cfg.JWTIssuer, uc.cfg.JWTExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserView(user)}, nil
}

// ListUsers todos los usuarios (solo administración).
func (uc *UseCase) ListUsers() ([]dto.UserView, error) {
	list, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserView, 0, len(list))
	for _, u := range list {
		out = append(out, toUserView(u))
	}
	return out, nil
}

// PatchUser aplica un parche de campos permitidos sobre un usuario.
func (uc *UseCase) PatchUser(id string, in dto.UserPatchRequest) (*dto.UserView, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.BusinessID != nil {
		user.BusinessID = in.BusinessID
	}
	if in.CanDashboard != nil {
		user.CanDashboard = *in.CanDashboard
	}
	if in.CanUploadXML != nil {
		user.CanUploadXML = *in.CanUploadXML
	}
	if in.CanViewTables != nil {
		user.CanViewTables = *in.CanViewTables
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

func toUserView(u *entity.User) dto.UserView {
	return dto.UserView{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Role:          u.Role,
		BusinessID:    u.BusinessID,
		CanDashboard:  u.CanDashboard,
		CanUploadXML:  u.CanUploadXML,
		CanViewTables: u.CanViewTables,
		Active:        u.Active,
	}
}
