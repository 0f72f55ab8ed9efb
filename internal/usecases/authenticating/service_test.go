package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{SecretKey: "test-secret"}
	service := &Service{userRepo: mockUserRepo, cfg: cfg}

	passwordHash := hashPassword(t, "Senha@123")

	tests := []struct {
		name     string
		email    string
		password string
		setup    func()
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:     "Login válido deve retornar um token JWT",
			email:    "vendedor@loja.com",
			password: "Senha@123",
			setup: func() {
				mockUserRepo.EXPECT().
					GetUserByEmail("vendedor@loja.com").
					Return(&domain.User{
						ID:           1,
						Name:         "Ana",
						Email:        "vendedor@loja.com",
						Active:       true,
						RoleID:       3,
						PasswordHash: passwordHash,
					}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)

				claims, err := service.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, 1, claims.UserID)
				assert.Equal(t, 3, claims.UserRoleID)
			},
		},
		{
			name:     "Email deve ser normalizado antes da consulta",
			email:    "  Vendedor@Loja.com ",
			password: "Senha@123",
			setup: func() {
				mockUserRepo.EXPECT().
					GetUserByEmail("vendedor@loja.com").
					Return(&domain.User{
						ID:           1,
						Active:       true,
						PasswordHash: passwordHash,
					}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
		{
			name:     "Senha incorreta deve retornar erro de credenciais",
			email:    "vendedor@loja.com",
			password: "errada",
			setup: func() {
				mockUserRepo.EXPECT().
					GetUserByEmail("vendedor@loja.com").
					Return(&domain.User{
						ID:           1,
						Active:       true,
						PasswordHash: passwordHash,
					}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Empty(t, token)
			},
		},
		{
			name:     "Usuário desativado não deve conseguir logar",
			email:    "vendedor@loja.com",
			password: "Senha@123",
			setup: func() {
				mockUserRepo.EXPECT().
					GetUserByEmail("vendedor@loja.com").
					Return(&domain.User{
						ID:           1,
						Active:       false,
						PasswordHash: passwordHash,
					}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)
			},
		},
		{
			name:     "Usuário inexistente deve retornar erro específico",
			email:    "ninguem@loja.com",
			password: "Senha@123",
			setup: func() {
				mockUserRepo.EXPECT().
					GetUserByEmail("ninguem@loja.com").
					Return(nil, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserNotFound)
			},
		},
		{
			name:     "Credenciais vazias devem falhar sem consultar o banco",
			email:    "",
			password: "",
			setup:    func() {},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			token, err := service.LoginUser(tt.email, tt.password)
			tt.validate(t, token, err)
		})
	}
}

func TestService_ValidateToken_TokenInvalido(t *testing.T) {
	service := &Service{cfg: &config.Config{SecretKey: "test-secret"}}

	_, err := service.ValidateToken("token-invalido")
	assert.Error(t, err)
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service := &Service{}

	tests := []struct {
		name     string
		password string
		hasError bool
	}{
		{name: "Senha forte deve passar na validação", password: "Senha@123", hasError: false},
		{name: "Senha curta deve falhar", password: "S@1a", hasError: true},
		{name: "Sem maiúscula deve falhar", password: "senha@123", hasError: true},
		{name: "Sem minúscula deve falhar", password: "SENHA@123", hasError: true},
		{name: "Sem número deve falhar", password: "Senha@abc", hasError: true},
		{name: "Sem caractere especial deve falhar", password: "Senha1234", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)

			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := &Service{userRepo: mockUserRepo, cfg: &config.Config{SecretKey: "test-secret"}}

	passwordHash := hashPassword(t, "SenhaAtual@1")

	t.Run("Deve alterar a senha quando a atual confere e a nova é forte", func(t *testing.T) {
		mockUserRepo.EXPECT().
			GetUserByID(1).
			Return(&domain.User{ID: 1, PasswordHash: passwordHash}, nil)

		mockUserRepo.EXPECT().
			UpdateUser(gomock.Any()).
			Return(nil)

		err := service.ChangePassword(1, "SenhaAtual@1", "SenhaNova@2")
		assert.NoError(t, err)
	})

	t.Run("Senha atual incorreta deve impedir a troca", func(t *testing.T) {
		mockUserRepo.EXPECT().
			GetUserByID(1).
			Return(&domain.User{ID: 1, PasswordHash: passwordHash}, nil)

		err := service.ChangePassword(1, "errada", "SenhaNova@2")
		assert.EqualError(t, err, "senha atual incorreta")
	})

	t.Run("Nova senha fraca deve ser rejeitada", func(t *testing.T) {
		mockUserRepo.EXPECT().
			GetUserByID(1).
			Return(&domain.User{ID: 1, PasswordHash: passwordHash}, nil)

		err := service.ChangePassword(1, "SenhaAtual@1", "fraca")
		assert.Error(t, err)
	})
}

func TestService_GenerateStrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := &Service{userRepo: mockUserRepo, cfg: &config.Config{SecretKey: "test-secret"}}

	t.Run("Administrador deve conseguir gerar senha para outro usuário", func(t *testing.T) {
		mockUserRepo.EXPECT().
			GetUserByID(1).
			Return(&domain.User{ID: 1, RoleID: 1}, nil)

		mockUserRepo.EXPECT().
			GetUserByID(2).
			Return(&domain.User{ID: 2, RoleID: 3}, nil)

		mockUserRepo.EXPECT().
			UpdateUser(gomock.Any()).
			Return(nil)

		password, err := service.GenerateStrongPassword(1, 2)

		assert.NoError(t, err)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	})

	t.Run("Usuário comum não deve conseguir gerar senhas", func(t *testing.T) {
		mockUserRepo.EXPECT().
			GetUserByID(3).
			Return(&domain.User{ID: 3, RoleID: 3}, nil)

		_, err := service.GenerateStrongPassword(3, 2)
		assert.EqualError(t, err, "apenas administradores podem gerar novas senhas")
	})
}
