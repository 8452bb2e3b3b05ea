package myerrors

import "errors"

var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrMembroNotFound     = errors.New("membro não encontrado")
	ErrEmailRegistered    = errors.New("email já cadastrado")

	ErrMissingFields            = errors.New("campos obrigatórios não informados")
	ErrConfirmationMismatch     = errors.New("confirmação de senha não confere")
	ErrIncorrectCurrentPassword = errors.New("senha atual incorreta")
	ErrInvalidCode              = errors.New("código inválido")
	ErrExpiredCode              = errors.New("código expirado")

	ErrUnauthorized = errors.New("não autorizado")
)
