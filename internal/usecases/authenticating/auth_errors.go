package authenticating

import (
	"errors"
	"fmt"
)

// Tipos de erros de autenticação personalizados
var (
	// Erros de autenticação
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrClientNotFound     = errors.New("cliente não encontrado")
	ErrInvalidToken       = errors.New("token inválido")
	ErrClientExists       = errors.New("cliente já existe")

	// Erros de validação
	ErrInvalidRequest      = errors.New("requisição inválida")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	// Erros de persistência
	ErrPersistence = errors.New("erro ao persistir o cadastro de clientes")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	ClientID string // ID do cliente envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewClientAuthError cria um novo erro de autenticação com contexto de cliente
func NewClientAuthError(baseErr error, code string, clientID string, details string) *AuthError {
	return &AuthError{
		Err:      baseErr,
		Code:     code,
		ClientID: clientID,
		Details:  details,
	}
}
