package metadomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsTokenError verifica se o erro está relacionado a credencial inválida ou expirada
func (e *ErrorResponse) IsTokenError() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	return e.Error.Code == 190 || e.Error.Type == "OAuthException"
}

// RemoteError é retornado quando a API do Meta responde com erro ou a
// comunicação falha
type RemoteError struct {
	StatusCode int
	Details    *ErrorDetails
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("meta api error (code=%d): %s", e.Details.Code, e.Details.Message)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("meta api error (status=%d)", e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
