package errors

import "fmt"

var (
	// Token e autenticação
	ErrMetodoAssinaturaInvalido = fmt.Errorf("método de assinatura do token inválido")
	ErrTokenInvalido            = fmt.Errorf("token inválido")
	ErrTokenExpirado            = fmt.Errorf("token expirado")
	ErrCabecalhoAuthVazio       = fmt.Errorf("cabeçalho de autorização ausente")
	ErrCabecalhoAuthInvalido    = fmt.Errorf("formato do cabeçalho de autorização inválido")
	ErrNaoAutenticado           = fmt.Errorf("não autenticado")

	// Escopo e permissão
	ErrAcessoNegado        = fmt.Errorf("acesso negado")
	ErrPerfilNaoEncontrado = fmt.Errorf("perfil não encontrado para o usuário autenticado")
	ErrTecnicoNaoAtribuido = fmt.Errorf("aceite a ordem de serviço antes de finalizar")
	ErrUserIDNaoEncontrado = fmt.Errorf("UserID não encontrado no contexto da requisição")

	// Gerais
	ErrNaoEncontrado = fmt.Errorf("registro não encontrado")
	ErrConflito      = fmt.Errorf("conflito de escrita concorrente, tente novamente")

	// Regras de negócio da OS
	ErrTecnicoOcupado = fmt.Errorf("técnico já possui uma OS em atendimento")
	ErrOSImutavel     = fmt.Errorf("OS concluída ou cancelada não pode ser alterada")
)

// ValidationError representa uma violação de regra de dados com mensagem
// estável para o usuário (datas fora de ordem, status sem campo obrigatório).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carrega o código HTTP junto com a mensagem estável; a causa
// original fica em Err apenas para log, nunca vaza na resposta.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string { return e.Message }

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}
