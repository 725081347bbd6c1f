// Package apierror provee la envoltura estándar de errores de la API.
// Todos los 4xx/5xx pasan por acá para mantener consistencia y no filtrar
// detalles internos (stack traces, errores de DB, etc.).
package apierror

// Códigos legibles por máquina. El cliente distingue por Code, no por texto:
// en particular LOTE_PRECIO_VENCIDO debe llevar al flujo de actualización de
// precio, no a un simple "reintente".
const (
	CodeValidacion    = "VALIDACION"
	CodePrecioVencido = "LOTE_PRECIO_VENCIDO"
	CodeAuth          = "AUTH"
	CodeInterno       = "INTERNO"
)

// APIError es la envoltura canónica de error para respuestas HTTP.
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Code: CodeValidacion, Detail: msg}
}

func WithCode(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// ValidationError agrupa errores por campo.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeValidacion, Detail: "Error de validacion", Fields: fields}
}
