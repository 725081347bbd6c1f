package dto

type CrearClienteRequest struct {
	Identificacion string  `json:"identificacion" validate:"required"`
	Nombre         string  `json:"nombre"         validate:"required"`
	Telefono       *string `json:"telefono"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Direccion      *string `json:"direccion"`
}

type ClienteResponse struct {
	ID             string  `json:"id"`
	Identificacion string  `json:"identificacion"`
	Nombre         string  `json:"nombre"`
	Telefono       *string `json:"telefono"`
	Email          *string `json:"email"`
	Direccion      *string `json:"direccion"`
	Activo         bool    `json:"activo"`
}
