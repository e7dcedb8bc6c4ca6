package dto

type CreateEvidenciaDTO struct {
	Tipo       string  `json:"tipo" validate:"required,oneof=photo video audio note"`
	Referencia *string `json:"referencia"`
	Texto      *string `json:"texto"`
}
