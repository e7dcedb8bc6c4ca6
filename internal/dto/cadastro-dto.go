package dto

import "github.com/google/uuid"

type CreateClienteDTO struct {
	Nome      string  `json:"nome" validate:"required,min=2,max=255"`
	Documento *string `json:"documento"`
	Endereco  *string `json:"endereco"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type UpdateClienteDTO struct {
	Nome      *string `json:"nome" validate:"omitempty,min=2,max=255"`
	Documento *string `json:"documento"`
	Endereco  *string `json:"endereco"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Ativo     *bool   `json:"ativo"`
}

type CreateEquipamentoDTO struct {
	ClienteID   uuid.UUID `json:"cliente_id" validate:"required"`
	Nome        string    `json:"nome" validate:"required,min=2,max=255"`
	Fabricante  *string   `json:"fabricante"`
	Modelo      *string   `json:"modelo"`
	NumeroSerie *string   `json:"numero_serie"`
	Localizacao *string   `json:"localizacao"`
}

type UpdateEquipamentoDTO struct {
	Nome        *string `json:"nome" validate:"omitempty,min=2,max=255"`
	Fabricante  *string `json:"fabricante"`
	Modelo      *string `json:"modelo"`
	NumeroSerie *string `json:"numero_serie"`
	Localizacao *string `json:"localizacao"`
	Ativo       *bool   `json:"ativo"`
}

type CreateColaboradorDTO struct {
	Nome     string  `json:"nome" validate:"required,min=2,max=255"`
	Funcao   *string `json:"funcao"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type UpdateColaboradorDTO struct {
	Nome     *string `json:"nome" validate:"omitempty,min=2,max=255"`
	Funcao   *string `json:"funcao"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Ativo    *bool   `json:"ativo"`
}
