package dto

type UpsertLaudoDTO struct {
	OQueFoiFeito *string `json:"o_que_foi_feito"`
	Observacao   *string `json:"observacao"`
}
