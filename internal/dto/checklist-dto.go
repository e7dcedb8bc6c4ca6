package dto

type UpdateChecklistItemDTO struct {
	Status string `json:"status" validate:"required,oneof=conforme nao_conforme na"`
}
