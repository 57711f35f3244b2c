package request

// GuestRequest represents a create or update guest request
type GuestRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Phone       string  `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	Nationality *string `json:"nationality" binding:"omitempty,max=100"`
	IDProofType *string `json:"id_proof_type" binding:"omitempty,max=50"`
	IDProofNo   *string `json:"id_proof_no" binding:"omitempty,max=100"`
	GSTIN       *string `json:"gstin" binding:"omitempty,gstin"`
}

// GuestListQuery represents guest listing filters
type GuestListQuery struct {
	Search string `form:"search"`
}
