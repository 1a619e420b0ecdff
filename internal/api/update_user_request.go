// File: internal/api/update_user_request.go
package api

// UpdateUserRequest 管理員修改使用者；省略的欄位維持原值
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name    string `json:"name" form:"name" validate:"omitempty,min=1" example:"Alice"`
	Email   string `json:"email" form:"email" validate:"omitempty,email" example:"alice@example.com"`
	IsAdmin *bool  `json:"is_admin" form:"is_admin" example:"false"`
}

// UpdateProfileRequest 使用者修改自己的資料；password 留空代表不變更
// swagger:model api.UpdateProfileRequest
type UpdateProfileRequest struct {
	Name     string `json:"name" form:"name" example:"Alice"`
	Email    string `json:"email" form:"email" validate:"omitempty,email" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"omitempty,max=72" example:"NewSecret123!"`
}
