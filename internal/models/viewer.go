package models

// Роли просмотра
const (
	RoleSuperAdmin  = "super_admin"
	RoleBranchAdmin = "branch_admin"
	RoleEmployee    = "employee"
)

// Viewer - описание смотрящего пользователя, приходит от сессионного
// слоя и здесь только читается
type Viewer struct {
	ID         int64  `json:"id"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Province   string `json:"province,omitempty"`
}
