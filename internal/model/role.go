package model

// StaffRole 人員班別角色
type StaffRole string

const (
	RoleDoctor      StaffRole = "doctor"       // 醫師
	RolePureMorning StaffRole = "pure_morning" // 純早班
	RoleRegular     StaffRole = "regular"      // 一般人員
)

// RoleAssignment 單一人員的角色指定
type RoleAssignment struct {
	Name   string    `json:"name"`
	Role   StaffRole `json:"role"`
	Active bool      `json:"active"` // 是否參與修正套用
}

// RoleAssignments 姓名到角色的對照表
// 於載入時掃描一次產生，對帳執行期間視為唯讀
type RoleAssignments map[string]RoleAssignment

// RoleOf 取得姓名對應角色，未登錄者視為一般人員
func (r RoleAssignments) RoleOf(name string) StaffRole {
	if a, ok := r[name]; ok {
		return a.Role
	}
	return RoleRegular
}

// IsActive 姓名是否參與修正套用，未登錄者預設參與
func (r RoleAssignments) IsActive(name string) bool {
	if a, ok := r[name]; ok {
		return a.Active
	}
	return true
}
