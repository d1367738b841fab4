package roster

import (
	"strings"

	"github.com/lilo791027/clinic-schedule/internal/model"
)

// 角色判斷關鍵字
var (
	doctorMarkers      = []string{"醫師", "醫生"}
	pureMorningMarkers = []string{"純早"}
)

// containsAny 是否包含任一關鍵字
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// InferRoles 掃描排班表推斷各人員角色
// 載入時執行一次，之後以結果為準，不再逐次掃描列內容
// 使用者可在對帳前覆寫個別角色
func InferRoles(table *model.ScheduleTable) model.RoleAssignments {
	assignments := make(model.RoleAssignments)

	for _, row := range table.Rows {
		name := strings.TrimSpace(row[table.NameColumn])
		if name == "" {
			continue
		}
		if _, ok := assignments[name]; ok {
			continue
		}

		role := model.RoleRegular
		for _, col := range table.Columns {
			text := row[col]
			if text == "" {
				continue
			}
			if containsAny(text, doctorMarkers) {
				role = model.RoleDoctor
				break
			}
			if containsAny(text, pureMorningMarkers) {
				role = model.RolePureMorning
				break
			}
		}

		assignments[name] = model.RoleAssignment{
			Name:   name,
			Role:   role,
			Active: true,
		}
	}

	return assignments
}
