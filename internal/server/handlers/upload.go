package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lilo791027/clinic-schedule/internal/model"
	"github.com/lilo791027/clinic-schedule/internal/roster"
	"github.com/lilo791027/clinic-schedule/internal/service/sheet"
	"github.com/lilo791027/clinic-schedule/internal/service/store"
)

// UploadSchedule 上傳排班表
// 讀檔、表頭日期標準化、角色推斷一次完成
func (h *Handlers) UploadSchedule(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "請選擇檔案")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "無法開啟上傳檔案: "+err.Error())
		return
	}
	defer file.Close()

	table, report, err := sheet.ReadSchedule(file, fileHeader.Filename, time.Now().Year())
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "讀取排班表失敗: "+err.Error())
		return
	}

	roles := roster.InferRoles(table)
	h.store.SetTable(table, roles)

	h.logger.Info("排班表上傳完成",
		zap.String("filename", fileHeader.Filename),
		zap.Int("rows", report.RowCount),
		zap.Int("renamedHeaders", report.RenamedHeaders),
	)

	success(c, gin.H{
		"columns":     table.Columns,
		"dateColumns": table.DateColumns(),
		"nameColumn":  table.NameColumn,
		"idColumn":    table.IDColumn,
		"names":       table.Names(),
		"report":      report,
	})
}

// PreviewSchedule 排班表前幾列預覽
func (h *Handlers) PreviewSchedule(c *gin.Context) {
	table, err := h.store.Table()
	if err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}

	limit := 10
	if len(table.Rows) < limit {
		limit = len(table.Rows)
	}

	success(c, gin.H{
		"columns": table.Columns,
		"rows":    table.Rows[:limit],
	})
}

type idColumnRequest struct {
	Column string `json:"column" binding:"required"`
}

// FixEmployeeIDs 指定編號欄位並執行補 0 修正
// 回傳前三筆修正前後對照，給使用者確認
func (h *Handlers) FixEmployeeIDs(c *gin.Context) {
	var req idColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "請指定編號欄位")
		return
	}

	before, after, err := h.store.NormalizeIDColumn(req.Column, 3)
	if err != nil {
		if errors.Is(err, store.ErrNoSchedule) {
			fail(c, http.StatusConflict, err.Error())
			return
		}
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	success(c, gin.H{
		"column": req.Column,
		"before": before,
		"after":  after,
	})
}

// ListRoles 角色清單
func (h *Handlers) ListRoles(c *gin.Context) {
	roles := h.store.Roles()
	out := make([]model.RoleAssignment, 0, len(roles))
	for _, a := range roles {
		out = append(out, a)
	}
	success(c, out)
}

// UpdateRole 覆寫單一人員角色
func (h *Handlers) UpdateRole(c *gin.Context) {
	var req model.RoleAssignment
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "角色格式錯誤")
		return
	}
	switch req.Role {
	case model.RoleDoctor, model.RolePureMorning, model.RoleRegular:
	default:
		fail(c, http.StatusBadRequest, "未知角色: "+string(req.Role))
		return
	}
	if err := h.store.SetRole(req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	success(c, req)
}

// UploadCompletion 上傳完診時間分析表
func (h *Handlers) UploadCompletion(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "請選擇檔案")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "無法開啟上傳檔案: "+err.Error())
		return
	}
	defer file.Close()

	lookup, err := sheet.ReadCompletion(file, fileHeader.Filename, time.Now().Year())
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "讀取分析表失敗: "+err.Error())
		return
	}

	h.store.SetLookup(lookup)

	h.logger.Info("分析表上傳完成",
		zap.String("filename", fileHeader.Filename),
		zap.String("clinic", lookup.Clinic),
		zap.Int("dates", len(lookup.Records)),
	)

	success(c, gin.H{
		"clinic":   lookup.Clinic,
		"flagship": h.engine.IsFlagship(lookup.Clinic),
		"dates":    len(lookup.Records),
	})
}
