package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lilo791027/clinic-schedule/internal/model"
)

type reconcileRequest struct {
	Dates []string `json:"dates"` // 空值表示處理所有日期欄位
}

// Reconcile 執行排班對帳，回傳待確認的修正清單
func (h *Handlers) Reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		fail(c, http.StatusBadRequest, "請求格式錯誤")
		return
	}

	table, err := h.store.Table()
	if err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}
	lookup, err := h.store.Lookup()
	if err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}

	result := h.engine.Reconcile(table, h.store.Roles(), lookup, req.Dates)
	h.store.SetPending(result.Changes)

	success(c, result)
}

type applyChangesRequest struct {
	Changes []model.ChangeRecord `json:"changes"`
}

// ApplyChanges 把使用者確認後的修正寫回排班表
// 未帶 changes 時直接套用上次對帳結果中預設勾選的項目
func (h *Handlers) ApplyChanges(c *gin.Context) {
	var req applyChangesRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		fail(c, http.StatusBadRequest, "請求格式錯誤")
		return
	}

	changes := req.Changes
	if len(changes) == 0 {
		changes = h.store.Pending()
	}
	if len(changes) == 0 {
		fail(c, http.StatusConflict, "沒有可套用的修正")
		return
	}

	applied, err := h.store.ApplyChanges(changes)
	if err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}

	h.logger.Info("修正套用完成",
		zap.Int("candidates", len(changes)),
		zap.Int("applied", applied),
	)

	success(c, gin.H{
		"candidates": len(changes),
		"applied":    applied,
	})
}
