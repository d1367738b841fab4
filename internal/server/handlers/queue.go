package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lilo791027/clinic-schedule/internal/model"
	"github.com/lilo791027/clinic-schedule/internal/normalize"
	"github.com/lilo791027/clinic-schedule/internal/service/store"
)

// queueSegment 佇列時段設定，時間為 HH:MM
type queueSegment struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type queueRequest struct {
	Names    []string       `json:"names" binding:"required"`
	Dates    []string       `json:"dates" binding:"required"`
	Segments []queueSegment `json:"segments" binding:"required"`
}

// EnqueueTask 加入批次排班佇列
// 由勾選的時段組出班別字串，例如 "08:00-12:00,15:00-18:00"
func (h *Handlers) EnqueueTask(c *gin.Context) {
	var req queueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "佇列格式錯誤: "+err.Error())
		return
	}
	if len(req.Names) == 0 || len(req.Dates) == 0 {
		fail(c, http.StatusBadRequest, "請選擇人員與日期")
		return
	}

	for _, d := range req.Dates {
		if !model.IsDateKey(d) {
			fail(c, http.StatusBadRequest, "日期格式錯誤: "+d)
			return
		}
	}

	segs := make([]string, 0, len(req.Segments))
	for _, seg := range req.Segments {
		if _, ok := normalize.TimeOfDay(seg.Start); !ok {
			fail(c, http.StatusBadRequest, "時間格式錯誤: "+seg.Start)
			return
		}
		if _, ok := normalize.TimeOfDay(seg.End); !ok {
			fail(c, http.StatusBadRequest, "時間格式錯誤: "+seg.End)
			return
		}
		segs = append(segs, seg.Start+"-"+seg.End)
	}
	if len(segs) == 0 {
		fail(c, http.StatusBadRequest, "請至少勾選一個時段")
		return
	}

	sep := h.cfg.Clinic.Separator
	if sep == "" {
		sep = ","
	}

	task := store.QueueTask{
		Names: req.Names,
		Dates: req.Dates,
		Text:  strings.Join(segs, sep),
	}
	length := h.store.EnqueueTask(task)

	success(c, gin.H{
		"queueLength": length,
		"text":        task.Text,
	})
}

// ListQueue 佇列內容
func (h *Handlers) ListQueue(c *gin.Context) {
	success(c, h.store.Queue())
}

// ClearQueue 清空佇列
func (h *Handlers) ClearQueue(c *gin.Context) {
	h.store.ClearQueue()
	success(c, gin.H{"queueLength": 0})
}

// ApplyQueue 套用佇列到排班表
func (h *Handlers) ApplyQueue(c *gin.Context) {
	applied, err := h.store.ApplyQueue()
	if err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}

	h.logger.Info("批次排班套用完成", zap.Int("cells", applied))
	success(c, gin.H{"appliedCells": applied})
}
