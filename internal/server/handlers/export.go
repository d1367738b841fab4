package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lilo791027/clinic-schedule/internal/service/sheet"
	"github.com/lilo791027/clinic-schedule/internal/service/store"
)

type exportRequest struct {
	Format string `json:"format" binding:"required"` // xlsx / big5 / utf8
}

// Export 產生匯出檔並回傳下載 token
func (h *Handlers) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "請指定匯出格式")
		return
	}

	table, err := h.store.Table()
	if err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}

	var file store.ExportFile
	switch req.Format {
	case "xlsx":
		f, err := sheet.WriteXLSX(table)
		if err != nil {
			fail(c, http.StatusInternalServerError, "匯出 Excel 失敗: "+err.Error())
			return
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			fail(c, http.StatusInternalServerError, "匯出 Excel 失敗: "+err.Error())
			return
		}
		file = store.ExportFile{
			Name:        "排班結果.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Bytes:       buf.Bytes(),
		}
	case "big5":
		data, err := sheet.WriteCSVBig5(table)
		if err != nil {
			fail(c, http.StatusInternalServerError, "匯出 Big5 CSV 失敗: "+err.Error())
			return
		}
		file = store.ExportFile{
			Name:        "排班結果_Big5.csv",
			ContentType: "text/csv; charset=big5",
			Bytes:       data,
		}
	case "utf8":
		file = store.ExportFile{
			Name:        "排班結果_UTF8.csv",
			ContentType: "text/csv; charset=utf-8",
			Bytes:       sheet.WriteCSVUTF8(table),
		}
	default:
		fail(c, http.StatusBadRequest, "未知匯出格式: "+req.Format)
		return
	}

	token := uuid.New().String()
	h.store.PutExport(token, file)

	h.logger.Info("匯出檔已產生",
		zap.String("format", req.Format),
		zap.Int("bytes", len(file.Bytes)),
	)

	success(c, gin.H{
		"token":    token,
		"filename": file.Name,
	})
}

// DownloadExport 下載匯出檔，token 用過即失效
func (h *Handlers) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	file, ok := h.store.TakeExport(token)
	if !ok {
		fail(c, http.StatusNotFound, "下載連結不存在或已使用")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Bytes)
}
