package sheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/lilo791027/clinic-schedule/internal/model"
)

// utf8BOM 讓 Excel 正確辨識 UTF-8 CSV
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// tableRecords 把排班表攤平成表頭加資料列
func tableRecords(table *model.ScheduleTable) [][]string {
	records := make([][]string, 0, len(table.Rows)+1)
	records = append(records, table.Columns)
	for _, row := range table.Rows {
		rec := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			rec[i] = row[col]
		}
		records = append(records, rec)
	}
	return records
}

// WriteXLSX 匯出 Excel
// 所有儲存格以文字寫入，避免編號與班別字串被 Excel 轉型
func WriteXLSX(table *model.ScheduleTable) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "排班結果"
	f.SetSheetName("Sheet1", sheetName)

	for r, rec := range tableRecords(table) {
		for c, val := range rec {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(sheetName, cell, val); err != nil {
				return nil, fmt.Errorf("寫入儲存格失敗: %w", err)
			}
		}
	}

	return f, nil
}

// quoteAllCSV 組出每個欄位都加引號的 CSV
// 強制引號能讓 Excel 讀取時保留編號前面的 0
func quoteAllCSV(records [][]string) string {
	var b strings.Builder
	for _, rec := range records {
		for i, field := range rec {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

// WriteCSVUTF8 匯出 UTF-8 CSV（含 BOM）
func WriteCSVUTF8(table *model.ScheduleTable) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	buf.WriteString(quoteAllCSV(tableRecords(table)))
	return buf.Bytes()
}

// WriteCSVBig5 匯出 Big5 (cp950) CSV
// 舊系統只吃 Big5；無法對應的字元以替代符號取代而不是整檔失敗
func WriteCSVBig5(table *model.ScheduleTable) ([]byte, error) {
	text := quoteAllCSV(tableRecords(table))
	encoder := encoding.ReplaceUnsupported(traditionalchinese.Big5.NewEncoder())
	out, _, err := transform.Bytes(encoder, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("Big5 編碼失敗: %w", err)
	}
	return out, nil
}
