package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/lilo791027/clinic-schedule/internal/model"
	"github.com/lilo791027/clinic-schedule/internal/normalize"
)

// 不當作日期候選的表頭關鍵字
var skipHeaderKeywords = []string{"姓名", "編號", "班別", "ID", "Name", "name", "code"}

// ReadReport 讀檔結果摘要
type ReadReport struct {
	RenamedHeaders int    `json:"renamedHeaders"` // 被改名的日期表頭數
	RenameExample  string `json:"renameExample"`  // 改名範例，給前端提示用
	RowCount       int    `json:"rowCount"`
}

// readRows 讀出所有儲存格文字
// 依副檔名分流：.xls 走舊版格式，.csv 走編碼回退，其餘交給 excelize
func readRows(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("開啟 xls 失敗: %w", err)
		}
		if workbook.NumSheets() == 0 {
			return nil, errors.New("檔案內沒有工作表")
		}
		rows := workbook.ReadAllCells(100000)
		if len(rows) == 0 {
			return nil, errors.New("工作表是空的")
		}
		return rows, nil
	case ".csv":
		return readCSV(data)
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("開啟 Excel 失敗: %w", err)
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, errors.New("檔案內沒有工作表")
		}
		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, errors.New("工作表是空的")
		}
		return rows, nil
	}
}

// readCSV 讀取 CSV，UTF-8 解不開時回退 Big5 (cp950)
func readCSV(data []byte) ([][]string, error) {
	// 去除 UTF-8 BOM
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(traditionalchinese.Big5.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("Big5 解碼失敗: %w", err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV 解析失敗: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("CSV 是空的")
	}
	return rows, nil
}

// headerSkippable 表頭是否屬於姓名、編號等非日期欄位
func headerSkippable(header string) bool {
	for _, kw := range skipHeaderKeywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

// ReadSchedule 讀入排班表
// 所有儲存格以文字讀取（保護 0075 不被轉成 75）
// 表頭逐一嘗試日期標準化，成功的改名為 YYYY-MM-DD；與既有欄位撞名則保留原表頭
func ReadSchedule(reader io.Reader, filename string, currentYear int) (*model.ScheduleTable, *ReadReport, error) {
	rows, err := readRows(reader, filename)
	if err != nil {
		return nil, nil, err
	}

	report := &ReadReport{}

	header := rows[0]
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, raw := range header {
		col := strings.TrimSpace(raw)
		if col == "" {
			col = fmt.Sprintf("欄位%d", i+1)
		}

		if !headerSkippable(col) {
			fixed := normalize.Date(col, currentYear)
			if normalize.IsCanonicalDate(fixed) && !seen[fixed] {
				if fixed != col {
					report.RenamedHeaders++
					if report.RenameExample == "" {
						report.RenameExample = fixed
					}
				}
				col = fixed
			}
		}

		// 撞名時補序號，維持欄位唯一
		base := col
		for n := 2; seen[col]; n++ {
			col = fmt.Sprintf("%s_%d", base, n)
		}
		seen[col] = true
		columns[i] = col
	}

	table := &model.ScheduleTable{
		Columns: columns,
		Rows:    make([]model.ScheduleRow, 0, len(rows)-1),
	}

	for _, raw := range rows[1:] {
		row := make(model.ScheduleRow, len(columns))
		for i, col := range columns {
			if i < len(raw) {
				row[col] = strings.TrimSpace(raw[i])
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	report.RowCount = len(table.Rows)

	// 自動抓姓名與編號欄位，抓不到留空由使用者指定
	for _, col := range columns {
		if table.NameColumn == "" && (strings.Contains(col, "姓名") || strings.Contains(col, "Name")) {
			table.NameColumn = col
		}
		if table.IDColumn == "" && (strings.Contains(col, "編號") || strings.Contains(col, "ID") || strings.Contains(strings.ToLower(col), "code")) {
			table.IDColumn = col
		}
	}

	return table, report, nil
}

// 分析表表頭關鍵字
var (
	completionDateKeywords   = []string{"日期"}
	completionClinicKeywords = []string{"診所", "院區"}
)

// ReadCompletion 讀入完診時間分析表
// 需要日期欄位；早午晚三欄缺漏視為該時段無資料
func ReadCompletion(reader io.Reader, filename string, currentYear int) (*model.CompletionLookup, error) {
	rows, err := readRows(reader, filename)
	if err != nil {
		return nil, err
	}

	header := rows[0]
	dateIdx, clinicIdx := -1, -1
	morningIdx, afternoonIdx, eveningIdx := -1, -1, -1
	for i, raw := range header {
		col := strings.TrimSpace(raw)
		switch {
		case dateIdx < 0 && containsAny(col, completionDateKeywords):
			dateIdx = i
		case clinicIdx < 0 && containsAny(col, completionClinicKeywords):
			clinicIdx = i
		case morningIdx < 0 && strings.Contains(col, "早"):
			morningIdx = i
		case afternoonIdx < 0 && strings.Contains(col, "午"):
			afternoonIdx = i
		case eveningIdx < 0 && strings.Contains(col, "晚"):
			eveningIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, errors.New("分析表缺少日期欄位")
	}

	lookup := &model.CompletionLookup{
		Records: make(map[string]model.CompletionRecord),
	}

	for _, raw := range rows[1:] {
		date := normalize.Date(cellAt(raw, dateIdx), currentYear)
		if !normalize.IsCanonicalDate(date) {
			continue
		}

		if lookup.Clinic == "" && clinicIdx >= 0 {
			lookup.Clinic = cellAt(raw, clinicIdx)
		}

		lookup.Records[date] = model.CompletionRecord{
			Date:      date,
			Morning:   cellAt(raw, morningIdx),
			Afternoon: cellAt(raw, afternoonIdx),
			Evening:   cellAt(raw, eveningIdx),
		}
	}

	return lookup, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
