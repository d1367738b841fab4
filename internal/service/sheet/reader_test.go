package sheet

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

const scheduleCSV = "姓名,編號,12/1(一),1141202\n" +
	"王小明,75.0,早,全\n" +
	"林醫師,0012,08:00-12:00,\n"

func TestReadSchedule_CSV(t *testing.T) {
	t.Parallel()

	table, report, err := ReadSchedule(strings.NewReader(scheduleCSV), "排班.csv", 2025)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if report.RenamedHeaders != 2 {
		t.Fatalf("want 2 renamed headers got %d", report.RenamedHeaders)
	}
	if report.RowCount != 2 {
		t.Fatalf("want 2 rows got %d", report.RowCount)
	}

	wantDates := []string{"2025-12-01", "2025-12-02"}
	gotDates := table.DateColumns()
	if len(gotDates) != 2 || gotDates[0] != wantDates[0] || gotDates[1] != wantDates[1] {
		t.Fatalf("date columns want=%v got=%v", wantDates, gotDates)
	}

	if table.NameColumn != "姓名" {
		t.Fatalf("name column want=姓名 got=%s", table.NameColumn)
	}
	if table.IDColumn != "編號" {
		t.Fatalf("id column want=編號 got=%s", table.IDColumn)
	}

	if got := table.Rows[0]["2025-12-01"]; got != "早" {
		t.Fatalf("cell want=早 got=%s", got)
	}
	// 編號以文字讀入，讀檔階段不做補 0
	if got := table.Rows[0]["編號"]; got != "75.0" {
		t.Fatalf("id cell want=75.0 got=%s", got)
	}
}

func TestReadSchedule_Big5Fallback(t *testing.T) {
	t.Parallel()

	encoded, _, err := transform.Bytes(traditionalchinese.Big5.NewEncoder(), []byte(scheduleCSV))
	if err != nil {
		t.Fatalf("encode fixture failed: %v", err)
	}

	table, _, err := ReadSchedule(bytes.NewReader(encoded), "排班_big5.csv", 2025)
	if err != nil {
		t.Fatalf("read big5 failed: %v", err)
	}

	if got := table.Rows[1]["姓名"]; got != "林醫師" {
		t.Fatalf("big5 name want=林醫師 got=%s", got)
	}
}

func TestReadSchedule_UTF8BOM(t *testing.T) {
	t.Parallel()

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(scheduleCSV)...)
	table, _, err := ReadSchedule(bytes.NewReader(data), "排班.csv", 2025)
	if err != nil {
		t.Fatalf("read bom csv failed: %v", err)
	}
	if table.NameColumn != "姓名" {
		t.Fatalf("bom should be stripped, name column got=%q", table.NameColumn)
	}
}

func TestReadSchedule_DuplicateDateHeaders(t *testing.T) {
	t.Parallel()

	// 兩個表頭指向同一天時，第二個保留原樣避免欄位撞名
	csvData := "姓名,12/1,2025-12-01\n甲,早,晚\n"
	table, _, err := ReadSchedule(strings.NewReader(csvData), "t.csv", 2025)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	dates := table.DateColumns()
	if len(dates) != 1 {
		t.Fatalf("want 1 unique date column got %v", dates)
	}
}

func TestReadCompletion_CSV(t *testing.T) {
	t.Parallel()

	csvData := "日期,診所,早診完診,午診完診,晚診完診\n" +
		"1141201,大里診所,12:10,16:30,21:40\n" +
		"12/2,大里診所,,17:00,\n" +
		"不是日期,大里診所,1:00,2:00,3:00\n"

	lookup, err := ReadCompletion(strings.NewReader(csvData), "分析.csv", 2025)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if lookup.Clinic != "大里診所" {
		t.Fatalf("clinic want=大里診所 got=%s", lookup.Clinic)
	}
	if len(lookup.Records) != 2 {
		t.Fatalf("want 2 records got %d", len(lookup.Records))
	}

	rec, ok := lookup.Get("2025-12-01")
	if !ok {
		t.Fatalf("missing 2025-12-01")
	}
	if rec.Morning != "12:10" || rec.Afternoon != "16:30" || rec.Evening != "21:40" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	// 缺漏時段視為無資料
	rec, _ = lookup.Get("2025-12-02")
	if rec.Morning != "" || rec.Afternoon != "17:00" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestReadCompletion_MissingDateColumn(t *testing.T) {
	t.Parallel()

	_, err := ReadCompletion(strings.NewReader("診所,早\nX,1:00\n"), "分析.csv", 2025)
	if err == nil {
		t.Fatalf("want error for missing date column")
	}
}
