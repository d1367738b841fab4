package sheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/lilo791027/clinic-schedule/internal/model"
)

func sampleTable() *model.ScheduleTable {
	return &model.ScheduleTable{
		Columns:    []string{"姓名", "編號", "2025-12-01"},
		NameColumn: "姓名",
		IDColumn:   "編號",
		Rows: []model.ScheduleRow{
			{"姓名": "王小明", "編號": "0075", "2025-12-01": "08:00-12:15"},
			{"姓名": "林醫師", "編號": "0012", "2025-12-01": "全"},
		},
	}
}

func TestWriteCSVUTF8(t *testing.T) {
	t.Parallel()

	data := WriteCSVUTF8(sampleTable())
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("utf8 csv should start with BOM")
	}

	text := string(data[3:])
	// 所有欄位強制加引號，保護編號前面的 0
	if !strings.Contains(text, `"0075"`) {
		t.Fatalf("id should be quoted, got: %s", text)
	}
	if !strings.HasPrefix(text, `"姓名","編號","2025-12-01"`) {
		t.Fatalf("unexpected header: %s", text)
	}
}

func TestWriteCSVBig5_RoundTrip(t *testing.T) {
	t.Parallel()

	data, err := WriteCSVBig5(sampleTable())
	if err != nil {
		t.Fatalf("write big5 failed: %v", err)
	}

	decoded, _, err := transform.Bytes(traditionalchinese.Big5.NewDecoder(), data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.Contains(string(decoded), "王小明") {
		t.Fatalf("decoded big5 should contain 王小明: %s", decoded)
	}
}

func TestWriteXLSX_KeepsTextCells(t *testing.T) {
	t.Parallel()

	f, err := WriteXLSX(sampleTable())
	if err != nil {
		t.Fatalf("write xlsx failed: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	reopened, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	sheetName := reopened.GetSheetName(0)
	got, err := reopened.GetCellValue(sheetName, "B2")
	if err != nil {
		t.Fatalf("get cell failed: %v", err)
	}
	// 文字儲存格不會把 0075 轉成 75
	if got != "0075" {
		t.Fatalf("B2 want=0075 got=%s", got)
	}
}

func TestQuoteAllCSV_EscapesQuotes(t *testing.T) {
	t.Parallel()

	out := quoteAllCSV([][]string{{`含"引號`, "一般"}})
	if !strings.Contains(out, `"含""引號"`) {
		t.Fatalf("quotes should be doubled: %s", out)
	}
}
