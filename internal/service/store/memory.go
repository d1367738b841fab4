package store

import (
	"errors"
	"sync"

	"github.com/lilo791027/clinic-schedule/internal/model"
	"github.com/lilo791027/clinic-schedule/internal/normalize"
	"github.com/lilo791027/clinic-schedule/internal/roster"
)

var (
	// ErrNoSchedule 尚未上傳排班表
	ErrNoSchedule = errors.New("尚未上傳排班表")
	// ErrNoLookup 尚未上傳分析表
	ErrNoLookup = errors.New("尚未上傳分析表")
)

// QueueTask 批次排班佇列項目
// 套用時把組好的班別字串寫進所有 (姓名, 日期) 組合
type QueueTask struct {
	Names []string `json:"names"`
	Dates []string `json:"dates"`
	Text  string   `json:"text"`
}

// ExportFile 待下載的匯出檔
type ExportFile struct {
	Name        string
	ContentType string
	Bytes       []byte
}

// SessionStore 工作階段內存儲存
// 排班表為可變狀態、單一擁有者；引擎本身不保留任何狀態
type SessionStore struct {
	table   *model.ScheduleTable
	roles   model.RoleAssignments
	lookup  *model.CompletionLookup
	queue   []QueueTask
	pending []model.ChangeRecord
	exports map[string]ExportFile
	mu      sync.RWMutex
}

// NewSessionStore 建立工作階段儲存
func NewSessionStore() *SessionStore {
	return &SessionStore{
		roles:   make(model.RoleAssignments),
		exports: make(map[string]ExportFile),
	}
}

// SetTable 載入新排班表，重置相依狀態
func (s *SessionStore) SetTable(table *model.ScheduleTable, roles model.RoleAssignments) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
	s.roles = roles
	s.queue = nil
	s.pending = nil
}

// Table 取得目前排班表
func (s *SessionStore) Table() (*model.ScheduleTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, ErrNoSchedule
	}
	return s.table, nil
}

// SetLookup 載入完診時間對照表
func (s *SessionStore) SetLookup(lookup *model.CompletionLookup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookup = lookup
}

// Lookup 取得完診時間對照表
func (s *SessionStore) Lookup() (*model.CompletionLookup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lookup == nil {
		return nil, ErrNoLookup
	}
	return s.lookup, nil
}

// Roles 取得角色表的拷貝
func (s *SessionStore) Roles() model.RoleAssignments {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(model.RoleAssignments, len(s.roles))
	for k, v := range s.roles {
		out[k] = v
	}
	return out
}

// SetRole 覆寫單一人員角色
func (s *SessionStore) SetRole(a model.RoleAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.Name == "" {
		return errors.New("姓名不可為空")
	}
	s.roles[a.Name] = a
	return nil
}

// EnqueueTask 加入批次排班佇列
func (s *SessionStore) EnqueueTask(task QueueTask) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, task)
	return len(s.queue)
}

// Queue 取得佇列內容
func (s *SessionStore) Queue() []QueueTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]QueueTask(nil), s.queue...)
}

// ClearQueue 清空佇列
func (s *SessionStore) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
}

// ApplyQueue 把佇列內容寫進排班表，回傳寫入格數
func (s *SessionStore) ApplyQueue() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return 0, ErrNoSchedule
	}

	// 只寫進實際存在的日期欄位，避免憑空新增匯出看不到的欄位
	colSet := make(map[string]bool, len(s.table.Columns))
	for _, c := range s.table.Columns {
		colSet[c] = true
	}

	applied := 0
	for _, task := range s.queue {
		nameSet := make(map[string]bool, len(task.Names))
		for _, n := range task.Names {
			nameSet[n] = true
		}
		for _, row := range s.table.Rows {
			if !nameSet[row[s.table.NameColumn]] {
				continue
			}
			for _, d := range task.Dates {
				if !model.IsDateKey(d) || !colSet[d] {
					continue
				}
				row[d] = task.Text
				applied++
			}
		}
	}
	s.queue = nil
	return applied, nil
}

// NormalizeIDColumn 指定編號欄位並對整欄執行補 0 修正
// 回傳前 preview 筆修正前後對照，給前端確認用
func (s *SessionStore) NormalizeIDColumn(column string, preview int) (before, after []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return nil, nil, ErrNoSchedule
	}

	found := false
	for _, col := range s.table.Columns {
		if col == column {
			found = true
			break
		}
	}
	if !found {
		return nil, nil, errors.New("欄位不存在: " + column)
	}

	before = make([]string, 0, preview)
	after = make([]string, 0, preview)
	for i, row := range s.table.Rows {
		fixed := normalize.EmployeeID(row[column])
		if i < preview {
			before = append(before, row[column])
			after = append(after, fixed)
		}
		row[column] = fixed
	}
	s.table.IDColumn = column
	return before, after, nil
}

// ApplyChanges 在鎖內把確認後的修正寫回排班表並清除待確認清單
func (s *SessionStore) ApplyChanges(changes []model.ChangeRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return 0, ErrNoSchedule
	}
	applied := roster.Apply(s.table, changes)
	s.pending = nil
	return applied, nil
}

// SetPending 保存待確認的修正清單
func (s *SessionStore) SetPending(changes []model.ChangeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = changes
}

// Pending 取得待確認的修正清單
func (s *SessionStore) Pending() []model.ChangeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ChangeRecord(nil), s.pending...)
}

// PutExport 暫存匯出檔，回傳給前端下載用的 token
func (s *SessionStore) PutExport(token string, file ExportFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exports[token] = file
}

// TakeExport 取出並移除匯出檔
func (s *SessionStore) TakeExport(token string) (ExportFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.exports[token]
	if ok {
		delete(s.exports, token)
	}
	return file, ok
}
