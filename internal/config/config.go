package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 應用設定
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Log    LogConfig    `toml:"log"`
	Clinic ClinicConfig `toml:"clinic"`
	Policy PolicyConfig `toml:"policy"`
}

// ServerConfig 伺服器設定
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 資料目錄設定
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// LogConfig 日誌設定
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console / json
}

// ClinicConfig 診所與班別字串組合設定
type ClinicConfig struct {
	FlagshipMarker         string `toml:"flagship_marker"` // 旗艦診所名稱關鍵字
	Separator              string `toml:"separator"`       // 段落分隔符號
	MorningStart           string `toml:"morning_start"`
	AfternoonStartFlagship string `toml:"afternoon_start_flagship"`
	AfternoonStart         string `toml:"afternoon_start"`
	EveningStart           string `toml:"evening_start"`
}

// PolicyConfig 收班修正規則設定
// 各門檻為 HH:MM 文字；suppress_roles 與 require_delay 為各自獨立的預設套用開關
type PolicyConfig struct {
	LateBufferMinutes          int      `toml:"late_buffer_minutes"`
	MorningThreshold           string   `toml:"morning_threshold"`
	PureMorningThreshold       string   `toml:"pure_morning_threshold"`
	AfternoonThresholdFlagship string   `toml:"afternoon_threshold_flagship"`
	AfternoonFixed             string   `toml:"afternoon_fixed"`
	EveningThresholdFlagship   string   `toml:"evening_threshold_flagship"`
	EveningThreshold           string   `toml:"evening_threshold"`
	SuppressRoles              []string `toml:"suppress_roles"`
	RequireDelay               bool     `toml:"require_delay"`
}

// DefaultConfig 預設設定
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20721,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Clinic: ClinicConfig{
			FlagshipMarker:         "總院",
			Separator:              ",",
			MorningStart:           "08:00",
			AfternoonStartFlagship: "14:00",
			AfternoonStart:         "15:00",
			EveningStart:           "18:30",
		},
		Policy: PolicyConfig{
			LateBufferMinutes:          5,
			MorningThreshold:           "12:00",
			PureMorningThreshold:       "13:00",
			AfternoonThresholdFlagship: "17:00",
			AfternoonFixed:             "18:00",
			EveningThresholdFlagship:   "21:00",
			EveningThreshold:           "21:30",
			SuppressRoles:              []string{"doctor", "pure_morning"},
			RequireDelay:               true,
		},
	}
}

// GetExeDir 取得執行檔所在目錄
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 從執行檔同目錄的 config.toml 載入設定
// 檔案不存在時使用預設值
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// 環境變數覆寫（本機測試用）
	if v := os.Getenv("CLINIC_SCHEDULE_FLAGSHIP_MARKER"); v != "" {
		config.Clinic.FlagshipMarker = v
	}

	return config, nil
}

// SaveConfig 儲存設定到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ScaffoldConfig 第一次啟動時在執行檔旁寫出預設 config.toml
// 檔案已存在時不動作，回傳是否有新建檔案
func ScaffoldConfig() (bool, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := SaveConfig(DefaultConfig()); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureDataDir 確保資料目錄存在
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
