package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lilo791027/clinic-schedule/internal/config"
	"github.com/lilo791027/clinic-schedule/internal/logger"
	"github.com/lilo791027/clinic-schedule/internal/server"
	"github.com/lilo791027/clinic-schedule/internal/util"
)

var (
	port    = flag.Int("port", 0, "服務端口 (覆蓋 config.toml)")
	devMode = flag.Bool("dev", false, "開發模式")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  診所排班修正工具")
	fmt.Println("==========================================")

	// 第一次啟動時產生預設設定檔，方便使用者調整
	if created, err := config.ScaffoldConfig(); err != nil {
		log.Printf("建立預設設定檔失敗: %v", err)
	} else if created {
		fmt.Println("已產生預設設定檔 config.toml")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("載入設定失敗，使用預設設定: %v", err)
		cfg = config.DefaultConfig()
	}

	// 命令列參數覆蓋設定
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	// 初始化日誌
	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日誌失敗: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// 確保資料目錄存在
	if dataDir, err := config.EnsureDataDir(cfg); err != nil {
		zapLogger.Warn("建立資料目錄失敗", zap.Error(err))
	} else {
		fmt.Printf("資料目錄: %s\n", dataDir)
	}

	// 建立伺服器
	srv := server.NewServer(cfg, zapLogger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服務啟動中，監聽端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			zapLogger.Fatal("服務啟動失敗", zap.Error(err))
		}
	}()

	// 打開瀏覽器
	if !cfg.Server.DevMode {
		fmt.Printf("正在打開瀏覽器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("無法自動打開瀏覽器，請手動訪問: %s\n", url)
		}
	} else {
		fmt.Printf("開發模式: 請訪問 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服務...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在關閉服務...")
}
