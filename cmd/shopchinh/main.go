package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kidlost1412/shopchinh/internal/config"
	"github.com/kidlost1412/shopchinh/internal/server"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	port       = flag.Int("port", 0, "服务端口 (config.toml 与 PORT 优先；仅当未显式配置 port 时生效)")
	devMode    = flag.Bool("dev", false, "开发模式")
	dataDir    = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	configPath = flag.String("config", "", "配置文件路径 (默认为可执行文件同目录下的 config.toml)")
	initConfig = flag.Bool("init-config", false, "写出默认 config.toml 后退出")
)

func main() {
	flag.Parse()

	if *initConfig {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			log.Fatalf("写出默认配置失败: %v", err)
		}
		fmt.Println("已写出默认配置")
		return
	}

	cfg, info, err := config.LoadConfigWithInfo(*configPath)
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logger, err := config.NewLogger(cfg.Log, cfg.Server.DevMode)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 金额在 JSON 中输出为数字
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err), zap.String("config", info.ConfigPath))
	}
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("failed to close server resources", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := srv.Run(ctx, addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return
	}
	logger.Info("server exited")
}
