package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"AppMarketAnalysis/src/config"
	"AppMarketAnalysis/src/datasource/file"
	"AppMarketAnalysis/src/models"
	"AppMarketAnalysis/src/processor"
	"AppMarketAnalysis/src/render"
	"AppMarketAnalysis/src/report"
	"AppMarketAnalysis/src/storage"

	"github.com/robfig/cron"
)

// 退出码
const (
	exitOK        = 0
	exitFailure   = 1
	exitInput     = 2
	exitIntegrity = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	jsonFolder := config.LoadEnv("./config")
	cfg, err := config.LoadConfig(jsonFolder, "config.json")
	if err != nil {
		log.Println("Failed to load config:", err)
		return exitFailure
	}

	// 初始化日志系统
	logger, err := storage.NewLogger(cfg.LogName, os.Stderr)
	if err != nil {
		log.Println("Failed to initialize logger:", err)
		return exitFailure
	}
	defer logger.Close()
	logger.SetLevel(storage.ParseLevel(cfg.LogLevel))

	maxSize, err := storage.ParseSize(cfg.LogMaxSize)
	if err != nil {
		logger.Warningf("log_max_size ignored: %v", err)
	}

	a := &analyzer{cfg: cfg, logger: logger, out: os.Stdout, maxLogSize: maxSize}
	if err := a.analyze(); err != nil {
		logger.Error("分析失败: " + err.Error())
		return exitCode(err)
	}

	if !cfg.Watch && cfg.RefreshInterval <= 0 {
		return exitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RefreshInterval > 0 {
		c := cron.New()
		interval := time.Duration(cfg.RefreshInterval).String() // 例如 "5m0s"
		cronSpec := fmt.Sprintf("@every %s", interval)
		if err := c.AddFunc(cronSpec, func() { a.rerun("refresh " + cronSpec) }); err != nil {
			logger.Error("创建定时任务失败: " + err.Error())
			return exitFailure
		}
		c.Start()
		defer c.Stop()
		logger.Infof("定时分析已启动(间隔: %v)", interval)
	}

	if cfg.Watch {
		monitor, err := file.NewFileMonitor(cfg.InputPath)
		if err != nil {
			logger.Error("文件监控启动失败: " + err.Error())
			return exitFailure
		}
		go func() {
			if err := monitor.Watch(ctx, func(path string) { a.rerun("file changed: " + path) }); err != nil {
				logger.Error("File monitoring error: " + err.Error())
			}
		}()
		logger.Infof("监控输入文件 %s", cfg.InputPath)
	}

	// SIGHUP: 外部轮转日志后重新打开日志文件
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-hup:
			if cfg.LogName == "" {
				continue
			}
			if err := logger.Reopen(cfg.LogName); err != nil {
				log.Println("Failed to reopen log file:", err)
				continue
			}
			logger.Info("日志文件已重新打开")
		case <-ctx.Done():
			logger.Info("Received shutdown signal, shutting down...")
			return exitOK
		}
	}
}

// analyzer 一次完整的分析；多次触发时串行执行
type analyzer struct {
	cfg        *config.Config
	logger     *storage.Logger
	out        io.Writer
	maxLogSize int64
	mu         sync.Mutex
}

func (a *analyzer) analyze() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.logger.CheckRotate(a.maxLogSize); err != nil {
		a.logger.Warningf("日志轮转失败: %v", err)
	}

	t1 := time.Now()
	raw, err := file.Load(a.cfg.InputPath, a.cfg.SheetName)
	if err != nil {
		return err
	}

	res, err := processor.NewPipeline(a.cfg, a.logger).Run(raw)
	if err != nil {
		return err
	}

	summary, err := processor.Summarize(res, processor.OptionsFromConfig(a.cfg))
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	report.Print(a.out, summary)

	if a.cfg.ChartDir != "" {
		render.NewRenderer(a.cfg.ChartDir, a.logger).RenderAll(summary)
	}
	if a.cfg.ReportPath != "" {
		if err := report.SaveWorkbook(a.cfg.ReportPath, summary); err != nil {
			return err
		}
		a.logger.Infof("报表已导出: %s", a.cfg.ReportPath)
	}

	a.logger.Infof("数据处理时间：%v", time.Since(t1))
	return nil
}

// rerun 重新分析，失败只记日志
func (a *analyzer) rerun(reason string) {
	a.logger.Info("重新分析: " + reason)
	if err := a.analyze(); err != nil {
		a.logger.Error("分析失败: " + err.Error())
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, models.ErrInput):
		return exitInput
	case errors.Is(err, models.ErrDataIntegrity):
		return exitIntegrity
	default:
		return exitFailure
	}
}
