package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"cardiopredict/config"
	qhttp "cardiopredict/http"
	"cardiopredict/logging"
	"cardiopredict/ml"
	"cardiopredict/predict"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. 加载配置
	configPath := config.Locate()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. 加载模型，失败直接退出
	model, err := ml.LoadModel(cfg.Model.Path)
	if err != nil {
		logger.Fatal("failed to load model", zap.String("path", cfg.Model.Path), zap.Error(err))
	}
	logger.Info("model loaded", zap.String("path", cfg.Model.Path), zap.String("type", modelType(model)))

	if cfg.Model.Watch {
		if err := ml.WatchArtifact(ctx, cfg.Model.Path, logger); err != nil {
			logger.Warn("model artifact watch disabled", zap.Error(err))
		}
	}

	svc, err := predict.NewService(model,
		predict.WithLogger(logger),
		predict.WithCache(cfg.Model.CacheSize))
	if err != nil {
		logger.Fatal("failed to build prediction service", zap.Error(err))
	}

	// 3. 启动HTTP服务器
	server, err := qhttp.NewServer(qhttp.ServerConfig{
		Addr:              cfg.Addr(),
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		PingInterval:      cfg.WS.PingInterval,
		PongWait:          cfg.WS.PongWait,
	}, svc, logger)
	if err != nil {
		logger.Fatal("failed to build HTTP server", zap.Error(err))
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()

	// 4. 优雅关闭
	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("exiting")
}

func modelType(model ml.Classifier) string {
	switch model.(type) {
	case *ml.DecisionTree:
		return "decision_tree"
	case *ml.RandomForest:
		return "random_forest"
	case *ml.LogisticRegression:
		return "logistic_regression"
	default:
		return "unknown"
	}
}
