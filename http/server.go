// Package http 提供HTTP服务器功能
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cardiopredict/predict"
)

// Server HTTP服务器
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Addr              string
	AllowedOrigins    []string
	MaxBodyBytes      int64
	ReadHeaderTimeout time.Duration
	PingInterval      time.Duration
	PongWait          time.Duration
}

// DefaultServerConfig 默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:              ":8000",
		AllowedOrigins:    []string{"*"},
		MaxBodyBytes:      1 << 20,
		ReadHeaderTimeout: 10 * time.Second,
		PingInterval:      30 * time.Second,
		PongWait:          60 * time.Second,
	}
}

// NewServer 创建HTTP服务器
func NewServer(config ServerConfig, svc *predict.Service, logger *zap.Logger) (*Server, error) {
	if svc == nil {
		return nil, errors.New("http: prediction service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultServerConfig()
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if config.PingInterval <= 0 || config.PongWait <= config.PingInterval {
		config.PingInterval, config.PongWait = defaults.PingInterval, defaults.PongWait
	}

	h := &Handlers{
		svc:    svc,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || originAllowed(config.AllowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		pingInterval: config.PingInterval,
		pongWait:     config.PongWait,
		maxFrame:     config.MaxBodyBytes,
	}

	mux := http.NewServeMux()
	h.Register(mux)

	// 日志中间件最先执行，恢复日志才能带上请求ID
	chain := Chain(
		LoggerMiddleware(logger),
		RecoveryMiddleware(logger),
		SecurityHeadersMiddleware,
		CORSMiddleware(config.AllowedOrigins),
		RequestSizeMiddleware(config.MaxBodyBytes),
	)

	return &Server{
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           chain(mux),
			ReadHeaderTimeout: config.ReadHeaderTimeout,
			IdleTimeout:       120 * time.Second,
			ErrorLog:          zap.NewStdLog(logger),
		},
		config: config,
		logger: logger,
	}, nil
}

// Handler 返回包装好中间件的处理器
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start 启动服务器，正常关闭时返回nil
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	return s.Serve(ln)
}

// Serve 在已有监听器上启动
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop 停止服务器
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
