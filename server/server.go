package server

import (
	"mio-go"
	"net"
	"sync"

	"github.com/tidwall/redcon"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Server 通过 redis 协议对外提供文件读写服务
// 所有连接共用同一张句柄表
type Server struct {
	addr     string
	registry *Registry
	options  mio.Options
	logger   *zap.Logger
	server   *redcon.Server
	mu       sync.Mutex
}

// NewServer 初始化服务端，options 用于这个服务打开的所有文件
func NewServer(addr string, options mio.Options) *Server {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	svr := &Server{
		addr:     addr,
		registry: NewRegistry(),
		options:  options,
		logger:   logger,
	}
	svr.server = redcon.NewServer(addr, svr.execClientCommand, svr.accept, svr.closed)
	return svr
}

// ListenAndServe 监听端口，直到服务关闭
func (svr *Server) ListenAndServe() error {
	svr.logger.Info("mio server running, ready to accept connection", zap.String("addr", svr.addr))
	return svr.server.ListenAndServe()
}

// Serve 在已经建立的监听上提供服务
func (svr *Server) Serve(ln net.Listener) error {
	svr.logger.Info("mio server running, ready to accept connection", zap.String("addr", ln.Addr().String()))
	return svr.server.Serve(ln)
}

// Close 关闭监听，并关闭所有还打开着的文件
func (svr *Server) Close() error {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	err := multierr.Append(svr.server.Close(), svr.registry.CloseAll())
	svr.logger.Info("mio server closed", zap.Error(err))
	return err
}

func (svr *Server) accept(conn redcon.Conn) bool {
	svr.logger.Debug("accept connection", zap.String("remote", conn.RemoteAddr()))
	return true
}

func (svr *Server) closed(conn redcon.Conn, err error) {
	svr.logger.Debug("connection closed", zap.String("remote", conn.RemoteAddr()), zap.Error(err))
}
