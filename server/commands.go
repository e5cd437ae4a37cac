package server

import (
	"errors"
	"fmt"
	"io"
	"mio-go"
	"strconv"
	"strings"

	"github.com/tidwall/redcon"
	"go.uber.org/zap"
)

var ErrNoSuchHandle = errors.New("ERR no such handle")

func newWrongNumberOfArgsError(cmd string) error {
	return fmt.Errorf("ERR wrong number of arguments for '%s' command", cmd)
}

type cmdHandler func(svr *Server, args [][]byte) (interface{}, error)

var supportedCommands = map[string]cmdHandler{
	"open":     open,
	"read":     read,
	"getc":     getc,
	"gets":     gets,
	"write":    write,
	"putc":     putc,
	"puts":     puts,
	"flush":    flush,
	"buffered": buffered,
	"close":    closeHandle,
	"handles":  handles,
}

// execClientCommand 执行客户端发来的命令
func (svr *Server) execClientCommand(conn redcon.Conn, cmd redcon.Command) {
	command := strings.ToLower(string(cmd.Args[0]))

	switch command {
	case "quit":
		_ = conn.Close()
	case "ping":
		conn.WriteString("PONG")
	default:
		res, err := svr.dispatch(command, cmd.Args[1:])
		if err != nil {
			if errors.Is(err, io.EOF) {
				conn.WriteNull()
			} else {
				conn.WriteError(errorString(err))
			}
			return
		}
		conn.WriteAny(res)
	}
}

func (svr *Server) dispatch(command string, args [][]byte) (interface{}, error) {
	cmdFun, ok := supportedCommands[command]
	if !ok {
		return nil, fmt.Errorf("ERR unknown command '%s'", command)
	}
	return cmdFun(svr, args)
}

// errorString redis 协议中的错误需要带上前缀
func errorString(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "ERR ") {
		return msg
	}
	return "ERR " + msg
}

// withHandle 找到句柄并持有句柄锁执行 fn
func (svr *Server) withHandle(arg []byte, fn func(f *mio.File) (interface{}, error)) (interface{}, error) {
	id, err := strconv.ParseInt(string(arg), 10, 64)
	if err != nil {
		return nil, errors.New("ERR handle is not an integer")
	}
	h := svr.registry.Get(id)
	if h == nil {
		return nil, ErrNoSuchHandle
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.file)
}

func open(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 2 {
		return nil, newWrongNumberOfArgsError("open")
	}
	mode, err := mio.ParseMode(string(args[1]))
	if err != nil {
		return nil, err
	}
	f, err := mio.OpenWithOptions(string(args[0]), mode, svr.options)
	if err != nil {
		return nil, err
	}
	return redcon.SimpleInt(svr.registry.Put(f)), nil
}

func read(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 2 {
		return nil, newWrongNumberOfArgsError("read")
	}
	size, err := strconv.Atoi(string(args[1]))
	if err != nil {
		return nil, errors.New("ERR size is not an integer")
	}
	return svr.withHandle(args[0], func(f *mio.File) (interface{}, error) {
		b, err := f.ReadN(size)
		if err != nil && len(b) == 0 {
			return nil, err
		}
		// 出错前已经读到的数据照常返回，下一次 READ 重新读取底层文件时再报告错误
		if err != nil {
			svr.logger.Debug("partial read", zap.Int("bytes", len(b)), zap.Error(err))
		}
		return b, nil
	})
}

func getc(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumberOfArgsError("getc")
	}
	return svr.withHandle(args[0], func(f *mio.File) (interface{}, error) {
		c, err := f.GetChar()
		if err != nil {
			return nil, err
		}
		return []byte{c}, nil
	})
}

func gets(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumberOfArgsError("gets")
	}
	return svr.withHandle(args[0], func(f *mio.File) (interface{}, error) {
		token, err := f.GetToken()
		if err != nil {
			return nil, err
		}
		return token, nil
	})
}

func write(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 2 {
		return nil, newWrongNumberOfArgsError("write")
	}
	return svr.withHandle(args[0], func(f *mio.File) (interface{}, error) {
		n, err := f.Write(args[1])
		if err != nil {
			return nil, err
		}
		return redcon.SimpleInt(n), nil
	})
}

func putc(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 2 {
		return nil, newWrongNumberOfArgsError("putc")
	}
	if len(args[1]) != 1 {
		return nil, errors.New("ERR putc expects exactly one byte")
	}
	return svr.withHandle(args[0], func(f *mio.File) (interface{}, error) {
		if err := f.PutChar(args[1][0]); err != nil {
			return nil, err
		}
		return redcon.SimpleString("OK"), nil
	})
}

func puts(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 2 {
		return nil, newWrongNumberOfArgsError("puts")
	}
	return svr.withHandle(args[0], func(f *mio.File) (interface{}, error) {
		n, err := f.PutString(string(args[1]))
		if err != nil {
			return nil, err
		}
		return redcon.SimpleInt(n), nil
	})
}

func flush(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumberOfArgsError("flush")
	}
	return svr.withHandle(args[0], func(f *mio.File) (interface{}, error) {
		n, err := f.Flush()
		if err != nil {
			return nil, err
		}
		return redcon.SimpleInt(n), nil
	})
}

func buffered(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumberOfArgsError("buffered")
	}
	return svr.withHandle(args[0], func(f *mio.File) (interface{}, error) {
		return redcon.SimpleInt(f.Buffered()), nil
	})
}

func closeHandle(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumberOfArgsError("close")
	}
	id, err := strconv.ParseInt(string(args[0]), 10, 64)
	if err != nil {
		return nil, errors.New("ERR handle is not an integer")
	}
	// 先从句柄表中移除，之后的命令都找不到这个句柄
	h := svr.registry.Delete(id)
	if h == nil {
		return nil, ErrNoSuchHandle
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.file.Close(); err != nil {
		return nil, err
	}
	return redcon.SimpleString("OK"), nil
}

func handles(svr *Server, args [][]byte) (interface{}, error) {
	if len(args) != 0 {
		return nil, newWrongNumberOfArgsError("handles")
	}
	ids := svr.registry.Ids()
	res := make([]interface{}, len(ids))
	for i, id := range ids {
		res[i] = id
	}
	return res, nil
}
