package mio

import (
	"errors"
	"io"
	"mio-go/fio"
	"os"

	"github.com/gofrs/flock"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const lockFileSuffix = ".lock"

// File 带缓冲的文件句柄
// 只读模式下只使用读缓冲区，写模式下只使用写缓冲区，但两者在打开时都会分配
// 不是并发安全的，多个 goroutine 访问同一个 File 需要调用方自己加锁
type File struct {
	name      string
	mode      Mode
	options   Options
	ioManager fio.IOManager // 底层文件，关闭后置为 nil
	fileLock  *flock.Flock  // 写模式下的文件锁，未开启时为 nil
	logger    *zap.Logger

	readBuf   []byte
	readStart int // [readStart, readEnd) 为还未被读走的数据
	readEnd   int

	writeBuf []byte
	writeEnd int // [0, writeEnd) 为还未写到底层文件的数据
}

// 确保 File 可以当作标准的 io 接口使用
var _ io.ReadWriteCloser = (*File)(nil)

// Open 使用默认配置打开文件
func Open(name string, mode Mode) (*File, error) {
	return OpenWithOptions(name, mode, DefaultOptions)
}

// OpenWithOptions 打开文件，失败时不会遗留任何已经获取的资源
func OpenWithOptions(name string, mode Mode, options Options) (*File, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	flag, err := mode.flag()
	if err != nil {
		logger.Debug("invalid open mode", zap.String("file", name), zap.Int8("mode", int8(mode)))
		return nil, err
	}
	if err := checkOptions(options); err != nil {
		return nil, err
	}
	if options.IOType == fio.MemoryMap && mode != ModeRead {
		return nil, ErrMMapReadOnly
	}

	// 写模式下先拿到文件锁，保证同一时刻只有一个进程在写
	var fileLock *flock.Flock
	if options.LockFile && mode.isWrite() {
		fileLock = flock.New(name + lockFileSuffix)
		hold, err := fileLock.TryLock()
		if err != nil {
			return nil, ioError("lock", err)
		}
		if !hold {
			return nil, ErrFileIsLocked
		}
	}

	var ioManager fio.IOManager
	if options.IOType == fio.BillyFIO {
		ioManager, err = fio.NewBillyIOManager(options.FileSystem, name, flag)
	} else {
		ioManager, err = fio.NewIOManager(name, flag, options.IOType)
	}
	if err != nil {
		logger.Debug("failed to open file", zap.String("file", name), zap.Error(err))
		if fileLock != nil {
			_ = releaseLock(fileLock)
		}
		return nil, ioError("open", err)
	}

	f := newFile(name, mode, ioManager, options)
	f.fileLock = fileLock
	fields := []zap.Field{zap.String("file", name), zap.Stringer("mode", mode)}
	if mode == ModeRead {
		if size, err := ioManager.Size(); err == nil {
			fields = append(fields, zap.Int64("size", size))
		}
	}
	logger.Debug("file opened", fields...)
	return f, nil
}

// releaseLock 释放文件锁并删除锁文件
func releaseLock(fileLock *flock.Flock) error {
	if err := fileLock.Unlock(); err != nil {
		return err
	}
	if err := os.Remove(fileLock.Path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// newFile 基于已经打开的底层文件构造 File，两个缓冲区都会分配
func newFile(name string, mode Mode, ioManager fio.IOManager, options Options) *File {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{
		name:      name,
		mode:      mode,
		options:   options,
		ioManager: ioManager,
		logger:    logger,
		readBuf:   make([]byte, options.BufferSize),
		writeBuf:  make([]byte, options.BufferSize),
	}
}

// Close 关闭文件
// 写模式下先把缓冲区中的数据写出，中间任何一步失败都不会中断关闭流程，
// 所有错误在资源释放完之后一起返回
func (f *File) Close() error {
	if !f.valid() {
		return ErrInvalidHandle
	}

	var result error
	if f.mode.isWrite() {
		for f.writeEnd > 0 {
			n, err := f.flush()
			if err != nil {
				f.logger.Debug("failed to flush buffer during close", zap.String("file", f.name), zap.Error(err))
				result = multierr.Append(result, err)
				break
			}
			if n == 0 {
				result = multierr.Append(result, ioError("flush", io.ErrShortWrite))
				break
			}
		}
		if f.options.SyncWrites {
			if err := f.ioManager.Sync(); err != nil {
				result = multierr.Append(result, ioError("sync", err))
			}
		}
	}

	if err := f.ioManager.Close(); err != nil {
		f.logger.Debug("failed to close file", zap.String("file", f.name), zap.Error(err))
		result = multierr.Append(result, ioError("close", err))
	}
	if f.fileLock != nil {
		if err := releaseLock(f.fileLock); err != nil {
			result = multierr.Append(result, ioError("unlock", err))
		}
		f.fileLock = nil
	}

	// 释放缓冲区，句柄失效
	f.ioManager = nil
	f.readBuf, f.writeBuf = nil, nil
	f.readStart, f.readEnd, f.writeEnd = 0, 0, 0

	f.logger.Debug("file closed", zap.String("file", f.name), zap.Bool("ok", result == nil))
	return result
}

// Name 返回打开时使用的文件名
func (f *File) Name() string {
	return f.name
}

// Mode 返回打开模式
func (f *File) Mode() Mode {
	return f.mode
}

// Buffered 返回写缓冲区中还没有写出的字节数
func (f *File) Buffered() int {
	if !f.valid() {
		return 0
	}
	return f.writeEnd
}

func (f *File) valid() bool {
	return f != nil && f.ioManager != nil
}

// IsEOF 判断错误是否表示已经读到文件末尾
func IsEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
