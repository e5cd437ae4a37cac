package mio

import (
	"fmt"

	"mio-go/fio"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
)

// DefaultBufferSize 读写缓冲区的默认大小
const DefaultBufferSize = 10

type Options struct {
	// 读写缓冲区大小，每次底层读写最多搬运这么多字节，同时也是 GetToken 的容量上限
	BufferSize int

	// 底层 IO 类型
	IOType fio.IOType

	// IOType 为 fio.BillyFIO 时使用的文件系统
	FileSystem billy.Filesystem

	// 每次 flush 写出数据后是否进行持久化
	SyncWrites bool

	// 写模式下是否对文件加锁，保证多进程间写入互斥
	LockFile bool

	// 诊断日志，为空时不输出
	Logger *zap.Logger
}

var DefaultOptions = Options{
	BufferSize: DefaultBufferSize,
	IOType:     fio.StandardFIO,
	SyncWrites: false,
	LockFile:   false,
}

// checkOptions 校验配置项
func checkOptions(options Options) error {
	if options.BufferSize <= 0 {
		return fmt.Errorf("%w: buffer size must be greater than 0", ErrInvalidOptions)
	}
	switch options.IOType {
	case fio.StandardFIO, fio.MemoryMap:
	case fio.BillyFIO:
		if options.FileSystem == nil {
			return fmt.Errorf("%w: billy io requires a file system", ErrInvalidOptions)
		}
		if options.LockFile {
			return fmt.Errorf("%w: file lock is not supported on billy io", ErrInvalidOptions)
		}
	default:
		return fmt.Errorf("%w: unknown io type %d", ErrInvalidOptions, options.IOType)
	}
	return nil
}
