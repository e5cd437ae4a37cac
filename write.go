package mio

import (
	"io"

	"go.uber.org/zap"
)

// Write 将 p 写入写缓冲区，缓冲区写满时 flush 到底层文件
// 返回 len(p) 只表示数据已经进入缓冲区，真正落盘要等到 Flush 或 Close
// flush 失败时整个调用失败，返回 0，即使一部分数据已经进入了缓冲区
func (f *File) Write(p []byte) (int, error) {
	if !f.valid() {
		return 0, ErrInvalidHandle
	}
	if p == nil {
		return 0, ErrNilBuffer
	}
	if !f.mode.isWrite() {
		f.logger.Debug("file not opened for writing", zap.String("file", f.name))
		return 0, ErrWrongMode
	}

	var total int
	for total < len(p) {
		n := copy(f.writeBuf[f.writeEnd:], p[total:])
		f.writeEnd += n
		total += n

		if f.writeEnd >= len(f.writeBuf) {
			flushed, err := f.flush()
			if err != nil {
				f.logger.Debug("failed to flush buffer during write", zap.String("file", f.name), zap.Error(err))
				return 0, err
			}
			// 底层没有写出任何数据也没有报错，继续循环不会有进展
			if flushed == 0 {
				return 0, ioError("write", io.ErrShortWrite)
			}
		}
	}

	f.logger.Debug("buffered", zap.String("file", f.name), zap.Int("bytes", total))
	return total, nil
}

// PutChar 写入一个字节
func (f *File) PutChar(c byte) error {
	_, err := f.Write([]byte{c})
	return err
}

// PutString 写入字符串，调用方通过比较返回值和 len(s) 判断是否写完
func (f *File) PutString(s string) (int, error) {
	if !f.valid() {
		return 0, ErrInvalidHandle
	}
	if len(s) == 0 {
		if !f.mode.isWrite() {
			return 0, ErrWrongMode
		}
		return 0, nil
	}
	return f.Write([]byte(s))
}

// Flush 将写缓冲区中的数据通过一次底层写入写出
// 只读模式或缓冲区为空时什么都不做，返回 0
// 底层只写出了一部分时，剩余数据移动到缓冲区头部，返回写出的字节数且不报错，
// 需要再次调用 Flush 才能写完，Buffered 返回剩余的字节数
func (f *File) Flush() (int, error) {
	if !f.valid() {
		return 0, ErrInvalidHandle
	}
	return f.flush()
}

func (f *File) flush() (int, error) {
	if !f.mode.isWrite() || f.writeEnd == 0 {
		return 0, nil
	}

	pending := f.writeEnd
	n, err := f.ioManager.Write(f.writeBuf[:pending])
	if n < 0 {
		n = 0
	}
	if n > pending {
		n = pending
	}
	// 写出了多少就从缓冲区中去掉多少，不管有没有出错，避免重试时重复写入
	if n > 0 {
		copy(f.writeBuf, f.writeBuf[n:pending])
		f.writeEnd = pending - n
	}
	if err != nil {
		f.logger.Debug("write error during flush", zap.String("file", f.name), zap.Int("written", n), zap.Error(err))
		return n, ioError("write", err)
	}
	if n > 0 && f.options.SyncWrites {
		if err := f.ioManager.Sync(); err != nil {
			return n, ioError("sync", err)
		}
	}
	if n < pending {
		f.logger.Debug("partial write during flush", zap.String("file", f.name), zap.Int("written", n), zap.Int("pending", pending))
		return n, nil
	}
	f.logger.Debug("flushed", zap.String("file", f.name), zap.Int("bytes", n))
	return n, nil
}
