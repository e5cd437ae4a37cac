package mio

import (
	"io"

	"go.uber.org/zap"
)

// Read 读取 len(p) 个字节，除非中途读到了文件末尾
// 读缓冲区为空时从底层文件重新填充，每次底层读取最多 BufferSize 个字节
// 读到末尾时：本次已读到数据则返回读到的字节数和 nil，否则返回 0 和 io.EOF
// 底层读取出错时返回已经拷贝到 p 中的字节数和错误，p[:n] 中的数据是有效的
func (f *File) Read(p []byte) (int, error) {
	if !f.valid() {
		return 0, ErrInvalidHandle
	}
	if p == nil {
		return 0, ErrNilBuffer
	}
	if f.mode != ModeRead {
		f.logger.Debug("file not opened for reading", zap.String("file", f.name))
		return 0, ErrWrongMode
	}

	var total int
	for total < len(p) {
		// 读缓冲区中的数据已经读完，重新填充
		if f.readStart >= f.readEnd {
			n, err := f.fill()
			if err != nil {
				f.logger.Debug("read error", zap.String("file", f.name), zap.Int("copied", total), zap.Error(err))
				return total, err
			}
			if n == 0 {
				f.logger.Debug("eof reached", zap.String("file", f.name), zap.Int("bytes", total))
				if total > 0 {
					return total, nil
				}
				return 0, io.EOF
			}
		}

		n := copy(p[total:], f.readBuf[f.readStart:f.readEnd])
		f.readStart += n
		total += n
	}

	f.logger.Debug("read", zap.String("file", f.name), zap.Int("bytes", total))
	return total, nil
}

// ReadN 读取 size 个字节，返回新分配的字节数组
func (f *File) ReadN(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrNegativeSize
	}
	b := make([]byte, size)
	n, err := f.Read(b)
	return b[:n], err
}

// fill 从底层文件读取一次数据填充读缓冲区，返回 0 表示到达文件末尾
func (f *File) fill() (int, error) {
	n, err := f.ioManager.Read(f.readBuf)
	f.readStart = 0
	if err != nil && err != io.EOF {
		f.readEnd = 0
		return 0, ioError("read", err)
	}
	if n < 0 {
		n = 0
	}
	f.readEnd = n
	return n, nil
}

// GetChar 读取一个字节
func (f *File) GetChar() (byte, error) {
	var b [1]byte
	if _, err := f.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetToken 读取下一个以空白字符分隔的字符串
// 先跳过前导空白，跳过的过程中读到末尾则返回 io.EOF
// 然后逐个字节读取，直到遇到空白、读到末尾或出错、或者长度达到 BufferSize-1
// 结尾的空白字符已经被读走，不会放回
func (f *File) GetToken() (string, error) {
	if !f.valid() {
		return "", ErrInvalidHandle
	}

	var (
		c   byte
		err error
	)
	for {
		if c, err = f.GetChar(); err != nil {
			f.logger.Debug("no token before eof", zap.String("file", f.name), zap.Error(err))
			return "", err
		}
		if !isSpace(c) {
			break
		}
	}

	token := make([]byte, 0, f.options.BufferSize)
	token = append(token, c)
	for len(token) < f.options.BufferSize-1 {
		if c, err = f.GetChar(); err != nil {
			// 已经读到了数据，先把这部分返回
			break
		}
		if isSpace(c) {
			break
		}
		token = append(token, c)
	}

	f.logger.Debug("read token", zap.String("file", f.name), zap.ByteString("token", token))
	return string(token), nil
}

// isSpace 只认 ASCII 的空格、制表符、换行和回车
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
