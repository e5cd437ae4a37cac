package mio

import (
	"fmt"
	"os"
)

// Mode 文件打开模式，打开之后不能更改
type Mode int8

const (
	// ModeRead 只读，文件必须存在
	ModeRead Mode = iota

	// ModeWriteAppend 只写，不存在则创建，所有写入都追加到文件末尾
	ModeWriteAppend

	// ModeWriteTruncate 只写，不存在则创建，打开时清空文件
	ModeWriteTruncate
)

// ParseMode 解析 fopen 风格的模式字符串：r 只读，a 追加，w 清空写
func ParseMode(s string) (Mode, error) {
	switch s {
	case "r":
		return ModeRead, nil
	case "a":
		return ModeWriteAppend, nil
	case "w":
		return ModeWriteTruncate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "r"
	case ModeWriteAppend:
		return "a"
	case ModeWriteTruncate:
		return "w"
	default:
		return fmt.Sprintf("Mode(%d)", int8(m))
	}
}

func (m Mode) isWrite() bool {
	return m == ModeWriteAppend || m == ModeWriteTruncate
}

// flag 模式对应的 os.OpenFile 打开标志
func (m Mode) flag() (int, error) {
	switch m {
	case ModeRead:
		return os.O_RDONLY, nil
	case ModeWriteAppend:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND, nil
	case ModeWriteTruncate:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, nil
	default:
		return 0, ErrInvalidMode
	}
}
