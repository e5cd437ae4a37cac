package fio

import (
	"io"

	"golang.org/x/exp/mmap"
)

// MMap 内存文件映射，只能用于读
// 映射的是打开时刻的文件内容，之后对文件的修改不可见
type MMap struct {
	readerAt *mmap.ReaderAt
	offset   int64 // 下一次读取的位置
}

// NewMMapIOManager 初始化 MMap IO
func NewMMapIOManager(fileName string) (*MMap, error) {
	readerAt, err := mmap.Open(fileName)
	if err != nil {
		return nil, err
	}
	return &MMap{readerAt: readerAt}, nil
}

func (mm *MMap) Read(b []byte) (int, error) {
	if mm.offset >= int64(mm.readerAt.Len()) {
		return 0, io.EOF
	}
	n, err := mm.readerAt.ReadAt(b, mm.offset)
	mm.offset += int64(n)
	// 读到末尾但拿到了数据，EOF 留给下一次 Read
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (mm *MMap) Write([]byte) (int, error) {
	return 0, ErrReadOnly
}

func (mm *MMap) Sync() error {
	return nil
}

func (mm *MMap) Close() error {
	return mm.readerAt.Close()
}

func (mm *MMap) Size() (int64, error) {
	return int64(mm.readerAt.Len()), nil
}
