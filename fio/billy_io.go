package fio

import (
	"github.com/go-git/go-billy/v5"
)

// BillyIO 基于 go-billy 文件系统的 IO
// 封装了 github.com/go-git/go-billy，测试中可以直接使用 memfs
type BillyIO struct {
	fs   billy.Filesystem
	name string
	file billy.File
}

// NewBillyIOManager 在给定的文件系统上打开文件
func NewBillyIOManager(fs billy.Filesystem, fileName string, flag int) (*BillyIO, error) {
	file, err := fs.OpenFile(fileName, flag, FilePerm)
	if err != nil {
		return nil, err
	}
	return &BillyIO{fs: fs, name: fileName, file: file}, nil
}

func (bio *BillyIO) Read(b []byte) (int, error) {
	return bio.file.Read(b)
}

func (bio *BillyIO) Write(b []byte) (int, error) {
	return bio.file.Write(b)
}

// Sync billy.File 本身没有 Sync，底层文件支持时才调用
func (bio *BillyIO) Sync() error {
	if syncer, ok := bio.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

func (bio *BillyIO) Close() error {
	return bio.file.Close()
}

func (bio *BillyIO) Size() (int64, error) {
	stat, err := bio.fs.Stat(bio.name)
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}
