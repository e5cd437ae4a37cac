package mio

import (
	"bytes"
	"errors"
	"io"
)

var errMockIO = errors.New("mock io failure")

// mockIO 可以控制每次底层读写行为的 IOManager，用来测试短写、读写失败等情况
type mockIO struct {
	source *bytes.Reader // 读取的数据来源
	sink   bytes.Buffer  // 写入的数据

	readCalls  int
	writeCalls int
	syncCalls  int
	closeCalls int

	readErrAt  int  // 第几次 Read 开始返回错误，0 表示不出错
	maxRead    int  // 每次 Read 最多读取的字节数，0 表示不限制
	maxWrite   int  // 每次 Write 最多写入的字节数，0 表示不限制
	writeErrAt int  // 第几次 Write 开始返回错误，0 表示不出错
	stall      bool // Write 不写入任何数据也不报错
	closeErr   error
	syncErr    error
}

func newMockIO(data string) *mockIO {
	return &mockIO{source: bytes.NewReader([]byte(data))}
}

func (m *mockIO) Read(b []byte) (int, error) {
	m.readCalls++
	if m.readErrAt > 0 && m.readCalls >= m.readErrAt {
		return 0, errMockIO
	}
	if m.maxRead > 0 && len(b) > m.maxRead {
		b = b[:m.maxRead]
	}
	n, err := m.source.Read(b)
	if err == io.EOF {
		return n, nil
	}
	return n, err
}

func (m *mockIO) Write(b []byte) (int, error) {
	m.writeCalls++
	if m.writeErrAt > 0 && m.writeCalls >= m.writeErrAt {
		return 0, errMockIO
	}
	if m.stall {
		return 0, nil
	}
	if m.maxWrite > 0 && len(b) > m.maxWrite {
		b = b[:m.maxWrite]
	}
	return m.sink.Write(b)
}

func (m *mockIO) Sync() error {
	m.syncCalls++
	return m.syncErr
}

func (m *mockIO) Close() error {
	m.closeCalls++
	return m.closeErr
}

func (m *mockIO) Size() (int64, error) {
	return int64(m.sink.Len()), nil
}

func (m *mockIO) touched() bool {
	return m.readCalls+m.writeCalls+m.syncCalls > 0
}
