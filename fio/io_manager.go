package fio

// FilePerm 新建文件默认权限 0644
// 八进制数字，所有者有读写权限，所在组和其他用户仅有读权限
const FilePerm = 0644

type IOType = byte

const (
	// StandardFIO 标准文件 IO
	StandardFIO IOType = iota

	// MemoryMap 内存文件映射，只支持读
	MemoryMap

	// BillyFIO 基于 go-billy 文件系统的 IO，可以是内存文件系统，也可以是本地文件系统
	BillyFIO
)

// IOManager 一个 IO 管理的抽象接口，将底层的 open/read/write/close 封装在一起
// Read 和 Write 都是顺序的，没有随机访问
type IOManager interface {
	// Read 从当前位置读取最多 len(b) 个字节
	// 读到文件末尾时返回 0 和 io.EOF（或者 0 和 nil）
	Read([]byte) (int, error)

	// Write 写入数据到文件中，可能只写入一部分
	Write([]byte) (int, error)

	// Sync 持久化数据
	Sync() error

	// Close 关闭文件
	Close() error

	// Size 获取到文件大小
	Size() (int64, error)
}

// NewIOManager 初始化 IOManager，flag 为 os.OpenFile 的打开标志
// BillyFIO 需要传入文件系统，请使用 NewBillyIOManager
func NewIOManager(fileName string, flag int, ioType IOType) (IOManager, error) {
	switch ioType {
	case StandardFIO:
		return NewFileIOManager(fileName, flag)
	case MemoryMap:
		return NewMMapIOManager(fileName)
	default:
		return nil, ErrUnsupportedIOType
	}
}
