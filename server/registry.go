package server

import (
	"mio-go"
	"sync"

	"github.com/google/btree"
	"go.uber.org/multierr"
)

// handle 一个打开的文件句柄
// mio.File 不是并发安全的，对同一个句柄的所有操作都需要持有 mu
type handle struct {
	id   int64
	mu   sync.Mutex
	file *mio.File
}

// Less 实现 BTree 的 Item 接口，按照句柄 id 排序
func (h *handle) Less(than btree.Item) bool {
	return h.id < than.(*handle).id
}

// Registry 句柄表，调用 google 的 btree，可以按 id 顺序遍历所有打开的句柄
type Registry struct {
	tree   *btree.BTree
	lock   *sync.RWMutex
	nextId int64
}

// NewRegistry 初始化句柄表
func NewRegistry() *Registry {
	return &Registry{
		tree: btree.New(32),
		lock: new(sync.RWMutex),
	}
}

// Put 登记一个打开的文件，返回分配的句柄 id，id 从 1 开始递增
func (r *Registry) Put(file *mio.File) int64 {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextId++
	r.tree.ReplaceOrInsert(&handle{id: r.nextId, file: file})
	return r.nextId
}

func (r *Registry) Get(id int64) *handle {
	r.lock.RLock()
	defer r.lock.RUnlock()
	item := r.tree.Get(&handle{id: id})
	if item == nil {
		return nil
	}
	return item.(*handle)
}

// Delete 从句柄表中移除，返回被移除的句柄，不存在时返回 nil
func (r *Registry) Delete(id int64) *handle {
	r.lock.Lock()
	defer r.lock.Unlock()
	item := r.tree.Delete(&handle{id: id})
	if item == nil {
		return nil
	}
	return item.(*handle)
}

// Ids 按从小到大的顺序返回所有句柄 id
func (r *Registry) Ids() []int64 {
	r.lock.RLock()
	defer r.lock.RUnlock()
	ids := make([]int64, 0, r.tree.Len())
	r.tree.Ascend(func(item btree.Item) bool {
		ids = append(ids, item.(*handle).id)
		return true
	})
	return ids
}

func (r *Registry) Size() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.tree.Len()
}

// CloseAll 关闭并移除所有句柄，返回所有关闭失败的错误
func (r *Registry) CloseAll() error {
	r.lock.Lock()
	var handles []*handle
	for r.tree.Len() > 0 {
		handles = append(handles, r.tree.DeleteMin().(*handle))
	}
	r.lock.Unlock()

	var result error
	for _, h := range handles {
		h.mu.Lock()
		result = multierr.Append(result, h.file.Close())
		h.mu.Unlock()
	}
	return result
}
