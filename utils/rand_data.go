package utils

import (
	"fmt"
	"math/rand"
	"time"
)

var (
	letters = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	randStr = rand.New(rand.NewSource(time.Now().Unix()))
)

// GetTestFileName 获取测试使用的文件名
func GetTestFileName(i int) string {
	return fmt.Sprintf("mio-go-%09d.data", i)
}

// RandomBytes 生成随机内容，用于测试
// 参数 n 表示生成内容的长度，内容中不包含空白字符
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[randStr.Intn(len(letters))]
	}
	return b
}
