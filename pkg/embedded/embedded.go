// Package embedded 提供内置规则数据的统一访问接口
//
// 默认规则表（data/*.yaml）编译进二进制；宿主程序可以通过 Init
// 换成磁盘目录或测试用的内存文件系统。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed data/*.yaml
var builtinFS embed.FS

var dataFS fs.FS = builtinFS

const dataPrefix = "data/"

// Init 替换数据文件系统
// fsys 的根目录下需要有 data/ 子目录；传 nil 恢复内置数据
func Init(fsys fs.FS) {
	if fsys == nil {
		dataFS = builtinFS
		return
	}
	dataFS = fsys
}

// IsBuiltin 当前是否使用编译进二进制的数据
func IsBuiltin() bool {
	_, ok := dataFS.(embed.FS)
	return ok
}

// Builtin 返回内置数据文件系统，不受 Init 影响
func Builtin() fs.FS {
	return builtinFS
}

func normalize(path string) (string, error) {
	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, dataPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with '%s')", path, dataPrefix)
	}
	return path, nil
}

// Open 打开数据文件，路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取数据文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查数据文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配数据文件
func Glob(pattern string) ([]string, error) {
	pattern, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, pattern)
}
