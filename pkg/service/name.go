package service

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptySource 未提供源码路径（空串或只有空白）
	ErrEmptySource = errors.New("源码路径不能为空")
	// ErrInvalidSource 无法从源码路径推导出服务名
	ErrInvalidSource = errors.New("无法从源码路径推导服务名")
)

// ServiceName 从源码路径推导服务名
// 规则：去掉末尾的路径分隔符后取最后一段，例如 path/to/bar/ -> bar
func ServiceName(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", ErrEmptySource
	}

	trimmed := strings.TrimRight(source, `/`+string(filepath.Separator))
	if trimmed == "" {
		return "", ErrInvalidSource
	}

	name := filepath.Base(trimmed)
	if name == "." || name == ".." || strings.TrimSpace(name) == "" {
		return "", ErrInvalidSource
	}

	return name, nil
}
