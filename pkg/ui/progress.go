package ui

import (
	"time"

	"github.com/briandowns/spinner"
)

// NewSpinner 创建一个新的 spinner，输出到错误输出
func NewSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stderr))
	s.Suffix = " " + message
	return s
}

// StartSpinner 启动 spinner 并返回停止函数
// 停止函数必须在子进程开始输出之前调用；失败时只停止 spinner，错误由调用方统一输出
func StartSpinner(message string) func(bool) {
	s := NewSpinner(message)
	s.Start()

	return func(success bool) {
		s.Stop()
		if success {
			ColorSuccess.Fprintf(stderr, "✓ %s\n", message)
		}
	}
}
