package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	// 颜色定义
	ColorInfo    = color.New(color.FgCyan)
	ColorSuccess = color.New(color.FgGreen)
	ColorError   = color.New(color.FgRed)
	ColorBold    = color.New(color.Bold)
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput 设置 UI 输出（测试用）
func SetOutput(out, errOut io.Writer) {
	stdout = out
	stderr = errOut
}

// Stdout 当前的标准输出
func Stdout() io.Writer {
	return stdout
}

// Stderr 当前的错误输出
func Stderr() io.Writer {
	return stderr
}

// Info 打印信息消息
func Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	ColorInfo.Fprintf(stdout, "%s\n", msg)
}

// Success 打印成功消息
func Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	ColorSuccess.Fprintf(stdout, "✓ %s\n", msg)
}

// Error 打印错误消息
func Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	ColorError.Fprintf(stderr, "✗ 错误: %s\n", msg)
}

// Usage 打印用法说明到错误输出
func Usage(text string) {
	fmt.Fprintln(stderr, strings.TrimRight(text, "\n"))
}

// Title 打印标题
func Title(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout)
	ColorBold.Fprintln(stdout, msg)
	fmt.Fprintln(stdout, strings.Repeat("=", len(msg)))
}
