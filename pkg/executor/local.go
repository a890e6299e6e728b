package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// ExitCodeNotFound 命令不存在时的退出码，与 shell 保持一致
const ExitCodeNotFound = 127

// TerminateGracePeriod ctx 取消后等待子进程退出的时间，超时则强制结束
const TerminateGracePeriod = 30 * time.Second

// Streams 子进程使用的标准输入输出
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdStreams 返回当前进程的标准输入输出
func StdStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// CommandExecutor 统一的命令执行接口
// Run 返回子进程退出码；只有命令无法启动或等待失败时才返回 error
type CommandExecutor interface {
	Run(ctx context.Context, argv []string, streams Streams) (int, error)
	Close() error
}

// LocalExecutor 本地命令执行器
type LocalExecutor struct{}

// NewLocalExecutor 创建本地执行器
func NewLocalExecutor() *LocalExecutor {
	return &LocalExecutor{}
}

// Run 在本地直接执行命令（不经过 shell），输出原样透传
func (e *LocalExecutor) Run(ctx context.Context, argv []string, streams Streams) (int, error) {
	if len(argv) == 0 {
		return -1, fmt.Errorf("命令不能为空")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = streams.Stdin
	cmd.Stdout = streams.Stdout
	cmd.Stderr = streams.Stderr
	// ctx 取消时先转发 SIGTERM，让部署命令自行收尾
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = TerminateGracePeriod

	err := cmd.Run()
	if cmd.ProcessState != nil {
		return exitCode(cmd.ProcessState), nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return ExitCodeNotFound, fmt.Errorf("命令 %s 不存在: %w", argv[0], err)
	}
	return -1, fmt.Errorf("命令执行失败: %w", err)
}

// exitCode 取子进程退出码，被信号终止时按 shell 约定返回 128+信号值
func exitCode(state *os.ProcessState) int {
	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return state.ExitCode()
}

// Close 关闭执行器（本地执行器无需关闭）
func (e *LocalExecutor) Close() error {
	return nil
}

var _ CommandExecutor = (*LocalExecutor)(nil)

var _ CommandExecutor = (*SSHClient)(nil)
