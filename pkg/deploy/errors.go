package deploy

import "fmt"

// ExitCodeUsage 缺少必需参数时的退出码
const ExitCodeUsage = 1

// UsageError 参数错误，调用方应打印用法并以 ExitCodeUsage 退出
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitError 部署命令以非零状态退出
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("部署命令退出码: %d", e.Code)
}
