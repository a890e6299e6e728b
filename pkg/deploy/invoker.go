package deploy

import (
	"context"
	"fmt"

	"github.com/alessio/shellescape"
	"go.uber.org/zap"

	"stormdragon/run-deployer/pkg/config"
	"stormdragon/run-deployer/pkg/executor"
	"stormdragon/run-deployer/pkg/logger"
	"stormdragon/run-deployer/pkg/service"
	"stormdragon/run-deployer/pkg/ui"
)

// Command 一次部署要执行的命令
type Command struct {
	Service string
	Source  string
	Region  string
	Argv    []string
}

// String 返回可直接复制到 shell 中执行的命令行
func (c *Command) String() string {
	return shellescape.QuoteCommand(c.Argv)
}

// Invoker 部署调用器
type Invoker struct {
	Spec     config.DeploySpec
	Executor executor.CommandExecutor
	Streams  executor.Streams
	DryRun   bool
}

// NewInvoker 创建部署调用器
func NewInvoker(spec config.DeploySpec, exec executor.CommandExecutor, streams executor.Streams) *Invoker {
	return &Invoker{
		Spec:     spec,
		Executor: exec,
		Streams:  streams,
	}
}

// BuildCommand 根据源码路径生成部署命令
// 源码路径原样作为 --source 传入，服务名取路径最后一段
func (i *Invoker) BuildCommand(source string) (*Command, error) {
	name, err := service.ServiceName(source)
	if err != nil {
		return nil, &UsageError{Err: err}
	}

	argv := make([]string, 0, 6+len(i.Spec.Subcommand)+len(i.Spec.ExtraFlags))
	argv = append(argv, i.Spec.Command)
	argv = append(argv, i.Spec.Subcommand...)
	argv = append(argv, name, "--region", i.Spec.Region, "--source", source)
	argv = append(argv, i.Spec.ExtraFlags...)

	return &Command{
		Service: name,
		Source:  source,
		Region:  i.Spec.Region,
		Argv:    argv,
	}, nil
}

// Run 部署源码路径对应的服务，返回部署命令的退出码
// 参数错误时返回 ExitCodeUsage 和 *UsageError，此时不会执行任何命令
func (i *Invoker) Run(ctx context.Context, source string) (int, error) {
	cmd, err := i.BuildCommand(source)
	if err != nil {
		return ExitCodeUsage, err
	}

	if i.DryRun {
		i.printPlan(cmd)
		return 0, nil
	}

	ui.Info("正在部署服务 %s ...", cmd.Service)
	logger.Info("开始部署",
		zap.String("service", cmd.Service),
		zap.String("source", cmd.Source),
		zap.String("region", cmd.Region),
		zap.Strings("argv", cmd.Argv),
	)

	code, err := i.Executor.Run(ctx, cmd.Argv, i.Streams)
	logger.Info("部署命令结束", zap.String("service", cmd.Service), zap.Int("exit_code", code))
	if err != nil {
		if code == executor.ExitCodeNotFound {
			// 与 shell 行为一致：找不到命令时退出码为 127
			ui.Error("%v", err)
			return code, nil
		}
		return code, fmt.Errorf("执行部署命令失败: %w", err)
	}

	return code, nil
}

// printPlan 打印将要执行的命令（dry-run）
func (i *Invoker) printPlan(cmd *Command) {
	ui.Title("部署计划")
	ui.PrintKeyValueTable([][]string{
		{"service", cmd.Service},
		{"source", cmd.Source},
		{"region", cmd.Region},
	})
	fmt.Fprintln(ui.Stdout(), cmd.String())
}
