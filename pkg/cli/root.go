package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stormdragon/run-deployer/pkg/config"
	"stormdragon/run-deployer/pkg/deploy"
	"stormdragon/run-deployer/pkg/executor"
	"stormdragon/run-deployer/pkg/logger"
	"stormdragon/run-deployer/pkg/service"
	"stormdragon/run-deployer/pkg/ui"
)

const usageText = "用法: run-deployer <源码路径>"

var errMissingSource = errors.New("缺少源码路径参数")

// ExecutorFactory 根据部署配置创建命令执行器
type ExecutorFactory func(spec config.DeploySpec) (executor.CommandExecutor, error)

type options struct {
	configFile string
	region     string
	remoteHost string
	logFile    string
	dryRun     bool
	verbose    bool
	showConfig bool
	initConfig bool
}

// NewRootCmd 创建根命令
func NewRootCmd(factory ExecutorFactory, streams executor.Streams) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "run-deployer <源码路径>",
		Short: "将服务源码目录部署到 Cloud Run",
		Long: `run-deployer 调用 gcloud 将一个服务源码目录部署到 Cloud Run。

服务名取源码路径的最后一段（末尾的 / 会被忽略），例如：
  run-deployer path/to/uploader
等价于：
  gcloud run deploy uploader --region us-central1 --source path/to/uploader

退出码与 gcloud 的退出码一致；缺少源码路径时退出码为 1。`,
		Example: `  # 部署 uploader 服务
  run-deployer invoice-processing-pipeline/uploader

  # 部署到其他区域
  run-deployer reviewer --region europe-west1

  # 只打印将要执行的命令
  run-deployer reviewer --dry-run`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd.Context(), opts, factory, streams, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "配置文件路径 (默认: ~/.run-deployer/config.yaml)")
	flags.StringVarP(&opts.region, "region", "r", "", "部署区域，覆盖配置文件 (默认: "+config.DefaultRegion+")")
	flags.StringVar(&opts.remoteHost, "remote", "", "在远程构建机上执行部署，覆盖 spec.remote.host")
	flags.StringVar(&opts.logFile, "log-file", "", "JSON 日志文件路径")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "只打印部署命令，不执行")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "详细输出模式")
	flags.BoolVar(&opts.showConfig, "show-config", false, "显示生效的配置")
	flags.BoolVar(&opts.initConfig, "init-config", false, "生成默认配置文件")

	cmd.SetVersionTemplate(versionTemplate)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &deploy.UsageError{Err: err}
	})

	return cmd
}

// Execute 执行根命令并返回进程退出码
func Execute() int {
	// Ctrl-C 由终端直接发给部署命令，这里只接住信号，等子进程退出后返回它的退出码
	signal.Notify(make(chan os.Signal, 1), os.Interrupt)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	return Run(ctx, os.Args[1:], DefaultExecutorFactory, executor.StdStreams())
}

// Run 用指定参数执行根命令并返回进程退出码
func Run(ctx context.Context, args []string, factory ExecutorFactory, streams executor.Streams) int {
	cmd := NewRootCmd(factory, streams)
	cmd.SetArgs(args)
	cmd.SetOut(ui.Stdout())
	cmd.SetErr(ui.Stderr())

	err := cmd.ExecuteContext(ctx)
	logger.Close()

	return exitCode(err)
}

// exitCode 将命令错误转换为进程退出码
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *deploy.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var usageErr *deploy.UsageError
	if errors.As(err, &usageErr) {
		if !errors.Is(err, errMissingSource) && !errors.Is(err, service.ErrEmptySource) {
			ui.Error("%v", err)
		}
		ui.Usage(usageText)
		return deploy.ExitCodeUsage
	}

	ui.Error("%v", err)
	return 1
}

func runDeploy(ctx context.Context, opts *options, factory ExecutorFactory, streams executor.Streams, args []string) error {
	if len(args) == 0 && !opts.showConfig && !opts.initConfig {
		return &deploy.UsageError{Err: errMissingSource}
	}

	if err := logger.InitLogger(opts.verbose, opts.logFile); err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}

	if opts.initConfig {
		return runInitConfig(opts.configFile)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if opts.showConfig {
		printConfig(cfg)
		return nil
	}

	if len(args) > 1 {
		logger.Debug("忽略多余的参数", zap.Strings("args", args[1:]))
	}

	invoker := deploy.NewInvoker(cfg.Spec, nil, streams)
	invoker.DryRun = opts.dryRun

	// 先校验源码路径，避免无效参数时建立远程连接
	if _, err := invoker.BuildCommand(args[0]); err != nil {
		return err
	}

	if !opts.dryRun {
		if cfg.Spec.Remote != nil {
			// 远程执行时终端信号不会到达远端进程，由 ctx 转发
			var stop context.CancelFunc
			ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
		}

		exec, err := factory(cfg.Spec)
		if err != nil {
			return err
		}
		defer exec.Close()
		invoker.Executor = exec
	}

	code, err := invoker.Run(ctx, args[0])
	if err != nil {
		return err
	}
	if code != 0 {
		return &deploy.ExitError{Code: code}
	}
	return nil
}

// loadConfig 加载配置文件并应用命令行参数
func loadConfig(opts *options) (*config.DeployConfig, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	if opts.region != "" {
		if err := config.ValidateRegion(opts.region); err != nil {
			return nil, err
		}
		cfg.Spec.Region = opts.region
	}

	if opts.remoteHost != "" {
		if cfg.Spec.Remote == nil {
			return nil, fmt.Errorf("使用 --remote 需要在配置文件中提供 spec.remote.ssh")
		}
		cfg.Spec.Remote.Host = opts.remoteHost
	}

	logger.Debug("配置加载完成",
		zap.String("command", cfg.Spec.Command),
		zap.String("region", cfg.Spec.Region),
		zap.Bool("remote", cfg.Spec.Remote != nil),
	)
	return cfg, nil
}

// DefaultExecutorFactory 未配置远程构建机时在本地执行，否则通过 SSH 执行
func DefaultExecutorFactory(spec config.DeploySpec) (executor.CommandExecutor, error) {
	if spec.Remote == nil {
		return executor.NewLocalExecutor(), nil
	}

	remote := spec.Remote
	done := ui.StartSpinner(fmt.Sprintf("连接远程构建机 %s@%s:%d", remote.SSH.User, remote.Host, remote.SSH.Port))
	client, err := executor.NewSSHClient(executor.SSHOptions{
		Host:     remote.Host,
		Port:     remote.SSH.Port,
		User:     remote.SSH.User,
		KeyFile:  remote.SSH.KeyFile,
		Password: remote.SSH.Password,
	})
	done(err == nil)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// printConfig 以表格形式打印生效的配置
func printConfig(cfg *config.DeployConfig) {
	spec := cfg.Spec
	rows := [][]string{
		{"command", spec.Command},
		{"subcommand", strings.Join(spec.Subcommand, " ")},
		{"region", spec.Region},
		{"extraFlags", strings.Join(spec.ExtraFlags, " ")},
	}
	if spec.Remote != nil {
		rows = append(rows,
			[]string{"remote.host", spec.Remote.Host},
			[]string{"remote.ssh.user", spec.Remote.SSH.User},
			[]string{"remote.ssh.port", fmt.Sprint(spec.Remote.SSH.Port)},
		)
	}

	ui.Title("当前配置")
	ui.PrintKeyValueTable(rows)
}

// runInitConfig 生成默认配置文件，已存在时不覆盖
func runInitConfig(path string) error {
	if path == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("获取配置目录失败: %w", err)
		}
		path = defaultPath
	}
	path = config.ExpandHomePath(path)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("配置文件已存在: %s", path)
	}

	if err := config.WriteFile(path, config.DefaultConfig()); err != nil {
		return err
	}

	ui.Success("配置文件已生成: %s", path)
	return nil
}
