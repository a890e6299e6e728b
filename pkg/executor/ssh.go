package executor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alessio/shellescape"
	"golang.org/x/crypto/ssh"
)

// DialTimeout SSH 连接超时
const DialTimeout = 30 * time.Second

// SSHOptions SSH 连接参数
type SSHOptions struct {
	Host     string
	Port     int
	User     string
	KeyFile  string
	Password string
}

// SSHClient SSH 客户端，在远程构建机上执行部署命令
type SSHClient struct {
	Host   string
	Port   int
	User   string
	client *ssh.Client
}

// NewSSHClient 创建新的 SSH 客户端
// 同时提供密钥和密码时优先使用密钥
func NewSSHClient(opts SSHOptions) (*SSHClient, error) {
	config, err := clientConfig(opts)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("SSH 连接失败: %w", err)
	}

	return &SSHClient{
		Host:   opts.Host,
		Port:   opts.Port,
		User:   opts.User,
		client: client,
	}, nil
}

// clientConfig 根据连接参数生成 ssh.ClientConfig
func clientConfig(opts SSHOptions) (*ssh.ClientConfig, error) {
	config := &ssh.ClientConfig{
		User:            opts.User,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: 支持 known_hosts 校验
		Timeout:         DialTimeout,
	}

	if opts.KeyFile != "" {
		key, err := os.ReadFile(expandPath(opts.KeyFile))
		if err != nil {
			return nil, fmt.Errorf("读取私钥文件失败: %w", err)
		}

		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("解析私钥失败: %w", err)
		}

		config.Auth = []ssh.AuthMethod{ssh.PublicKeys(signer)}
	} else if opts.Password != "" {
		config.Auth = []ssh.AuthMethod{ssh.Password(opts.Password)}
	} else {
		return nil, fmt.Errorf("必须提供 SSH 密钥或密码")
	}

	return config, nil
}

// RemoteCommand 将参数列表转换为远程 shell 可执行的命令行
func RemoteCommand(argv []string) string {
	return shellescape.QuoteCommand(argv)
}

// Run 在远程主机上执行命令，输出原样透传，返回远程退出码
// 远程执行是非交互的，部署命令需要确认时应通过 extraFlags 传入 --quiet
func (c *SSHClient) Run(ctx context.Context, argv []string, streams Streams) (int, error) {
	if len(argv) == 0 {
		return -1, fmt.Errorf("命令不能为空")
	}

	session, err := c.client.NewSession()
	if err != nil {
		return -1, fmt.Errorf("创建 SSH session 失败: %w", err)
	}
	defer session.Close()

	// 不转发 stdin：session.Wait 会等待 stdin 拷贝结束，终端输入会让它一直阻塞
	session.Stdout = streams.Stdout
	session.Stderr = streams.Stderr

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = session.Signal(ssh.SIGTERM)
			_ = session.Close()
		case <-done:
		}
	}()

	if err := session.Run(RemoteCommand(argv)); err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitStatus(), nil
		}
		if ctx.Err() != nil {
			return -1, fmt.Errorf("远程命令被取消: %w", ctx.Err())
		}
		return -1, fmt.Errorf("远程命令执行失败: %w", err)
	}

	return 0, nil
}

// Close 关闭 SSH 连接
func (c *SSHClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// expandPath 展开路径中的 ~ 为用户主目录
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
