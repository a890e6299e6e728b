package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var regionRegex = regexp.MustCompile(`^[a-z]+-[a-z]+[0-9]+$`)

// ValidateConfig 验证部署配置
func ValidateConfig(cfg *DeployConfig) error {
	if err := validateMetadata(cfg); err != nil {
		return err
	}

	if err := validateSpec(&cfg.Spec); err != nil {
		return err
	}

	if cfg.Spec.Remote != nil {
		if err := validateRemote(cfg.Spec.Remote); err != nil {
			return err
		}
	}

	return nil
}

// validateMetadata 验证元数据
func validateMetadata(cfg *DeployConfig) error {
	if cfg.APIVersion == "" {
		return fmt.Errorf("apiVersion 不能为空")
	}
	if cfg.Kind == "" {
		return fmt.Errorf("kind 不能为空")
	}
	return nil
}

// validateSpec 验证部署规格
func validateSpec(spec *DeploySpec) error {
	if strings.TrimSpace(spec.Command) == "" {
		return fmt.Errorf("spec.command 不能为空")
	}

	if err := ValidateRegion(spec.Region); err != nil {
		return err
	}

	for i, flag := range spec.ExtraFlags {
		if !strings.HasPrefix(flag, "-") {
			return fmt.Errorf("spec.extraFlags[%d] 必须以 - 开头: %s", i, flag)
		}
	}

	return nil
}

// ValidateRegion 验证区域格式，例如 us-central1
func ValidateRegion(region string) error {
	if region == "" {
		return fmt.Errorf("spec.region 不能为空")
	}
	if !regionRegex.MatchString(region) {
		return fmt.Errorf("区域格式不正确，应类似 us-central1: %s", region)
	}
	return nil
}

// validateRemote 验证远程构建机配置
func validateRemote(remote *RemoteConfig) error {
	if remote.Host == "" {
		return fmt.Errorf("spec.remote.host 不能为空")
	}

	ssh := &remote.SSH
	if ssh.User == "" {
		return fmt.Errorf("远程主机 %s 的 SSH 用户名不能为空", remote.Host)
	}

	if ssh.Port <= 0 || ssh.Port > 65535 {
		return fmt.Errorf("远程主机 %s 的 SSH 端口不正确: %d", remote.Host, ssh.Port)
	}

	if ssh.KeyFile == "" && ssh.Password == "" {
		return fmt.Errorf("远程主机 %s 必须提供 SSH 密钥文件或密码", remote.Host)
	}

	if ssh.KeyFile != "" {
		keyPath := ExpandHomePath(ssh.KeyFile)
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			return fmt.Errorf("远程主机 %s 的 SSH 密钥文件不存在: %s", remote.Host, keyPath)
		}
	}

	return nil
}
