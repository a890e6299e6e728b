package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName 默认配置文件名
const ConfigFileName = "config.yaml"

// LoadFromFile 从 YAML 文件加载配置
func LoadFromFile(path string) (*DeployConfig, error) {
	data, err := os.ReadFile(ExpandHomePath(path))
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyRemoteDefaults(config)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return config, nil
}

// Load 加载配置
// path 为空时读取默认配置文件，默认文件不存在则使用内置默认值
func Load(path string) (*DeployConfig, error) {
	if path != "" {
		return LoadFromFile(path)
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(defaultPath); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadFromFile(defaultPath)
}

// WriteFile 将配置写入 YAML 文件
func WriteFile(path string, cfg *DeployConfig) error {
	path = ExpandHomePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

// applyRemoteDefaults 远程配置未填端口时使用 22
func applyRemoteDefaults(config *DeployConfig) {
	if config.Spec.Remote != nil && config.Spec.Remote.SSH.Port == 0 {
		config.Spec.Remote.SSH.Port = 22
	}
}

// ExpandHomePath 扩展家目录路径
func ExpandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// GetConfigDir 获取配置目录
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".run-deployer"), nil
}

// DefaultConfigPath 默认配置文件路径
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}
