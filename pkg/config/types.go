package config

// DeployConfig 部署配置
type DeployConfig struct {
	APIVersion string     `yaml:"apiVersion"`
	Kind       string     `yaml:"kind"`
	Spec       DeploySpec `yaml:"spec"`
}

// DeploySpec 部署规格配置
type DeploySpec struct {
	Command    string        `yaml:"command"`              // 部署命令行工具，默认 gcloud
	Subcommand []string      `yaml:"subcommand"`           // 子命令，默认 run deploy
	Region     string        `yaml:"region"`               // 部署区域
	ExtraFlags []string      `yaml:"extraFlags,omitempty"` // 追加在固定参数之后的额外参数（可选）
	Remote     *RemoteConfig `yaml:"remote,omitempty"`     // 远程构建机（可选，不配置则在本地执行）
}

// RemoteConfig 远程构建机配置
type RemoteConfig struct {
	Host string    `yaml:"host"`
	SSH  SSHConfig `yaml:"ssh"`
}

// SSHConfig SSH 连接配置
type SSHConfig struct {
	User     string `yaml:"user"`     // SSH 用户名
	Port     int    `yaml:"port"`     // SSH 端口
	KeyFile  string `yaml:"keyFile"`  // SSH 私钥文件路径（可选）
	Password string `yaml:"password"` // SSH 密码（可选，不推荐）
}

const (
	DefaultCommand = "gcloud"
	DefaultRegion  = "us-central1"
)

// DefaultConfig 返回默认配置
func DefaultConfig() *DeployConfig {
	return &DeployConfig{
		APIVersion: "run-deployer/v1",
		Kind:       "Deploy",
		Spec: DeploySpec{
			Command:    DefaultCommand,
			Subcommand: []string{"run", "deploy"},
			Region:     DefaultRegion,
		},
	}
}
