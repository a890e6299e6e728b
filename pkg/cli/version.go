package cli

// Version 版本号，构建时可通过 -ldflags "-X stormdragon/run-deployer/pkg/cli.Version=..." 覆盖
var Version = "0.1.0"

const versionTemplate = `run-deployer v{{.Version}}
Cloud Run 服务部署工具
`
