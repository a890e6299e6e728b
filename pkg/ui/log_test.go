package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true

	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		color.NoColor = noColor
		SetOutput(os.Stdout, os.Stderr)
	})
	return &out, &errOut
}

func TestStreams(t *testing.T) {
	out, errOut := capture(t)

	Info("正在部署服务 %s ...", "bar")
	Success("完成")
	Error("失败 %d", 1)
	Usage("用法: run-deployer <源码路径>\n")

	assert.Equal(t, "正在部署服务 bar ...\n✓ 完成\n", out.String())
	assert.Equal(t, "✗ 错误: 失败 1\n用法: run-deployer <源码路径>\n", errOut.String())
}

func TestPrintKeyValueTable(t *testing.T) {
	out, _ := capture(t)

	PrintKeyValueTable([][]string{{"service", "bar"}, {"region", "us-central1"}})

	assert.Contains(t, out.String(), "参数")
	assert.Contains(t, out.String(), "service")
	assert.Contains(t, out.String(), "us-central1")
}

func TestPrintKeyValueTable_Empty(t *testing.T) {
	out, _ := capture(t)

	PrintKeyValueTable(nil)
	assert.Equal(t, "没有可显示的参数\n", out.String())
}
