package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartSpinner_Success(t *testing.T) {
	_, errOut := capture(t)

	done := StartSpinner("连接远程构建机 deploy@10.0.0.5:22 (100%)")
	done(true)

	assert.Equal(t, "✓ 连接远程构建机 deploy@10.0.0.5:22 (100%)\n", errOut.String())
}

func TestStartSpinner_FailureLeavesReportingToCaller(t *testing.T) {
	out, errOut := capture(t)

	done := StartSpinner("连接远程构建机 builder")
	done(false)

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}
