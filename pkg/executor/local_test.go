package executor

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("需要 POSIX sh")
	}
}

func TestLocalExecutor_ExitCodes(t *testing.T) {
	skipWithoutShell(t)

	e := NewLocalExecutor()
	defer e.Close()

	tests := map[string]int{
		"exit 0":        0,
		"exit 1":        1,
		"exit 127":      127,
		"exit 42":       42,
		"kill -TERM $$": 143,
	}
	for script, want := range tests {
		got, err := e.Run(context.Background(), []string{"sh", "-c", script}, Streams{})
		require.NoError(t, err, script)
		assert.Equal(t, want, got, script)
	}
}

func TestLocalExecutor_Passthrough(t *testing.T) {
	skipWithoutShell(t)

	var stdout, stderr bytes.Buffer
	code, err := NewLocalExecutor().Run(context.Background(),
		[]string{"sh", "-c", `read line; echo "out:$line"; echo err >&2`},
		Streams{Stdin: strings.NewReader("hello\n"), Stdout: &stdout, Stderr: &stderr})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "out:hello\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestLocalExecutor_NotFound(t *testing.T) {
	code, err := NewLocalExecutor().Run(context.Background(),
		[]string{"run-deployer-no-such-binary"}, Streams{})

	require.Error(t, err)
	assert.Equal(t, ExitCodeNotFound, code)
}

func TestLocalExecutor_EmptyCommand(t *testing.T) {
	_, err := NewLocalExecutor().Run(context.Background(), nil, Streams{})
	assert.Error(t, err)
}

func TestLocalExecutor_CancelSendsSIGTERM(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(300*time.Millisecond, cancel)

	start := time.Now()
	code, err := NewLocalExecutor().Run(ctx,
		[]string{"sh", "-c", `trap "exit 143" TERM; sleep 5 & wait`}, Streams{})

	require.NoError(t, err)
	assert.Equal(t, 143, code)
	assert.Less(t, time.Since(start), 4*time.Second)
}
