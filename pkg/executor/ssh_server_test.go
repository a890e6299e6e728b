package executor

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// testSSHServer 进程内 SSH 服务端，按 handler 返回的状态码回复 exit-status
type testSSHServer struct {
	Port int

	// handler 返回 false 表示不回复 exit-status，等待客户端关闭
	handler func(command string, ch ssh.Channel) (uint32, bool)

	mu       sync.Mutex
	commands []string
	signals  chan string
}

func newTestSSHServer(t *testing.T, handler func(command string, ch ssh.Channel) (uint32, bool)) *testSSHServer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	hostKey, err := ssh.NewSignerFromKey(priv)
	require.NoError(t, err)

	config := &ssh.ServerConfig{
		PasswordCallback: func(conn ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
			if conn.User() == "deploy" && string(password) == "secret" {
				return nil, nil
			}
			return nil, fmt.Errorf("认证失败: %s", conn.User())
		},
	}
	config.AddHostKey(hostKey)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	s := &testSSHServer{
		Port:    ln.Addr().(*net.TCPAddr).Port,
		handler: handler,
		signals: make(chan string, 4),
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serve(conn, config)
		}
	}()

	return s
}

func (s *testSSHServer) serve(conn net.Conn, config *ssh.ServerConfig) {
	_, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		conn.Close()
		return
	}
	go ssh.DiscardRequests(reqs)

	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			_ = newCh.Reject(ssh.UnknownChannelType, "unsupported")
			continue
		}
		ch, requests, err := newCh.Accept()
		if err != nil {
			continue
		}
		go s.session(ch, requests)
	}
}

func (s *testSSHServer) session(ch ssh.Channel, requests <-chan *ssh.Request) {
	for req := range requests {
		switch req.Type {
		case "exec":
			var payload struct{ Command string }
			if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
				_ = req.Reply(false, nil)
				continue
			}
			_ = req.Reply(true, nil)

			s.mu.Lock()
			s.commands = append(s.commands, payload.Command)
			s.mu.Unlock()

			go func(command string) {
				status, reply := s.handler(command, ch)
				if !reply {
					return
				}
				_, _ = ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{status}))
				_ = ch.Close()
			}(payload.Command)
		case "signal":
			var payload struct{ Signal string }
			if err := ssh.Unmarshal(req.Payload, &payload); err == nil {
				s.signals <- payload.Signal
			}
		default:
			if req.WantReply {
				_ = req.Reply(false, nil)
			}
		}
	}
}

func (s *testSSHServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *testSSHServer) dial(t *testing.T) *SSHClient {
	t.Helper()
	client, err := NewSSHClient(SSHOptions{Host: "127.0.0.1", Port: s.Port, User: "deploy", Password: "secret"})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}
