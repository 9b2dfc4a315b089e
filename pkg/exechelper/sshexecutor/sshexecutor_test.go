package sshexecutor

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/hwameistor/check-swraid/pkg/exechelper"
	"github.com/hwameistor/check-swraid/pkg/exechelper/sshexecutor/sshtest"
)

const (
	testUser     = "nagios"
	testPassword = "s3cret"
	scanCommand  = "sudo mdadm --detail --scan | grep ARRAY | awk '{print $2}'"
)

func newServer(t *testing.T, keys ...ssh.PublicKey) *sshtest.Server {
	server, err := sshtest.NewServer(testUser, testPassword, keys...)
	require.NoError(t, err)
	t.Cleanup(server.Close)
	return server
}

func passwordOptions(server *sshtest.Server) Options {
	return Options{
		Host:    server.Host,
		Port:    server.Port,
		User:    testUser,
		Auth:    PasswordAuth(testPassword),
		Timeout: 5 * time.Second,
	}
}

func TestRunCommandWithPassword(t *testing.T) {
	server := newServer(t)
	server.Handle(scanCommand, sshtest.Response{Stdout: "/dev/md0\n/dev/md1\n"})

	executor, err := New(context.Background(), passwordOptions(server))
	require.NoError(t, err)
	defer executor.Close()

	res := executor.RunCommand(context.Background(), exechelper.ExecParams{CmdName: scanCommand})
	assert.NoError(t, res.Error)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, []string{"/dev/md0", "/dev/md1"}, res.Lines())
	assert.Empty(t, server.Stdin(scanCommand))
}

func TestRunCommandReusesConnection(t *testing.T) {
	server := newServer(t)
	server.Handle(scanCommand, sshtest.Response{Stdout: "/dev/md0\n"})
	server.Handle("status /dev/md0", sshtest.Response{Stdout: "clean\n"})

	executor, err := New(context.Background(), passwordOptions(server))
	require.NoError(t, err)
	defer executor.Close()

	for _, cmd := range []string{scanCommand, "status /dev/md0"} {
		res := executor.RunCommand(context.Background(), exechelper.ExecParams{CmdName: cmd})
		require.NoError(t, res.Error)
	}
	assert.Equal(t, 1, server.Connections())
	assert.Equal(t, []string{scanCommand, "status /dev/md0"}, server.Commands())
}

func TestRunCommandWritesStdin(t *testing.T) {
	server := newServer(t)
	server.Handle(scanCommand, sshtest.Response{Stdout: "/dev/md0\n"})

	executor, err := New(context.Background(), passwordOptions(server))
	require.NoError(t, err)
	defer executor.Close()

	res := executor.RunCommand(context.Background(), exechelper.ExecParams{
		CmdName: scanCommand,
		Stdin:   []byte(testPassword + "\n"),
	})
	require.NoError(t, res.Error)
	assert.Equal(t, testPassword+"\n", string(server.Stdin(scanCommand)))
}

func TestRunCommandExitStatus(t *testing.T) {
	server := newServer(t)
	server.Handle("false", sshtest.Response{Stderr: "boom\n", ExitStatus: 3})

	executor, err := New(context.Background(), passwordOptions(server))
	require.NoError(t, err)
	defer executor.Close()

	res := executor.RunCommand(context.Background(), exechelper.ExecParams{CmdName: "false"})
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "boom\n", res.ErrBuf.String())
	var exitErr *ssh.ExitError
	assert.ErrorAs(t, res.Error, &exitErr)

	res = executor.RunCommand(context.Background(), exechelper.ExecParams{CmdName: "unknown"})
	assert.Equal(t, 127, res.ExitCode)
}

func TestRunCommandTimeout(t *testing.T) {
	server := newServer(t)
	server.Handle("sleep", sshtest.Response{Hang: true})

	executor, err := New(context.Background(), passwordOptions(server))
	require.NoError(t, err)
	defer executor.Close()

	start := time.Now()
	res := executor.RunCommand(context.Background(), exechelper.ExecParams{CmdName: "sleep", Timeout: 200 * time.Millisecond})
	assert.Error(t, res.Error)
	assert.ErrorIs(t, res.Error, context.DeadlineExceeded)
	assert.Equal(t, exechelper.ExitCodeNoStatus, res.ExitCode)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewRejectsWrongPassword(t *testing.T) {
	server := newServer(t)
	opts := passwordOptions(server)
	opts.Auth = PasswordAuth("wrong")

	executor, err := New(context.Background(), opts)
	assert.Nil(t, executor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to "+opts.Address())
}

func TestNewConnectionRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().(*net.TCPAddr)
	listener.Close()

	_, err = New(context.Background(), Options{Host: "127.0.0.1", Port: addr.Port, User: testUser, Auth: PasswordAuth(testPassword), Timeout: time.Second})
	assert.Error(t, err)
}

func TestKeyFileAuth(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	keyFile := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0600))

	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)
	server := newServer(t, sshPub)
	server.Handle(scanCommand, sshtest.Response{Stdout: "/dev/md0\n"})

	auth, err := KeyFileAuth(keyFile)
	require.NoError(t, err)

	opts := passwordOptions(server)
	opts.Auth = auth
	executor, err := New(context.Background(), opts)
	require.NoError(t, err)
	defer executor.Close()

	res := executor.RunCommand(context.Background(), exechelper.ExecParams{CmdName: scanCommand})
	require.NoError(t, res.Error)
	assert.Equal(t, []string{"/dev/md0"}, res.Lines())
}

func TestKeyFileAuthErrors(t *testing.T) {
	_, err := KeyFileAuth(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(garbage, []byte("not a key"), 0600))
	_, err = KeyFileAuth(garbage)
	assert.Error(t, err)
}

func TestCloseNil(t *testing.T) {
	var e *sshExecutor
	assert.NoError(t, e.Close())
}

func TestOptionsAddress(t *testing.T) {
	assert.Equal(t, "raid01:22", Options{Host: "raid01"}.Address())
	assert.Equal(t, "[::1]:2222", Options{Host: "::1", Port: 2222}.Address())
}
