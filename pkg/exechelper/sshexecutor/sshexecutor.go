package sshexecutor

import (
	"bytes"
	"context"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"github.com/hwameistor/check-swraid/pkg/exechelper"
)

// DefaultPort is the ssh port used when Options.Port is not set
const DefaultPort = 22

// Options describes how to reach and log into the remote host
type Options struct {
	Host string
	Port int
	User string
	Auth []ssh.AuthMethod
	// Timeout bounds the dial, the handshake and every command.
	// Zero means no timeout.
	Timeout time.Duration
}

// Address returns host:port
func (o Options) Address() string {
	port := o.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(o.Host, strconv.Itoa(port))
}

// sshExecutor runs every command in a new session of one ssh connection
type sshExecutor struct {
	client  *ssh.Client
	address string
	timeout time.Duration
}

// SSHExecutor is an exechelper.Executor that must be closed after use
type SSHExecutor interface {
	exechelper.Executor
	io.Closer
}

// New dials the remote host and authenticates. Host keys are not verified:
// any key the server presents is accepted.
func New(ctx context.Context, opts Options) (SSHExecutor, error) {
	address := opts.Address()
	config := &ssh.ClientConfig{
		User:            opts.User,
		Auth:            opts.Auth,
		HostKeyCallback: trustAnyHostKey,
		Timeout:         opts.Timeout,
	}

	logCtx := log.WithFields(log.Fields{"address": address, "user": opts.User})
	logCtx.Debug("Initializing ssh connection")

	dialer := net.Dialer{Timeout: opts.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", address)
	}
	if opts.Timeout > 0 {
		if err = conn.SetDeadline(time.Now().Add(opts.Timeout)); err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "failed to connect to %s", address)
		}
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "failed to connect to %s", address)
	}
	// the deadline only guards the handshake, commands have their own timeout
	if err = conn.SetDeadline(time.Time{}); err != nil {
		clientConn.Close()
		return nil, errors.Wrapf(err, "failed to connect to %s", address)
	}

	logCtx.Debug("Connected")
	return &sshExecutor{
		client:  ssh.NewClient(clientConn, chans, reqs),
		address: address,
		timeout: opts.Timeout,
	}, nil
}

func trustAnyHostKey(hostname string, remote net.Addr, key ssh.PublicKey) error {
	log.WithFields(log.Fields{
		"host":        hostname,
		"type":        key.Type(),
		"fingerprint": ssh.FingerprintSHA256(key),
	}).Debug("Ignoring missing host key")
	return nil
}

func (e *sshExecutor) RunCommand(ctx context.Context, params exechelper.ExecParams) exechelper.ExecResult {
	result := exechelper.ExecResult{
		OutBuf:   &bytes.Buffer{},
		ErrBuf:   &bytes.Buffer{},
		ExitCode: exechelper.ExitCodeNoStatus,
	}
	command := params.CommandLine()
	logCtx := log.WithFields(log.Fields{"address": e.address, "command": command})

	timeout := params.Timeout
	if timeout == 0 {
		timeout = e.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	session, err := e.client.NewSession()
	if err != nil {
		result.Error = errors.Wrapf(err, "failed to open session on %s", e.address)
		return result
	}
	defer session.Close()

	session.Stdout = result.OutBuf
	session.Stderr = result.ErrBuf

	var stdin io.WriteCloser
	if len(params.Stdin) > 0 {
		if stdin, err = session.StdinPipe(); err != nil {
			result.Error = errors.Wrap(err, "failed to attach to command input")
			return result
		}
	}

	logCtx.Debug("Executing command")
	if err = session.Start(command); err != nil {
		result.Error = errors.Wrapf(err, "failed to start %q", command)
		return result
	}

	if stdin != nil {
		logCtx.Debug("Writing to command input")
		if _, err = stdin.Write(params.Stdin); err != nil {
			logCtx.WithError(err).Debug("Command did not accept input")
		}
		stdin.Close()
	}

	done := make(chan error, 1)
	go func() {
		done <- session.Wait()
	}()

	select {
	case <-ctx.Done():
		session.Close()
		result.Error = errors.Wrapf(ctx.Err(), "command %q did not finish", command)
		return result
	case err = <-done:
	}

	switch exitErr := err.(type) {
	case nil:
		result.ExitCode = 0
	case *ssh.ExitError:
		result.ExitCode = exitErr.ExitStatus()
		result.Error = exitErr
	default:
		result.Error = errors.Wrapf(err, "command %q failed", command)
	}

	logCtx.WithFields(log.Fields{
		"exitcode": result.ExitCode,
		"stdout":   result.OutBuf.String(),
		"stderr":   result.ErrBuf.String(),
	}).Debug("Received")
	return result
}

// Close releases the connection
func (e *sshExecutor) Close() error {
	if e == nil || e.client == nil {
		return nil
	}
	log.WithField("address", e.address).Debug("Closing ssh connection")
	return e.client.Close()
}
