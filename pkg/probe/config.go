package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"github.com/hwameistor/check-swraid/pkg/exechelper/sshexecutor"
	"github.com/hwameistor/check-swraid/pkg/mdadm"
)

// Credential is how the probe logs into the remote host, either a
// PasswordCredential or a KeyFileCredential
type Credential interface {
	AuthMethods() ([]ssh.AuthMethod, error)
	// SudoInput is written to each command when sudo is enabled
	SudoInput() []byte
	// Kind names the credential without revealing it
	Kind() string
}

// PasswordCredential logs in with a password
type PasswordCredential struct {
	Password string
}

func (c PasswordCredential) AuthMethods() ([]ssh.AuthMethod, error) {
	return sshexecutor.PasswordAuth(c.Password), nil
}

func (c PasswordCredential) SudoInput() []byte {
	return []byte(c.Password + "\n")
}

func (c PasswordCredential) Kind() string {
	return "password"
}

// KeyFileCredential logs in with a private key file
type KeyFileCredential struct {
	Path string
}

func (c KeyFileCredential) AuthMethods() ([]ssh.AuthMethod, error) {
	return sshexecutor.KeyFileAuth(c.Path)
}

// SudoInput is empty, there is no password to answer a prompt with
func (c KeyFileCredential) SudoInput() []byte {
	return nil
}

func (c KeyFileCredential) Kind() string {
	return "keyfile " + c.Path
}

// NewCredential picks the credential variant. A password wins over a key
// file; nil is returned when neither is set.
func NewCredential(password, keyFile string) Credential {
	switch {
	case password != "":
		return PasswordCredential{Password: password}
	case keyFile != "":
		return KeyFileCredential{Path: keyFile}
	default:
		return nil
	}
}

// Config holds everything needed for one probe run
type Config struct {
	Hostname   string
	Port       int
	Username   string
	Credential Credential
	Sudo       bool
	Timeout    time.Duration
	// Strict reports unrecognized array states as warnings
	Strict   bool
	Commands mdadm.Commands
}

// ConfigError is a configuration problem detected before any remote interaction
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// ConfigErrorf formats a ConfigError
func ConfigErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// Validate checks the configuration in the order the options are documented
func (c Config) Validate() error {
	if c.Hostname == "" {
		return ConfigErrorf("No hostname given.")
	}
	if c.Username == "" {
		return ConfigErrorf("No username given.")
	}
	if c.Credential == nil {
		return ConfigErrorf("please provide either a password or an ssh key.")
	}
	if c.Port < 0 || c.Port > 65535 {
		return ConfigErrorf("invalid port %d.", c.Port)
	}
	if c.Timeout < 0 {
		return ConfigErrorf("invalid timeout %s.", c.Timeout)
	}
	if c.Commands.Status != "" && !strings.Contains(c.Commands.Status, mdadm.ArrayPlaceholder) {
		return ConfigErrorf("status command must contain %s.", mdadm.ArrayPlaceholder)
	}
	return nil
}

// SudoInput returns what is written to every remote command, nil when sudo is off
func (c Config) SudoInput() []byte {
	if !c.Sudo || c.Credential == nil {
		return nil
	}
	return c.Credential.SudoInput()
}

// Connect opens the single ssh connection used for the whole run
func Connect(ctx context.Context, cfg Config) (sshexecutor.SSHExecutor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	auth, err := cfg.Credential.AuthMethods()
	if err != nil {
		return nil, err
	}
	return sshexecutor.New(ctx, sshexecutor.Options{
		Host:    cfg.Hostname,
		Port:    cfg.Port,
		User:    cfg.Username,
		Auth:    auth,
		Timeout: cfg.Timeout,
	})
}

// LogFields describes the configuration for debug logging, without secrets
func (c Config) LogFields() log.Fields {
	fields := log.Fields{
		"hostname": c.Hostname,
		"port":     c.Port,
		"username": c.Username,
		"sudo":     c.Sudo,
		"timeout":  c.Timeout,
		"strict":   c.Strict,
	}
	if c.Credential != nil {
		fields["credential"] = c.Credential.Kind()
	}
	return fields
}
