package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hwameistor/check-swraid/pkg/mdadm"
)

func validConfig() Config {
	return Config{
		Hostname:   "raid01",
		Port:       22,
		Username:   "nagios",
		Credential: PasswordCredential{Password: "s3cret"},
		Timeout:    30 * time.Second,
		Commands:   mdadm.DefaultCommands(),
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "no hostname", modify: func(c *Config) { c.Hostname = "" }, want: "No hostname given."},
		{name: "no username", modify: func(c *Config) { c.Username = "" }, want: "No username given."},
		{name: "no credential", modify: func(c *Config) { c.Credential = nil }, want: "please provide either a password or an ssh key."},
		{name: "hostname checked first", modify: func(c *Config) { c.Hostname, c.Username, c.Credential = "", "", nil }, want: "No hostname given."},
		{name: "bad port", modify: func(c *Config) { c.Port = 70000 }, want: "invalid port 70000."},
		{name: "bad timeout", modify: func(c *Config) { c.Timeout = -time.Second }, want: "invalid timeout -1s."},
		{name: "status without placeholder", modify: func(c *Config) { c.Commands.Status = "mdadm --detail" }, want: "status command must contain {array}."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestNewCredential(t *testing.T) {
	assert.Equal(t, PasswordCredential{Password: "pw"}, NewCredential("pw", ""))
	assert.Equal(t, KeyFileCredential{Path: "/root/.ssh/id_rsa"}, NewCredential("", "/root/.ssh/id_rsa"))
	assert.Equal(t, PasswordCredential{Password: "pw"}, NewCredential("pw", "/root/.ssh/id_rsa"))
	assert.Nil(t, NewCredential("", ""))
}

func TestConfigSudoInput(t *testing.T) {
	cfg := validConfig()
	assert.Nil(t, cfg.SudoInput())

	cfg.Sudo = true
	assert.Equal(t, []byte("s3cret\n"), cfg.SudoInput())

	cfg.Credential = KeyFileCredential{Path: "/root/.ssh/id_rsa"}
	assert.Nil(t, cfg.SudoInput())
}

func TestConfigLogFieldsHideSecrets(t *testing.T) {
	fields := validConfig().LogFields()
	assert.Equal(t, "password", fields["credential"])
	for _, v := range fields {
		assert.NotEqual(t, "s3cret", v)
	}
}

func TestConnectRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Credential = nil
	executor, err := Connect(context.Background(), cfg)
	assert.Nil(t, executor)
	assert.EqualError(t, err, "please provide either a password or an ssh key.")
}

func TestConnectMissingKeyFile(t *testing.T) {
	cfg := validConfig()
	cfg.Credential = KeyFileCredential{Path: t.TempDir() + "/missing"}
	_, err := Connect(context.Background(), cfg)
	assert.Error(t, err)
}
