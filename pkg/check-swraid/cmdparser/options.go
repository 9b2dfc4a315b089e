package cmdparser

import (
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/hwameistor/check-swraid/pkg/check-swraid/definitions"
	"github.com/hwameistor/check-swraid/pkg/mdadm"
	"github.com/hwameistor/check-swraid/pkg/probe"
)

// Options are the command line options of check-swraid
type Options struct {
	ConfigFile string
	Hostname   string
	Port       int
	Username   string
	Password   string
	KeyFile    string
	Sudo       bool
	Verbose    int
	Timeout    time.Duration
	Strict     bool
	Commands   mdadm.Commands
}

// fileConfig is the layout of the --config YAML file
type fileConfig struct {
	Hostname string        `yaml:"hostname"`
	Port     int           `yaml:"port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	KeyFile  string        `yaml:"keyfile"`
	Sudo     *bool         `yaml:"sudo"`
	Verbose  int           `yaml:"verbose"`
	Timeout  time.Duration `yaml:"timeout"`
	Strict   *bool         `yaml:"strict"`
	Commands struct {
		Discovery string `yaml:"discovery"`
		Status    string `yaml:"status"`
	} `yaml:"commands"`
}

func newOptions() *Options {
	return &Options{
		Port:     definitions.DefaultPort,
		Verbose:  definitions.DefaultVerbose,
		Timeout:  definitions.DefaultTimeout,
		Commands: mdadm.DefaultCommands(),
	}
}

// AddFlags binds the options to flags
func (o *Options) AddFlags(flags *pflag.FlagSet) {
	usage := definitions.FlagUsages
	flags.StringVarP(&o.Hostname, "hostname", "H", o.Hostname, usage["hostname"])
	flags.IntVarP(&o.Port, "port", "P", o.Port, usage["port"])
	flags.StringVarP(&o.Username, "username", "u", o.Username, usage["username"])
	flags.StringVarP(&o.Password, "password", "p", o.Password, usage["password"])
	flags.StringVarP(&o.KeyFile, "keyfile", "k", o.KeyFile, usage["keyfile"])
	flags.BoolVarP(&o.Sudo, "sudo", "s", o.Sudo, usage["sudo"])
	flags.IntVarP(&o.Verbose, "verbose", "v", o.Verbose, usage["verbose"])
	flags.DurationVarP(&o.Timeout, "timeout", "t", o.Timeout, usage["timeout"])
	flags.StringVarP(&o.ConfigFile, "config", "c", o.ConfigFile, usage["config"])
	flags.BoolVar(&o.Strict, "strict", o.Strict, usage["strict"])
}

// Complete fills the options that were not set on the command line from the
// config file. The password environment variable outranks the file.
func (o *Options) Complete(flags *pflag.FlagSet, getenv func(string) string) error {
	if o.ConfigFile != "" {
		fc, err := loadFileConfig(o.ConfigFile)
		if err != nil {
			return err
		}
		o.mergeFileConfig(fc, flags)
	}

	// a key file given on the command line is not overridden by the environment
	if !flags.Changed("password") && !flags.Changed("keyfile") {
		if password := getenv(definitions.EnvPassword); password != "" {
			o.Password = password
		}
	}
	return nil
}

func loadFileConfig(file string) (*fileConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, probe.ConfigErrorf("cannot read config file: %s", err)
	}
	fc := &fileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, probe.ConfigErrorf("invalid config file %s: %s", file, err)
	}
	return fc, nil
}

func (o *Options) mergeFileConfig(fc *fileConfig, flags *pflag.FlagSet) {
	setString := func(name string, dst *string, value string) {
		if !flags.Changed(name) && value != "" {
			*dst = value
		}
	}
	setString("hostname", &o.Hostname, fc.Hostname)
	setString("username", &o.Username, fc.Username)
	setString("password", &o.Password, fc.Password)
	setString("keyfile", &o.KeyFile, fc.KeyFile)

	if !flags.Changed("port") && fc.Port != 0 {
		o.Port = fc.Port
	}
	if !flags.Changed("verbose") && fc.Verbose != 0 {
		o.Verbose = fc.Verbose
	}
	if !flags.Changed("timeout") && fc.Timeout != 0 {
		o.Timeout = fc.Timeout
	}
	if !flags.Changed("sudo") && fc.Sudo != nil {
		o.Sudo = *fc.Sudo
	}
	if !flags.Changed("strict") && fc.Strict != nil {
		o.Strict = *fc.Strict
	}
	if fc.Commands.Discovery != "" {
		o.Commands.Discovery = fc.Commands.Discovery
	}
	if fc.Commands.Status != "" {
		o.Commands.Status = fc.Commands.Status
	}
}

// Validate checks the options that only exist on the command line
func (o *Options) Validate() error {
	if o.Verbose != definitions.VerboseQuiet && o.Verbose != definitions.VerboseDebug {
		return probe.ConfigErrorf("argument -v/--verbose: invalid choice: %d (choose from %d, %d)",
			o.Verbose, definitions.VerboseQuiet, definitions.VerboseDebug)
	}
	return nil
}

// Config builds the probe configuration, selecting the credential once
func (o *Options) Config() (probe.Config, error) {
	cfg := probe.Config{
		Hostname:   o.Hostname,
		Port:       o.Port,
		Username:   o.Username,
		Credential: probe.NewCredential(o.Password, o.KeyFile),
		Sudo:       o.Sudo,
		Timeout:    o.Timeout,
		Strict:     o.Strict,
		Commands:   o.Commands,
	}
	if err := cfg.Validate(); err != nil {
		return probe.Config{}, err
	}
	return cfg, nil
}
