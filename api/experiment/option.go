package experiment

import (
	"os"

	"nemo/internal/common"
)

type Option func(*options)

type options struct {
	workDir     string
	configFiles []string
	envFile     string
	composeFile string
	lockFile    string
	manifest    string
	delay       int
	force       bool
	include     []string
	exclude     []string
}

func newOptions(opts ...Option) options {
	o := options{
		composeFile: common.DefaultComposeFile,
		lockFile:    common.DefaultLockFile,
		manifest:    common.DefaultManifest,
		delay:       common.DefaultScenarioDelay,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.workDir == "" {
		o.workDir, _ = os.Getwd()
	}

	return o
}

func WithWorkDir(d string) Option {
	return func(o *options) {
		o.workDir = d
	}
}

func WithConfigFiles(f ...string) Option {
	return func(o *options) {
		o.configFiles = f
	}
}

// WithEnvFile sets the optional environment-override file passed to the
// privileged host scripts.
func WithEnvFile(f string) Option {
	return func(o *options) {
		o.envFile = f
	}
}

func WithComposeFile(f string) Option {
	return func(o *options) {
		o.composeFile = f
	}
}

func WithLockFile(f string) Option {
	return func(o *options) {
		o.lockFile = f
	}
}

func WithManifest(f string) Option {
	return func(o *options) {
		o.manifest = f
	}
}

// WithScenarioDelay sets how many seconds in the future the synchronized
// start instant is placed.
func WithScenarioDelay(d int) Option {
	return func(o *options) {
		o.delay = d
	}
}

func WithForce(f bool) Option {
	return func(o *options) {
		o.force = f
	}
}

func WithIncludeFilters(f ...string) Option {
	return func(o *options) {
		o.include = f
	}
}

func WithExcludeFilters(f ...string) Option {
	return func(o *options) {
		o.exclude = f
	}
}
