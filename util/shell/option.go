package shell

import "os"

type Option func(*Options)

type Options struct {
	Cmd   string
	Env   []string
	Args  []string
	Stdin []byte
}

func NewOptions(opts ...Option) Options {
	o := Options{
		Env: os.Environ(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func Command(c string) Option {
	return func(o *Options) {
		o.Cmd = c
	}
}

func Env(e ...string) Option {
	return func(o *Options) {
		o.Env = append(o.Env, e...)
	}
}

func Args(a ...string) Option {
	return func(o *Options) {
		o.Args = a
	}
}

func Stdin(s []byte) Option {
	return func(o *Options) {
		o.Stdin = s
	}
}
