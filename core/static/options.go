package static

import "time"

type options struct {
	baseDir string
	headers map[string]string
	maxAge  time.Duration
	cache   bool
	weak    bool

	attachment bool
	filename   string
}

// Option configures file serving.
type Option func(*options)

// WithBaseDir resolves paths against dir. Defaults to the working directory.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

// WithHeaders adds extra response headers.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithMaxAge sets "Cache-Control: public, max-age=<seconds>".
func WithMaxAge(d time.Duration) Option {
	return func(o *options) {
		o.maxAge = d
		o.cache = true
	}
}

// WithWeakETag marks the ETag as weak.
func WithWeakETag() Option {
	return func(o *options) {
		o.weak = true
	}
}

// WithAttachment asks the client to download the file as filename. An empty
// filename uses the base name of the served file.
func WithAttachment(filename string) Option {
	return func(o *options) {
		o.attachment = true
		o.filename = filename
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Config provides environment-based defaults for file serving.
type Config struct {
	BaseDir string        `env:"STATIC_BASE_DIR" envDefault:"."`
	MaxAge  time.Duration `env:"STATIC_MAX_AGE" envDefault:"0s"`
}

// Options converts the config into serving options.
func (c Config) Options() []Option {
	opts := []Option{WithBaseDir(c.BaseDir)}
	if c.MaxAge > 0 {
		opts = append(opts, WithMaxAge(c.MaxAge))
	}
	return opts
}
