package bomcodec

import (
	"github.com/anchore/bomcodec/bomcodec/schema"
)

type options struct {
	convention schema.Convention
	prefix     string
	pretty     bool
}

// Option configures an Encode or Decode call.
type Option func(*options)

// WithEnumConvention selects the enumeration strings written when encoding. When decoding with the legacy
// convention the legacy strings are accepted in addition to the current ones.
func WithEnumConvention(c schema.Convention) Option {
	return func(o *options) {
		o.convention = c
	}
}

// WithNamespacePrefix binds the XML namespace to the given prefix instead of declaring it as the default
// namespace. It has no effect on JSON.
func WithNamespacePrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithPretty indents the encoded output.
func WithPretty(pretty bool) Option {
	return func(o *options) {
		o.pretty = pretty
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
