package i18n

// Option configures a single lookup.
type Option func(*options)

type options struct {
	notFoundError bool
}

// WithNotFoundError makes a failed lookup return a *NotFoundError instead of
// falling back to the object's default value.
func WithNotFoundError() Option {
	return func(o *options) {
		o.notFoundError = true
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
