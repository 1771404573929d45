package predicate

type options interface {
	SetFirstResult(firstResult bool)
	SetName(name string)
}

type Option func(options)

// WithFirstResult sets the result returned for the first message of
// a stream, before any previous message exists to compare against.
func WithFirstResult(firstResult bool) Option {
	return func(o options) {
		o.SetFirstResult(firstResult)
	}
}

// WithName sets the name used in the predicate's string representation.
func WithName(name string) Option {
	return func(o options) {
		o.SetName(name)
	}
}
