package argbind

// OptionsProvider supplies the options object a parse maps values onto.
type OptionsProvider[O any] interface {
	Options() (*O, error)
}

// ProviderOf adapts a function to OptionsProvider.
type ProviderOf[O any] func() (*O, error)

// Options calls f.
func (f ProviderOf[O]) Options() (*O, error) { return f() }

// Instance always provides opts. Every parse writes into the same object.
func Instance[O any](opts *O) OptionsProvider[O] {
	return ProviderOf[O](func() (*O, error) { return opts, nil })
}

// Factory provides a new object from fn for every parse, e.g. one with
// defaults already filled in.
func Factory[O any](fn func() *O) OptionsProvider[O] {
	return ProviderOf[O](func() (*O, error) { return fn(), nil })
}
