package model

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Labeler func(string) string
	// Order lists property names that should appear first, in this order.
	// Remaining properties follow alphabetically.
	Order []string
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
	}
}
