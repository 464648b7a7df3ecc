package model

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Labeler func(string) string
	// EndpointPrefix is joined with category and operation name to form the
	// endpoint, e.g. "/api" yields "/api/user/create".
	EndpointPrefix string
}

func defaultOptions() Options {
	return Options{
		Labeler:        DefaultLabeler,
		EndpointPrefix: "/api",
	}
}
