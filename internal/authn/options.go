package authn

const (
	LoginPath = "/login"

	// SelectedOfferCookie remembers the offer chosen by an anonymous visitor
	// until they log in.
	SelectedOfferCookie = "selected_offer_id"
)

type Options struct {
	SessionName        string
	PostLoginRedirect  string
	PostLogoutRedirect string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		SessionName:        "billeterie_auth",
		PostLoginRedirect:  "/my/orders",
		PostLogoutRedirect: "/",
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithSessionName(sessionName string) OptionFunc {
	return func(opts *Options) {
		opts.SessionName = sessionName
	}
}

func WithPostLoginRedirect(path string) OptionFunc {
	return func(opts *Options) {
		opts.PostLoginRedirect = path
	}
}

func WithPostLogoutRedirect(path string) OptionFunc {
	return func(opts *Options) {
		opts.PostLogoutRedirect = path
	}
}
