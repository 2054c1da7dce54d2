package anthropic

import "github.com/randalmurphal/ratekit/provider"

func init() {
	provider.Register(Name, func(cfg provider.Config) (provider.Client, error) {
		return New(cfg)
	})
}
