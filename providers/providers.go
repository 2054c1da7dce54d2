// Package providers registers all bundled transports.
// Import this package to make them available via provider.New():
//
//	import _ "github.com/randalmurphal/ratekit/providers"
package providers

import (
	_ "github.com/randalmurphal/ratekit/anthropic"
)
