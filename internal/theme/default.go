package theme

import (
	_ "embed"
	"sync"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultTheme *Theme
	defaultErr   error
	defaultOnce  sync.Once
)

// Default returns the built-in theme whose scales fill the gaps of a
// project theme.
func Default() (*Theme, error) {
	defaultOnce.Do(func() {
		defaultTheme, defaultErr = Parse(defaultYAML, FormatYAML)
	})
	return defaultTheme, defaultErr
}
