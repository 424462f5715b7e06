package testlog

import (
	"testing"

	"github.com/go-olink/olink"
	"github.com/go-olink/olink/internal/logging"
)

// Start configures the package-wide test logger and returns an
// olink.LogFunc pre-bound to t.Name(), ready to hand to SetLogger on
// any node under test.
func Start(t *testing.T) olink.LogFunc {
	t.Helper()
	zl := logging.ConfigureTests()
	base := logging.NodeLogger(zl)
	return func(level olink.Level, message string) {
		base(level, t.Name()+": "+message)
	}
}
