package profanity

import (
	"github.com/google/wire"

	"profanity/internal/config"
	"profanity/internal/registry"
)

// ProviderSet is this package's wire provider set, following the
// teacher's internal/data.ProviderSet convention: a host application
// embeds this library and assembles a Detector through wire alongside
// its own providers, rather than this repository owning a cmd/ binary
// of its own.
var ProviderSet = wire.NewSet(
	config.Load,
	provideConfigPointer,
	NewWithPackTable,
)

// provideConfigPointer adapts config.Load's by-value return to the
// pointer NewWithPackTable expects, the way the teacher's own providers
// bridge conf.Bootstrap substructs into their consuming constructors.
func provideConfigPointer(cfg Config) *Config {
	return &cfg
}

// NoPackTable is the zero-value registry.PackTable a host can bind into
// ProviderSet when it has no external word-list source to supply
// (every language then starts empty until AddWord populates it).
type NoPackTable struct{}

func (NoPackTable) Words(string) []string { return nil }
func (NoPackTable) AllCodes() []string    { return nil }

var _ registry.PackTable = NoPackTable{}
