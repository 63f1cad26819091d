package shartnoma

import (
	"github.com/Umidjon1990/Shartnoma/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Strategy = api.Strategy
type Fields = api.Fields

func New() *Generator         { return api.New() }
func DefaultOptions() Options { return api.DefaultOptions() }

func NewWithOptions(options Options, opts ...Option) *Generator {
	return api.NewWithOptions(options, opts...)
}

func Filename(number, studentName string) string { return api.Filename(number, studentName) }

var (
	WithStrategy        = api.WithStrategy
	WithBaseURL         = api.WithBaseURL
	WithChromeExecPath  = api.WithChromeExecPath
	WithNavigateTimeout = api.WithNavigateTimeout
	WithReadyTimeout    = api.WithReadyTimeout
	WithSettleDelay     = api.WithSettleDelay
	WithTemplate        = api.WithTemplate
	WithCapture         = api.WithCapture
)

const (
	StrategyBrowser = api.StrategyBrowser
	StrategySlicer  = api.StrategySlicer
)
