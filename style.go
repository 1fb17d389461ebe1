package sumonet

import (
	"github.com/pkg/errors"
)

// MarkingStyle selects the jurisdiction marking convention.
type MarkingStyle uint16

const (
	STYLE_EUR = MarkingStyle(iota + 1)
	STYLE_USA
	STYLE_UNDEFINED = MarkingStyle(0)
)

func (iotaIdx MarkingStyle) String() string {
	return [...]string{"undefined", "EUR", "USA"}[iotaIdx]
}

// ParseMarkingStyle resolves a style name ("EUR" or "USA").
func ParseMarkingStyle(s string) (MarkingStyle, error) {
	switch s {
	case "EUR":
		return STYLE_EUR, nil
	case "USA":
		return STYLE_USA, nil
	}
	return STYLE_UNDEFINED, errors.Wrapf(ErrUnsupportedConfiguration, "lane marking style '%s'", s)
}

const (
	// DefaultLaneWidth is assumed when a lane record carries no width.
	DefaultLaneWidth = 3.2

	stripeWidth   = 0.1
	stopLineWidth = 0.5
)

// RenderConfig carries the process-wide drawing settings as an explicit value
// threaded into every derivation call.
type RenderConfig struct {
	Style            MarkingStyle
	StripeWidthScale float64
	StopLines        bool
}

// DefaultRenderConfig returns European markings at scale 1 with stop lines
// enabled.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Style:            STYLE_EUR,
		StripeWidthScale: 1.0,
		StopLines:        true,
	}
}

// Validate rejects unsupported settings before any derivation runs.
func (cfg RenderConfig) Validate() error {
	switch cfg.Style {
	case STYLE_EUR, STYLE_USA:
	default:
		return errors.Wrapf(ErrUnsupportedConfiguration, "lane marking style %d", cfg.Style)
	}
	if cfg.StripeWidthScale <= 0 {
		return errors.Wrapf(ErrUnsupportedConfiguration, "stripe width scale %f", cfg.StripeWidthScale)
	}
	return nil
}

// styleParams are the per-jurisdiction knobs of the marking rule engine. The
// rules themselves are shared between styles.
type styleParams struct {
	centerColor string
	// centerInset pulls the centerline stripe inward by one stripe width
	centerInset bool
}

var markingStyleParams = map[MarkingStyle]styleParams{
	STYLE_EUR: {centerColor: "white", centerInset: false},
	STYLE_USA: {centerColor: "yellow", centerInset: true},
}

// laneColorScheme holds the default fill color per lane type.
var laneColorScheme = map[string]string{
	"junction":     "#660000",
	"pedestrian":   "#808080",
	"bicycle":      "#C0422C",
	"ship":         "#96C8C8",
	"authority":    "#FF0000",
	"none":         "#FFFFFF",
	"no_passenger": "#5C5C5C",
	"crosswalk":    "#00000000",
	"other":        "#000000",
}
