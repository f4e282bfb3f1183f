package speechsynthesizer

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

const scopeName = "github.com/skaggar/avs-device-sdk/core"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)

var (
	directivesHandledCounter, _ = meter.Int64Counter("speechsynthesizer.directives.handled")
	playbackErrorCounter, _     = meter.Int64Counter("speechsynthesizer.playback.errors")
	eventsSentCounter, _        = meter.Int64Counter("speechsynthesizer.events.sent")
)
