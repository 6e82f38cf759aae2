package kafka

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("pkg/kafka")
