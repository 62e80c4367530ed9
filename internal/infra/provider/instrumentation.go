package provider

import "go.opentelemetry.io/otel"

const scopeName = "intellialert/internal/infra/provider"

var tracer = otel.Tracer(scopeName)
