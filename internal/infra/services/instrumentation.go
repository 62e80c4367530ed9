package services

import "go.opentelemetry.io/otel"

const scopeName = "intellialert/internal/infra/services"

var tracer = otel.Tracer(scopeName)
