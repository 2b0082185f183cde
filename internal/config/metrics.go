package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `env:"METRICS_ENABLED"`
	Port         string `env:"METRICS_PORT"`
	OtlpEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME"`
	OtlpInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// TracingConfig controls span export. Tracing is off unless enabled with an endpoint.
type TracingConfig struct {
	Enabled     bool   `env:"TRACING_ENABLED"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME"`
}

func defaultMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      true,
		Port:         defaultMetricsPort,
		ServiceName:  defaultServiceName,
		OtlpInsecure: true,
	}
}
