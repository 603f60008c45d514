// Package observability provides OpenTelemetry metrics for pipelines and
// registries.
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	p := pipeline.New[int](pipeline.WithMetrics(metrics))
//
// A nil *Metrics is valid and records nothing.
package observability
