package engine

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/opd-ai/go-thrusters/pkg/engine"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type worldMetrics struct {
	ticks      metric.Int64Counter
	collisions metric.Int64Counter
	tickDT     metric.Float64Histogram
}

func newWorldMetrics(m metric.Meter) (*worldMetrics, error) {
	var (
		wm  worldMetrics
		err error
	)

	wm.ticks, err = m.Int64Counter(
		"engine.ticks",
		metric.WithDescription("Total simulation ticks"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick counter: %w", err)
	}

	wm.collisions, err = m.Int64Counter(
		"engine.collisions",
		metric.WithDescription("Total ship pairs found overlapping"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating collision counter: %w", err)
	}

	wm.tickDT, err = m.Float64Histogram(
		"engine.tick.dt",
		metric.WithDescription("Time multiplier applied to the focused ship per tick"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick dt histogram: %w", err)
	}

	return &wm, nil
}
