package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/min-rx/rx/core"
)

// InstrumentOption configures Instrument.
type InstrumentOption func(*instrumentConfig)

type instrumentConfig struct {
	attrs []attribute.KeyValue
}

// WithAttributes adds attributes to every measurement.
func WithAttributes(attrs ...attribute.KeyValue) InstrumentOption {
	return func(c *instrumentConfig) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// Instruments are the OpenTelemetry instruments recorded by Instrument.
type Instruments struct {
	Values      metric.Int64Counter
	Errors      metric.Int64Counter
	Completions metric.Int64Counter
	Active      metric.Int64UpDownCounter
}

// NewInstruments creates the instruments for a stream called name:
// name.values, name.errors, name.completions and name.active.
func NewInstruments(meter metric.Meter, name string) (*Instruments, error) {
	values, err := meter.Int64Counter(name+".values", metric.WithDescription("values delivered"))
	if err != nil {
		return nil, err
	}
	errs, err := meter.Int64Counter(name+".errors", metric.WithDescription("terminal errors delivered"))
	if err != nil {
		return nil, err
	}
	completions, err := meter.Int64Counter(name+".completions", metric.WithDescription("completions delivered"))
	if err != nil {
		return nil, err
	}
	active, err := meter.Int64UpDownCounter(name+".active", metric.WithDescription("open subscriptions"))
	if err != nil {
		return nil, err
	}
	return &Instruments{
		Values:      values,
		Errors:      errs,
		Completions: completions,
		Active:      active,
	}, nil
}

// Instrument creates an Operator that records stream events with
// OpenTelemetry instruments created from meter.
func Instrument[T any](meter metric.Meter, name string, opts ...InstrumentOption) (core.Operator[T, T], error) {
	instruments, err := NewInstruments(meter, name)
	if err != nil {
		return nil, err
	}
	return InstrumentWith[T](instruments, opts...), nil
}

// InstrumentWith creates an Operator that records stream events with
// existing instruments, so several streams can share them.
func InstrumentWith[T any](instruments *Instruments, opts ...InstrumentOption) core.Operator[T, T] {
	var cfg instrumentConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	set := metric.WithAttributeSet(attribute.NewSet(cfg.attrs...))

	return core.OperatorFunc[T, T](func(src core.Observable[T]) core.Observable[T] {
		return instrumented[T]{source: src, instruments: instruments, attrs: set}
	})
}

type instrumented[T any] struct {
	source      core.Observable[T]
	instruments *Instruments
	attrs       metric.MeasurementOption
}

func (o instrumented[T]) Mode() core.Mode {
	return o.source.Mode()
}

func (o instrumented[T]) Subscribe(ctx context.Context, down core.Observer[T]) core.Subscription {
	// Measurements outlive the subscription context.
	mctx := context.WithoutCancel(ctx)
	o.instruments.Active.Add(mctx, 1, o.attrs)

	sub := core.NewComposite()
	sub.Add(func() { o.instruments.Active.Add(mctx, -1, o.attrs) })

	counted := &spyObserver[T]{
		down:       core.Guard(o.source.Mode(), down, sub),
		onNext:     func(T) { o.instruments.Values.Add(mctx, 1, o.attrs) },
		onError:    func(error) { o.instruments.Errors.Add(mctx, 1, o.attrs) },
		onComplete: func() { o.instruments.Completions.Add(mctx, 1, o.attrs) },
	}

	sub.AddSubscription(o.source.Subscribe(ctx, counted))
	return sub
}
