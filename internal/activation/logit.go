package activation

import (
	"github.com/born-ml/activation/internal/tensor"
)

// LogitOption configures a Logit call.
type LogitOption interface {
	applyLogit(*logitConfig)
}

type logitConfig struct {
	eps *float64
	out *tensor.RawTensor
}

type epsOption float64

func (e epsOption) applyLogit(c *logitConfig) {
	v := float64(e)
	c.eps = &v
}

// WithEps clamps the input to [eps, 1-eps] before the logit is taken.
// eps is expected in (0, 1); other values are passed through unchecked.
func WithEps(eps float64) LogitOption {
	return epsOption(eps)
}

// Logit computes log(x / (1 - x)) elementwise.
//
// x may be a tensor, a Go scalar or a numeric slice. Without WithEps the
// result is NaN where x < 0 or x > 1, -Inf at 0 and +Inf at 1. Integer input
// is promoted to the dispatcher's float dtype.
//
// Example:
//
//	d := activation.New(cpu.New())
//	z, _ := d.Logit([]float64{1, 0, 0.9})             // [+Inf -Inf 2.1972244]
//	z, _ = d.Logit([]float64{1, 2, -0.9}, activation.WithEps(0.2)) // [1.3862944 1.3862944 -1.3862944]
func (d *Dispatcher) Logit(x any, opts ...LogitOption) (*tensor.RawTensor, error) {
	var cfg logitConfig
	for _, opt := range opts {
		opt.applyLogit(&cfg)
	}

	xt, err := toRaw(x, d.floatDType(), d.backend.Device())
	if err != nil {
		return nil, err
	}
	if !xt.DType().IsFloat() {
		if xt, err = convert(xt, d.floatDType()); err != nil {
			return nil, err
		}
	}

	if err := checkOut("logit", cfg.out, xt.Shape(), xt.DType()); err != nil {
		return nil, err
	}

	result, err := handleExceptions("logit", d.backend.Name(), func() *tensor.RawTensor {
		return d.backend.Logit(xt, cfg.eps, cfg.out)
	})
	if err != nil {
		return nil, err
	}
	return handleOut(cfg.out, result)
}
