package activation

import (
	"fmt"

	"github.com/born-ml/activation/internal/tensor"
)

// Params carries the arguments an activation takes besides its input.
// Fields an activation does not use are ignored.
type Params struct {
	Eps   *float64          // Logit clamp, nil for none
	Slope any               // PReLU slope, required for TypePReLU
	Out   *tensor.RawTensor // optional output buffer
}

// Apply runs the activation typ on x.
func (d *Dispatcher) Apply(typ Type, x any, p Params) (*tensor.RawTensor, error) {
	switch typ {
	case TypeLogit:
		var opts []LogitOption
		if p.Eps != nil {
			opts = append(opts, WithEps(*p.Eps))
		}
		if p.Out != nil {
			opts = append(opts, WithOut(p.Out))
		}
		return d.Logit(x, opts...)
	case TypePReLU:
		if p.Slope == nil {
			return nil, fmt.Errorf("%w: prelu requires a slope", ErrInvalidInput)
		}
		var opts []PReLUOption
		if p.Out != nil {
			opts = append(opts, WithOut(p.Out))
		}
		return d.PReLU(x, p.Slope, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown activation %s", ErrInvalidInput, typ)
	}
}
