package activation

import (
	"fmt"
	"reflect"

	"github.com/born-ml/activation/internal/tensor"
)

// toRaw coerces a Scalar-or-Tensor argument into a RawTensor.
//
// Accepted values: *tensor.RawTensor (returned as is), Go numeric scalars
// (0-D tensor), and rectangular numeric slices of any depth.
func toRaw(v any, dtype tensor.DataType, device tensor.Device) (*tensor.RawTensor, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrInvalidInput)
	case *tensor.RawTensor:
		if x == nil {
			return nil, fmt.Errorf("%w: nil tensor", ErrInvalidInput)
		}
		return x, nil
	case float64:
		return tensor.Scalar(x, dtype, device), nil
	case float32:
		return tensor.Scalar(float64(x), dtype, device), nil
	case int:
		return tensor.Scalar(float64(x), dtype, device), nil
	case int32:
		return tensor.Scalar(float64(x), dtype, device), nil
	case int64:
		return tensor.Scalar(float64(x), dtype, device), nil
	case []float64:
		return tensor.FromFloat64(x, tensor.Shape{len(x)}, dtype, device)
	}

	values, shape, err := flatten(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return tensor.FromFloat64(values, shape, dtype, device)
}

// flatten walks a nested slice or array, returning its elements in row-major
// order together with the inferred shape. Ragged input is rejected.
func flatten(v reflect.Value) ([]float64, tensor.Shape, error) {
	if !v.IsValid() {
		return nil, nil, fmt.Errorf("%w: nil element", ErrInvalidInput)
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, nil, fmt.Errorf("%w: unsupported type %s", ErrInvalidInput, v.Type())
	}
	if v.Len() == 0 {
		return nil, nil, fmt.Errorf("%w: empty slice", ErrInvalidInput)
	}

	var (
		values []float64
		inner  tensor.Shape
		leaf   bool
	)
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		for elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}

		if f, ok := numericValue(elem); ok {
			if i > 0 && !leaf {
				return nil, nil, fmt.Errorf("%w: ragged nesting at index %d", ErrInvalidInput, i)
			}
			leaf = true
			values = append(values, f)
			continue
		}
		if leaf {
			return nil, nil, fmt.Errorf("%w: ragged nesting at index %d", ErrInvalidInput, i)
		}

		sub, subShape, err := flatten(elem)
		if err != nil {
			return nil, nil, err
		}
		if i > 0 && !subShape.Equal(inner) {
			return nil, nil, fmt.Errorf("%w: ragged nesting at index %d: %v vs %v", ErrInvalidInput, i, subShape, inner)
		}
		inner = subShape
		values = append(values, sub...)
	}

	return values, append(tensor.Shape{v.Len()}, inner...), nil
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Bool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// convert returns r with dtype, copying the elements when the dtype differs.
func convert(r *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if r.DType() == dtype {
		return r, nil
	}
	return tensor.FromFloat64(r.Float64s(), r.Shape(), dtype, r.Device())
}
