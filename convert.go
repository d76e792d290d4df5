package qkernel

import (
	"math"
	"reflect"
	"time"
)

/*
Normalize converts a parameter or result value into plain JSON-ready data:
numbers become float64, complex numbers become [re, im] pairs, and numeric
arrays, matrices and kernel types become nested sequences. It is the single
place where kernel types meet the serialization boundary.
*/
func Normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool, string:
		return x, nil
	case float64:
		return finiteNumber(x)
	case float32:
		return finiteNumber(float64(x))
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case complex128:
		return complexPair(x)
	case complex64:
		return complexPair(complex128(x))
	case []byte:
		return nil, newError("normalize", ErrDomain, "binary values are not serializable")
	case time.Time:
		return x.UTC().Format(time.RFC3339), nil
	case Qubit:
		return Normalize([]complex128{x.Alpha, x.Beta})
	case TwoQubit:
		return Normalize(x[:])
	case BlochVector:
		return Normalize([]float64{x.X, x.Y, x.Z})
	case Matrix:
		return Normalize([][]complex128{x[0][:], x[1][:]})
	case DensityMatrix:
		return Normalize(x.Matrix)
	case Gate:
		return x.String(), nil
	case Trace:
		out := make([]any, len(x))
		for i, p := range x {
			value, err := finiteNumber(p.Value)
			if err != nil {
				return nil, err
			}
			out[i] = map[string]any{"iteration": float64(p.Iteration), "value": value}
		}
		return out, nil
	case Graph:
		edges := make([]any, len(x.Edges))
		for i, e := range x.Edges {
			edges[i] = []any{float64(e.U), float64(e.V)}
		}
		return map[string]any{"nodes": float64(x.Nodes), "edges": edges}, nil
	case Values:
		return normalizeMap(reflect.ValueOf(map[string]any(x)))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			item, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case reflect.Map:
		return normalizeMap(rv)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return finiteNumber(rv.Float())
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	}

	return nil, newError("normalize", ErrDomain, "unsupported value of type %T", v)
}

func normalizeMap(rv reflect.Value) (any, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, newError("normalize", ErrDomain, "map keys must be strings, got %s", rv.Type().Key())
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		item, err := Normalize(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[iter.Key().String()] = item
	}
	return out, nil
}

func finiteNumber(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, newError("normalize", ErrNumeric, "non-finite number %v", f)
	}
	return f, nil
}

func complexPair(z complex128) (any, error) {
	re, err := finiteNumber(real(z))
	if err != nil {
		return nil, err
	}
	im, err := finiteNumber(imag(z))
	if err != nil {
		return nil, err
	}
	return []any{re, im}, nil
}

// clonePlain deep-copies normalized data. Leaves are immutable scalars.
func clonePlain(v any) any {
	switch x := v.(type) {
	case Values:
		return clonePlain(map[string]any(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = clonePlain(item)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = clonePlain(item)
		}
		return out
	}
	return v
}
