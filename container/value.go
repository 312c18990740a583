package container

// Kind discriminates the payload carried by a Value.
type Kind int

const (
	KindString      Kind = iota // scalar UTF-8 string
	KindInt                     // scalar signed integer
	KindFloat                   // scalar float64
	KindFloatArray              // 1-D float64 array
	KindFloatMatrix             // 2-D float64 array, row-major
	KindIntArray                // 1-D integer array
	KindStringArray             // 1-D string array
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindFloatArray:
		return "float[]"
	case KindFloatMatrix:
		return "float[][]"
	case KindIntArray:
		return "int[]"
	case KindStringArray:
		return "string[]"
	}
	return "unknown"
}

// Value is one typed dataset: a tagged union of the scalar and array shapes
// the store supports. Only the payload slice matching Kind is meaningful.
// Values are copied on store and on read, so callers may retain and mutate
// the slices they pass in or get back.
type Value struct {
	Kind  Kind      `json:"kind"`
	Dims  []int     `json:"dims,omitempty"`
	Str   []string  `json:"str,omitempty"`
	Int   []int64   `json:"int,omitempty"`
	Float []float64 `json:"float,omitempty"`
}

// String builds a scalar string Value.
func String(s string) Value { return Value{Kind: KindString, Str: []string{s}} }

// Int builds a scalar integer Value.
func Int(i int64) Value { return Value{Kind: KindInt, Int: []int64{i}} }

// Float builds a scalar float Value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: []float64{f}} }

// FloatArray builds a 1-D float Value.
func FloatArray(v []float64) Value {
	return Value{Kind: KindFloatArray, Dims: []int{len(v)}, Float: v}
}

// FloatMatrix builds a 2-D row-major float Value of shape rows x cols.
// len(data) must equal rows*cols.
func FloatMatrix(rows, cols int, data []float64) Value {
	return Value{Kind: KindFloatMatrix, Dims: []int{rows, cols}, Float: data}
}

// IntArray builds a 1-D integer Value.
func IntArray(v []int64) Value {
	return Value{Kind: KindIntArray, Dims: []int{len(v)}, Int: v}
}

// StringArray builds a 1-D string Value.
func StringArray(v []string) Value {
	return Value{Kind: KindStringArray, Dims: []int{len(v)}, Str: v}
}

// AsString unpacks a scalar string.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString || len(v.Str) != 1 {
		return "", false
	}
	return v.Str[0], true
}

// AsInt unpacks a scalar integer. Scalar floats with an integral value are
// accepted too; stores written by other tools are not strict about this.
func (v Value) AsInt() (int64, bool) {
	switch v.Kind {
	case KindInt:
		if len(v.Int) == 1 {
			return v.Int[0], true
		}
	case KindFloat:
		if len(v.Float) == 1 && v.Float[0] == float64(int64(v.Float[0])) {
			return int64(v.Float[0]), true
		}
	}
	return 0, false
}

// AsFloat unpacks a scalar float. Scalar integers widen.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case KindFloat:
		if len(v.Float) == 1 {
			return v.Float[0], true
		}
	case KindInt:
		if len(v.Int) == 1 {
			return float64(v.Int[0]), true
		}
	}
	return 0, false
}

// AsFloatArray unpacks a 1-D float array.
func (v Value) AsFloatArray() ([]float64, bool) {
	if v.Kind != KindFloatArray {
		return nil, false
	}
	return append([]float64(nil), v.Float...), true
}

// AsFloatMatrix unpacks a 2-D float array into per-row slices.
func (v Value) AsFloatMatrix() ([][]float64, bool) {
	if v.Kind != KindFloatMatrix || len(v.Dims) != 2 {
		return nil, false
	}
	rows, cols := v.Dims[0], v.Dims[1]
	if rows*cols != len(v.Float) {
		return nil, false
	}
	m := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		m[r] = append([]float64(nil), v.Float[r*cols:(r+1)*cols]...)
	}
	return m, true
}

// AsIntArray unpacks a 1-D integer array.
func (v Value) AsIntArray() ([]int64, bool) {
	if v.Kind != KindIntArray {
		return nil, false
	}
	return append([]int64(nil), v.Int...), true
}

// AsStringArray unpacks a 1-D string array.
func (v Value) AsStringArray() ([]string, bool) {
	if v.Kind != KindStringArray {
		return nil, false
	}
	return append([]string(nil), v.Str...), true
}

// clone deep-copies the payload so stored values never alias caller slices.
func (v Value) clone() Value {
	out := Value{Kind: v.Kind}
	if v.Dims != nil {
		out.Dims = append([]int(nil), v.Dims...)
	}
	if v.Str != nil {
		out.Str = append([]string(nil), v.Str...)
	}
	if v.Int != nil {
		out.Int = append([]int64(nil), v.Int...)
	}
	if v.Float != nil {
		out.Float = append([]float64(nil), v.Float...)
	}
	return out
}
