package columntype

import (
	"fmt"
	"time"

	"github.com/zenframe/zenframe"
)

// Normalize widens a raw loader-supplied value to the canonical storage
// representation of the given type: every integer kind becomes int64, every
// float kind becomes float64. nil and NA normalize to NA. Values which
// cannot represent the target type are rejected, so loaders surface type
// errors at the construction boundary rather than downstream.
func Normalize(t zenframe.ColumnType, v interface{}) (interface{}, error) {
	if zenframe.IsNA(v) {
		return zenframe.NA, nil
	}
	switch tt := t.(type) {
	case *IntColumnType:
		switch x := v.(type) {
		case int64:
			return x, nil
		case int:
			return int64(x), nil
		case int8:
			return int64(x), nil
		case int16:
			return int64(x), nil
		case int32:
			return int64(x), nil
		case uint8:
			return int64(x), nil
		case uint16:
			return int64(x), nil
		case uint32:
			return int64(x), nil
		}
	case *FloatColumnType:
		switch x := v.(type) {
		case float64:
			return x, nil
		case float32:
			return float64(x), nil
		case int:
			return float64(x), nil
		case int64:
			return float64(x), nil
		}
	case *BoolColumnType:
		if x, ok := v.(bool); ok {
			return x, nil
		}
	case *StringColumnType:
		if x, ok := v.(string); ok {
			return x, nil
		}
	case *CategoricalColumnType:
		if x, ok := v.(string); ok {
			if err := tt.Validate(x); err != nil {
				return nil, err
			}
			return x, nil
		}
	case *TimeColumnType:
		if x, ok := v.(time.Time); ok {
			return x, nil
		}
	default:
		// custom types vouch for their own values
		if err := t.Validate(v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("value %#v cannot be stored in a %s column", v, t.Name())
}
