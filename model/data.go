package model

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

type DataContainerType string

const DATA_CONTAINER_PROCESS_INSTANCE DataContainerType = "PROCESS_INSTANCE"
const DATA_CONTAINER_ACTIVITY_INSTANCE DataContainerType = "ACTIVITY_INSTANCE"

type DataType string

const DATA_TYPE_STRING DataType = "string"
const DATA_TYPE_INTEGER DataType = "integer"
const DATA_TYPE_LONG DataType = "long"
const DATA_TYPE_DOUBLE DataType = "double"
const DATA_TYPE_BOOLEAN DataType = "boolean"
const DATA_TYPE_DATE DataType = "date"
const DATA_TYPE_LIST DataType = "list"
const DATA_TYPE_MAP DataType = "map"
const DATA_TYPE_OBJECT DataType = "object"

// DataDefinition declares a variable of a process or an activity.
type DataDefinition struct {
	Name         string      `json:"name" yaml:"name"`
	Description  string      `json:"description,omitempty" yaml:"description,omitempty"`
	Type         DataType    `json:"type" yaml:"type"`
	DefaultValue *Expression `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Transient    bool        `json:"transient,omitempty" yaml:"transient,omitempty"`
}

func (d *DataDefinition) IsTransientData() bool {
	return d.Transient
}

type DataInstance struct {
	Id            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Type          DataType          `json:"type"`
	Transient     bool              `json:"transient,omitempty"`
	ContainerId   int64             `json:"containerId"`
	ContainerType DataContainerType `json:"containerType"`
	Value         any               `json:"value"`
}

// NewDataInstance binds a definition to a container, coercing the value to the declared type.
func NewDataInstance(def *DataDefinition, value any, containerId int64, containerType DataContainerType) (*DataInstance, error) {
	coerced, err := def.Type.Coerce(value)
	if err != nil {
		return nil, err
	}
	return &DataInstance{
		Name:          def.Name,
		Description:   def.Description,
		Type:          def.Type,
		Transient:     def.Transient,
		ContainerId:   containerId,
		ContainerType: containerType,
		Value:         coerced,
	}, nil
}

// CastError reports a value that can not be held by a data type.
type CastError struct {
	Type  DataType
	Value any
}

func (e CastError) Error() string {
	return fmt.Sprintf("can not cast value %v of type %T to %s", e.Value, e.Value, e.Type)
}

// Coerce converts value to the canonical Go representation of the data type:
// int64 for integer (bounded to 32 bits) and long, float64 for double, time.Time for date,
// []any for list and map[string]any for map. Nil is accepted by every type.
func (t DataType) Coerce(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	fail := CastError{Type: t, Value: value}
	switch t {
	case DATA_TYPE_STRING:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fail
	case DATA_TYPE_INTEGER, DATA_TYPE_LONG:
		n, ok := toInt64(reflect.ValueOf(value))
		if !ok {
			return nil, fail
		}
		if t == DATA_TYPE_INTEGER && (n < math.MinInt32 || n > math.MaxInt32) {
			return nil, fail
		}
		return n, nil
	case DATA_TYPE_DOUBLE:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), nil
		case reflect.Float32, reflect.Float64:
			return rv.Float(), nil
		}
		return nil, fail
	case DATA_TYPE_BOOLEAN:
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return nil, fail
	case DATA_TYPE_DATE:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			d, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, fail
			}
			return d, nil
		}
		return nil, fail
	case DATA_TYPE_LIST:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, fail
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case DATA_TYPE_MAP:
		if m, ok := value.(map[string]any); ok {
			return m, nil
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, fail
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	case DATA_TYPE_OBJECT, "":
		return value, nil
	}
	return nil, fail
}

// toInt64 accepts integers and integral floats that fit in an int64.
func toInt64(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit
		if f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}
