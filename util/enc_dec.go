package util

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

const ENCODING_JSON string = "JSON"
const ENCODING_YAML string = "YAML"

type EncoderDecoder[T any] interface {
	Encode(value T) ([]byte, error)
	Decode(data []byte) (*T, error)
}

type JsonEncDec[T any] struct{}

var _ EncoderDecoder[any] = new(JsonEncDec[any])

func NewJsonEncoderDecoder[T any]() *JsonEncDec[T] {
	return &JsonEncDec[T]{}
}

func (encdec *JsonEncDec[T]) Encode(value T) ([]byte, error) {
	res, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (encdec *JsonEncDec[T]) Decode(data []byte) (*T, error) {
	var res T
	err := json.Unmarshal(data, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type YamlEncDec[T any] struct{}

var _ EncoderDecoder[any] = new(YamlEncDec[any])

func NewYamlEncoderDecoder[T any]() *YamlEncDec[T] {
	return &YamlEncDec[T]{}
}

func (encdec *YamlEncDec[T]) Encode(value T) ([]byte, error) {
	return yaml.Marshal(value)
}

func (encdec *YamlEncDec[T]) Decode(data []byte) (*T, error) {
	var res T
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// NewEncoderDecoder picks the codec by name, JSON when empty.
func NewEncoderDecoder[T any](encoding string) (EncoderDecoder[T], error) {
	switch encoding {
	case "", ENCODING_JSON:
		return NewJsonEncoderDecoder[T](), nil
	case ENCODING_YAML:
		return NewYamlEncoderDecoder[T](), nil
	}
	return nil, fmt.Errorf("unsupported encoding %s", encoding)
}
