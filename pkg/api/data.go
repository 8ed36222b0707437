package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

type Parameter map[string]string

func (p Parameter) Encode() string {
	values := url.Values{}
	for k, v := range p {
		values.Add(k, v)
	}

	return values.Encode()
}

func (p Parameter) ToReader() (io.Reader, string, error) {
	return bytes.NewBufferString(p.Encode()), "application/x-www-form-urlencoded", nil
}

type JSON map[string]any

func (j JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return nil, "", err
	}

	return bytes.NewBuffer(b), "application/json", nil
}

func (j JSON) GetJSON(key string) (JSON, error) {
	value, ok := j[key]
	if !ok {
		return nil, fmt.Errorf("key %s not found", key)
	}

	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("key %s is not an object", key)
	}

	return JSON(m), nil
}

func (j JSON) GetArray(key string) (Array, error) {
	value, ok := j[key]
	if !ok {
		return nil, fmt.Errorf("key %s not found", key)
	}

	a, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("key %s is not an array", key)
	}

	return Array(a), nil
}

func (j JSON) GetString(key string) (string, error) {
	value, ok := j[key]
	if !ok {
		return "", fmt.Errorf("key %s not found", key)
	}

	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("key %s is not a string", key)
	}

	return s, nil
}

func (j JSON) GetFloat64(key string) (float64, error) {
	value, ok := j[key]
	if !ok {
		return 0, fmt.Errorf("key %s not found", key)
	}

	f, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("key %s is not a number", key)
	}

	return f, nil
}

type Array []any

func (a Array) GetArray(i int) (Array, error) {
	if i < 0 || i >= len(a) {
		return nil, fmt.Errorf("index %d out of range", i)
	}

	inner, ok := a[i].([]any)
	if !ok {
		return nil, fmt.Errorf("element %d is not an array", i)
	}

	return Array(inner), nil
}

func (a Array) GetFloat64(i int) (float64, error) {
	if i < 0 || i >= len(a) {
		return 0, fmt.Errorf("index %d out of range", i)
	}

	f, ok := a[i].(float64)
	if !ok {
		return 0, fmt.Errorf("element %d is not a number", i)
	}

	return f, nil
}

func bytesToJSON(b []byte) (JSON, error) {
	body := JSON{}
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, err
	}

	return body, nil
}

func bytesToArray(b []byte) (Array, error) {
	body := Array{}
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, err
	}

	return body, nil
}
