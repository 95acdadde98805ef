package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/qdbblast/qdbblast/internal/qdbblast/configuration"
	"github.com/qdbblast/qdbblast/internal/qdbblast/schema"
)

// CustomHooks decode the TOML pair forms used throughout the configuration:
// ["name", "type"] schema entries, ["10ms", "100ms"] duration ranges and
// [min, max] count ranges. viper.DecodeHook replaces viper's default hook
// chain, so the standard string-to-duration hook is re-added at the end.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		ColumnPairHookFunc(),
		DurationRangeHookFunc(),
		CountRangeHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)),
}

// ColumnPairHookFunc decodes a ["name", "type"] pair into a schema.Column.
func ColumnPairHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.Slice || t != reflect.TypeOf(schema.Column{}) {
			return data, nil
		}
		pair, err := stringPair(data)
		if err != nil {
			return nil, fmt.Errorf("schema entry: %w", err)
		}
		colType, err := schema.ParseColType(pair[1])
		if err != nil {
			return nil, fmt.Errorf("schema entry %q: %w", pair[0], err)
		}
		return schema.Column{Name: pair[0], Type: colType}, nil
	}
}

// DurationRangeHookFunc decodes a ["10ms", "100ms"] pair into a
// configuration.DurationRange.
func DurationRangeHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.Slice || t != reflect.TypeOf(configuration.DurationRange{}) {
			return data, nil
		}
		pair, err := stringPair(data)
		if err != nil {
			return nil, fmt.Errorf("duration range: %w", err)
		}
		min, err := time.ParseDuration(pair[0])
		if err != nil {
			return nil, fmt.Errorf("duration range min: %w", err)
		}
		max, err := time.ParseDuration(pair[1])
		if err != nil {
			return nil, fmt.Errorf("duration range max: %w", err)
		}
		return configuration.DurationRange{Min: min, Max: max}, nil
	}
}

// CountRangeHookFunc decodes a [min, max] integer pair into a
// configuration.CountRange.
func CountRangeHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.Slice || t != reflect.TypeOf(configuration.CountRange{}) {
			return data, nil
		}
		elems, err := pairElements(data)
		if err != nil {
			return nil, fmt.Errorf("count range: %w", err)
		}
		min, err := toUint64(elems[0])
		if err != nil {
			return nil, fmt.Errorf("count range min: %w", err)
		}
		max, err := toUint64(elems[1])
		if err != nil {
			return nil, fmt.Errorf("count range max: %w", err)
		}
		return configuration.CountRange{Min: min, Max: max}, nil
	}
}

func pairElements(data interface{}) ([]interface{}, error) {
	elems, ok := data.([]interface{})
	if !ok || len(elems) != 2 {
		return nil, fmt.Errorf("want a two-element array, got %v", data)
	}
	return elems, nil
}

func stringPair(data interface{}) ([2]string, error) {
	var pair [2]string
	elems, err := pairElements(data)
	if err != nil {
		return pair, err
	}
	for i, elem := range elems {
		s, ok := elem.(string)
		if !ok {
			return pair, fmt.Errorf("want a pair of strings, got %v", data)
		}
		pair[i] = s
	}
	return pair, nil
}

func toUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, fmt.Errorf("must be non-negative, got %d", n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("must be non-negative, got %d", n)
		}
		return uint64(n), nil
	case uint64:
		return n, nil
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, fmt.Errorf("must be a non-negative integer, got %v", n)
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("want an integer, got %T", v)
	}
}
