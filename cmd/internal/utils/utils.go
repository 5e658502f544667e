package utils

import (
	"reflect"
	"strings"
	"time"
)

// NowUTC returns the current time as unix milliseconds, the unit the
// company cache stores.
func NowUTC() int64 {
	return time.Now().UTC().UnixMilli()
}

// FormatEpoch renders unix milliseconds as RFC 3339 in UTC.
func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(time.RFC3339)
}

// Sanitize trims every exported string field, and every element of string
// slice fields, of the struct o points to. Bound query params go through it
// before validation.
func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	for i := 0; i < v.NumField(); i++ {
		trimValue(v.Field(i))
	}
}

func trimValue(field reflect.Value) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(strings.TrimSpace(field.String()))
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return
		}
		for j := 0; j < field.Len(); j++ {
			trimValue(field.Index(j))
		}
	}
}
