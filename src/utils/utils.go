package utils

import (
	"reflect"
	"strings"
)

func GetFields(t any) []reflect.StructField {
	typeOf := reflect.TypeOf(t)
	if typeOf.Kind() == reflect.Pointer {
		typeOf = typeOf.Elem()
	}
	var result []reflect.StructField
	for i := 0; i < typeOf.NumField(); i++ {
		field := typeOf.Field(i)
		if !field.IsExported() {
			continue
		}
		result = append(result, field)
	}
	return result
}

// ParquetTagToKeyValue splits a parquet struct tag such as
// "name=rank, type=INT32" into its key/value pairs.
func ParquetTagToKeyValue(tag string) map[string]string {
	result := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(entry), "=")
		if !found {
			continue
		}
		result[key] = value
	}
	return result
}
