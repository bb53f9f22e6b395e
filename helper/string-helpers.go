package helper

import (
	"strings"

	om "github.com/cevaris/ordered_map"
)

// CsvToStringSliceTrimSpaces converts a string of the form 'f1,f2,f3...' into a slice of string values.
// 1) Split on comma.
// 2) Remove leading and trailing spaces.
func CsvToStringSliceTrimSpaces(s string) []string {
	tokens := strings.Split(s, ",")
	for x := range tokens {
		tokens[x] = strings.TrimSpace(tokens[x])
	}
	return tokens
}

// StripSingleQuotes removes all single quotes from s.
// Text sent inside SYSTEM$SEND_EMAIL arguments is single-quoted SQL so the quotes must go.
func StripSingleQuotes(s string) string {
	return strings.Replace(s, "'", "", -1)
}

// OrderedMapKeysToStringSlice returns the keys of the supplied ordered map in order.
// All keys are expected to be of type string.
func OrderedMapKeysToStringSlice(o *om.OrderedMap) []string {
	retval := make([]string, 0, o.Len())
	iter := o.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		retval = append(retval, kv.Key.(string))
	}
	return retval
}

// OrderedMapValuesToStringSlice returns the values of the supplied ordered map in key order.
// All values are expected to be of type string.
func OrderedMapValuesToStringSlice(o *om.OrderedMap) []string {
	retval := make([]string, 0, o.Len())
	iter := o.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		retval = append(retval, kv.Value.(string))
	}
	return retval
}
