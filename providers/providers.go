// Package providers ships ProviderDescriptors for the commonly used OAuth2
// and OpenID Connect providers. Each descriptor is pure data plus a
// response converter; new providers are additions here (or runtime
// descriptors via sso.NewProviderDescriptor), never new engine code.
package providers

import (
	"encoding/json"
	"strconv"
)

// getString walks the (possibly nested) key path and returns the string
// found there, or "" when the path doesn't lead to a string.
func getString(response map[string]interface{}, path ...string) string {
	var current interface{} = response
	for _, key := range path {
		m, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current = m[key]
	}
	s, _ := current.(string)
	return s
}

// getMap walks the key path and returns the object found there, or nil.
func getMap(response map[string]interface{}, path ...string) map[string]interface{} {
	var current interface{} = response
	for _, key := range path {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = m[key]
	}
	m, _ := current.(map[string]interface{})
	return m
}

// asString renders a decoded JSON scalar as a string. Providers disagree on
// whether user ids are strings or numbers.
func asString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
