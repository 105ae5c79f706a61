// Package services holds the typed endpoint builders over the API client.
// Each service is stateless; all it does is shape paths, query strings, and
// payloads for one resource family.
package services

import (
	"net/url"
	"strconv"
)

// Filters is a loosely-typed filter map for list endpoints. Keys with empty
// values are omitted from the outgoing query string; present values are
// serialized as-is with no coercion.
type Filters map[string]string

// encode turns the filter map into query values, dropping empty entries.
func (f Filters) encode() url.Values {
	values := url.Values{}
	for key, value := range f {
		if value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// pageQuery builds the skip/limit pagination query used by list endpoints.
func pageQuery(skip, limit int) url.Values {
	values := url.Values{}
	values.Set("skip", strconv.Itoa(skip))
	values.Set("limit", strconv.Itoa(limit))
	return values
}
