package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Key identifies a cached query: an entity name followed by its parameters.
// Parameters are normalised to strings so that Key{"files", 7} built from an
// int or from a *int designate the same entry. nil parameters (nil pointers
// included) become "nil", the root folder.
type Key []string

func NewKey(entity string, params ...interface{}) Key {
	k := make(Key, 0, len(params)+1)
	k = append(k, entity)
	for _, p := range params {
		k = append(k, param(p))
	}
	return k
}

func param(p interface{}) string {
	switch v := p.(type) {
	case nil:
		return "nil"
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case *int:
		if v == nil {
			return "nil"
		}
		return strconv.Itoa(*v)
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "nil"
		}
		return param(rv.Elem().Interface())
	}
	return fmt.Sprint(p)
}

func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether every segment of prefix matches k. An empty
// prefix matches every key.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

func (k Key) Entity() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}
