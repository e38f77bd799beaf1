package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

const tagSeparator = ","

// Tags is an unordered tag set persisted as a comma-delimited string.
type Tags []string

// ParseTags splits the stored form back into a set, dropping blank entries.
func ParseTags(s string) Tags {
	tags := Tags{}
	if s == "" {
		return tags
	}
	for _, tag := range strings.Split(s, tagSeparator) {
		if strings.TrimSpace(tag) != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// String returns the stored form.
func (t Tags) String() string {
	return strings.Join(t, tagSeparator)
}

// Normalize round-trips the set through its stored form.
func (t Tags) Normalize() Tags {
	return ParseTags(t.String())
}

func (t Tags) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *Tags) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = Tags{}
	case string:
		*t = ParseTags(v)
	case []byte:
		*t = ParseTags(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Tags", value)
	}
	return nil
}

func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}
