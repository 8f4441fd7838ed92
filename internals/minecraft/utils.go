package minecraft

import (
	"github.com/mitchellh/mapstructure"
	"github.com/shirou/gopsutil/v3/host"
)

// osVersion returns the OS version used for `os.version` rule patterns.
// Empty if it can not be determined.
func osVersion() string {
	_, _, version, err := host.PlatformInformation()
	if err != nil {
		return ""
	}
	return version
}

// rawObject returns raw as a JSON-like object.
// nil is returned as an empty object
func rawObject(raw interface{}, field string) (map[string]interface{}, error) {
	if raw == nil {
		return map[string]interface{}{}, nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, &InvalidFieldError{Field: field, Reason: "must be an object"}
	}
	return obj, nil
}

// rawString returns the string value of key. ok is false if missing or empty
func rawString(obj map[string]interface{}, key string) (string, bool) {
	s, _ := obj[key].(string)
	return s, s != ""
}

// decode decodes untyped manifest data into out (using mapstructure tags)
func decode(raw interface{}, out interface{}, field string) error {
	if err := mapstructure.Decode(raw, out); err != nil {
		return &InvalidFieldError{Field: field, Reason: err.Error()}
	}
	return nil
}
