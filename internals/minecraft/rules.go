package minecraft

import (
	"regexp"
	"runtime"
)

const (
	// ActionAllow includes the argument or library when the rule matches
	ActionAllow = "allow"
	// ActionDisallow excludes the argument or library when the rule matches
	ActionDisallow = "disallow"
)

// Rule is a rule that can be applied to an argument or library.
// It can be used to determine if the argument or library should be applied to a specific OS
// or a specific set of features.
type Rule struct {
	Action string `json:"action" yaml:"action" toml:"action"`
	// OS is nil if the rule does not care about the OS
	OS       *OS             `json:"os,omitempty" yaml:"os,omitempty" toml:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
}

// OS defines the feature of an OS that can be used in a [Rule] to determine if it should be applied.
type OS struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" mapstructure:"name"`
	// Version of the os (can be a regex string)
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty" mapstructure:"version"`
	// Arch of the system
	Arch string `json:"arch,omitempty" yaml:"arch,omitempty" toml:"arch,omitempty" mapstructure:"arch"`
}

// Platform describes the system rules are evaluated against.
// Names use the manifest vocabulary ("osx", "x64"), not GOOS/GOARCH.
type Platform struct {
	Name    string
	Version string
	Arch    string
}

// Is64Bit reports whether the platform architecture is a 64 bit one
func (p Platform) Is64Bit() bool {
	switch p.Arch {
	case "x64", "arm64":
		return true
	}
	return false
}

// Features are the feature flags a launcher supports (like "is_demo_user")
type Features map[string]bool

// CurrentPlatform returns the platform this process is running on
func CurrentPlatform() Platform {
	return Platform{
		Name:    osName(runtime.GOOS),
		Version: osVersion(),
		Arch:    archName(runtime.GOARCH),
	}
}

func osName(goos string) string {
	if goos == "darwin" {
		return "osx"
	}
	return goos
}

func archName(arch string) string {
	switch arch {
	case "amd64", "x86_64":
		return "x64"
	case "386", "i386":
		return "x86"
	case "arm":
		return "arm32"
	}
	// note: we don't know how other platforms are named
	return arch
}

// Matches returns true if all constraints of this rule are satisfied.
// A rule without any constraints always matches.
func (r Rule) Matches(platform Platform, features Features) bool {
	if r.OS != nil {
		if r.OS.Name != "" && r.OS.Name != platform.Name {
			return false
		}
		if r.OS.Arch != "" && r.OS.Arch != platform.Arch {
			return false
		}
		if r.OS.Version != "" {
			re, err := regexp.Compile(r.OS.Version)
			// an invalid pattern can never match
			if err != nil || !re.MatchString(platform.Version) {
				return false
			}
		}
	}

	for name, required := range r.Features {
		if features[name] != required {
			return false
		}
	}

	return true
}

// IsAllowable evaluates the rules in order. The last matching rule wins.
// No rules at all means allowed. A non-empty list where no rule matches is denied,
// so a lone `{"action": "allow", "os": {"name": "osx"}}` only allows osx.
func IsAllowable(rules []Rule, platform Platform, features Features) bool {
	if len(rules) == 0 {
		return true
	}

	allowed := false
	for _, rule := range rules {
		if !rule.Matches(platform, features) {
			continue
		}
		allowed = rule.Action == ActionAllow
	}
	return allowed
}

// ParseRules converts untyped manifest rules into typed rules
func ParseRules(raw interface{}, field string) ([]Rule, error) {
	if raw == nil {
		return []Rule{}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, &InvalidFieldError{Field: field, Reason: "rules must be a list"}
	}

	rules := make([]Rule, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			return nil, &InvalidFieldError{Field: field, Reason: "rule must be an object"}
		}

		action, _ := obj["action"].(string)
		if action != ActionAllow && action != ActionDisallow {
			return nil, &InvalidFieldError{Field: field, Reason: "unknown rule action " + quote(action)}
		}
		rule := Rule{Action: action}

		if rawOS, ok := obj["os"]; ok && rawOS != nil {
			var os OS
			if err := decode(rawOS, &os, field+".os"); err != nil {
				return nil, err
			}
			rule.OS = &os
		}

		if rawFeatures, ok := obj["features"]; ok && rawFeatures != nil {
			features := make(map[string]bool)
			if err := decode(rawFeatures, &features, field+".features"); err != nil {
				return nil, err
			}
			rule.Features = features
		}

		rules = append(rules, rule)
	}
	return rules, nil
}
