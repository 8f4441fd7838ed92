package minecraft

import (
	"regexp"
	"strings"
	"unicode"
)

// Argument is one launch argument template. Value may contain `${name}` placeholders
// that are replaced by [Argument.Format]. The argument is only used if its rules allow it.
type Argument struct {
	Value []string `json:"value" yaml:"value" toml:"value"`
	Rules []Rule   `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
}

// NewArgument returns an argument without rules
func NewArgument(value ...string) Argument {
	return Argument{Value: value, Rules: []Rule{}}
}

// ArgumentFromString splits s on whitespace into a single argument
func ArgumentFromString(s string) Argument {
	return NewArgument(strings.Fields(s)...)
}

// IsApplicable returns true if the rules of this argument allow it on the given platform
func (a Argument) IsApplicable(platform Platform, features Features) bool {
	return IsAllowable(a.Rules, platform, features)
}

// Format returns all values with their placeholders replaced.
// It does not check the rules.
func (a Argument) Format(fields map[string]string) []string {
	formatted := make([]string, len(a.Value))
	for i, v := range a.Value {
		formatted[i] = FormatTemplate(v, fields)
	}
	return formatted
}

var placeholderRegex = regexp.MustCompile(`\$\{([^}]*)\}`)

// FormatTemplate replaces every `${key}` in template with fields[key].
// Unknown keys are left untouched.
func FormatTemplate(template string, fields map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(template, func(token string) string {
		if value, ok := fields[token[2:len(token)-1]]; ok {
			return value
		}
		return token
	})
}

// Arguments are the game and jvm arguments of a version
type Arguments struct {
	Game []Argument `json:"game" yaml:"game" toml:"game"`
	JVM  []Argument `json:"jvm" yaml:"jvm" toml:"jvm"`
}

// DefaultJVMArguments returns the jvm arguments used when a manifest does not define any.
// Every call returns a new slice.
func DefaultJVMArguments() []Argument {
	return []Argument{
		NewArgument("-Dminecraft.launcher.brand=${launcher_name}"),
		NewArgument("-Dminecraft.launcher.version=${launcher_version}"),
		NewArgument("-Djava.library.path=${natives_directory}"),
		NewArgument("-cp", "${classpath}"),
	}
}

// LegacyArguments converts the old `minecraftArguments` string into game arguments.
// Every whitespace separated token gets its own argument. Whitespace inside a
// `${...}` placeholder never splits.
func LegacyArguments(minecraftArguments string) []Argument {
	tokens := splitLegacy(minecraftArguments)
	args := make([]Argument, 0, len(tokens))
	for _, token := range tokens {
		args = append(args, NewArgument(token))
	}
	return args
}

func splitLegacy(s string) []string {
	tokens := make([]string, 0)
	var current strings.Builder
	inPlaceholder := false

	for i, r := range s {
		switch {
		// an unterminated `${` is plain text
		case !inPlaceholder && r == '$' && strings.HasPrefix(s[i:], "${") && strings.ContainsRune(s[i:], '}'):
			inPlaceholder = true
		case inPlaceholder && r == '}':
			inPlaceholder = false
		case !inPlaceholder && unicode.IsSpace(r):
			if current.Len() != 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}

	if current.Len() != 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// ParseArguments parses the `arguments` object of a manifest.
// A missing `jvm` list results in [DefaultJVMArguments].
func ParseArguments(raw interface{}) (Arguments, error) {
	obj, err := rawObject(raw, "arguments")
	if err != nil {
		return Arguments{}, err
	}

	game, err := parseArgumentList(obj["game"], "arguments.game")
	if err != nil {
		return Arguments{}, err
	}

	var jvm []Argument
	if _, ok := obj["jvm"]; ok {
		jvm, err = parseArgumentList(obj["jvm"], "arguments.jvm")
		if err != nil {
			return Arguments{}, err
		}
	} else {
		jvm = DefaultJVMArguments()
	}

	return Arguments{Game: game, JVM: jvm}, nil
}

func parseArgumentList(raw interface{}, field string) ([]Argument, error) {
	if raw == nil {
		return []Argument{}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, &InvalidFieldError{Field: field, Reason: "must be a list"}
	}

	args := make([]Argument, 0, len(list))
	for _, entry := range list {
		arg, err := ParseArgument(entry, field)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// ParseArgument parses a single argument. It can either be a plain string
// or an object with a `value` (string or list of strings) and optional `rules`.
func ParseArgument(raw interface{}, field string) (Argument, error) {
	switch v := raw.(type) {
	case string:
		return ArgumentFromString(v), nil
	case map[string]interface{}:
		value, err := argumentValue(v["value"], field)
		if err != nil {
			return Argument{}, err
		}
		rules, err := ParseRules(v["rules"], field+".rules")
		if err != nil {
			return Argument{}, err
		}
		return Argument{Value: value, Rules: rules}, nil
	}
	return Argument{}, &InvalidFieldError{Field: field, Reason: "argument is not a string or object"}
}

func argumentValue(raw interface{}, field string) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return append([]string{}, v...), nil
	case []interface{}:
		value := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &InvalidFieldError{Field: field, Reason: "argument value not string or string array"}
			}
			value = append(value, s)
		}
		return value, nil
	}
	return nil, &InvalidFieldError{Field: field, Reason: "argument value not string or string array"}
}
