package script

import (
	"fmt"
	"sort"
	"strconv"
)

// Action names the executor operation a command dispatches to.
type Action string

const (
	ActionKeysPress   Action = "keys-press"
	ActionKeysDown    Action = "keys-down"
	ActionKeysUp      Action = "keys-up"
	ActionType        Action = "type"
	ActionMouseMove   Action = "mouse-move"
	ActionClick       Action = "click"
	ActionDoubleClick Action = "double-click"
	ActionButtonDown  Action = "button-down"
	ActionButtonUp    Action = "button-up"
	ActionScroll      Action = "scroll"
	ActionCapture     Action = "capture"
	ActionPause       Action = "pause"
)

// ArgType selects the parser applied to one command argument.
type ArgType int

const (
	// ArgKeystroke parses a separator-joined key combination into its
	// ordered key names.
	ArgKeystroke ArgType = iota
	// ArgString accepts the word as-is.
	ArgString
	// ArgUnsignedInt accepts decimal digits only.
	ArgUnsignedInt
	// ArgSignedInt accepts decimal digits with an optional leading minus.
	ArgSignedInt
	// ArgNumber accepts any real number.
	ArgNumber
)

func (a ArgType) String() string {
	switch a {
	case ArgKeystroke:
		return "keystroke"
	case ArgString:
		return "string"
	case ArgUnsignedInt:
		return "uint"
	case ArgSignedInt:
		return "int"
	case ArgNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Spec describes one registered command: what it does, which executor
// action it maps to, and the typed arguments it takes, in order.
type Spec struct {
	Description string
	Action      Action
	Args        []ArgType
}

// Command is one parsed script command: an action name with its validated
// argument values. Argument value types follow the ArgType list:
// []string for keystrokes, string, int, int, float64.
type Command struct {
	Name   string
	Action Action
	Args   []any
}

// registry is the fixed command table of the automation language.
var registry = map[string]Spec{
	"key":         {"press and release a key combination", ActionKeysPress, []ArgType{ArgKeystroke}},
	"keydown":     {"press keys without releasing them", ActionKeysDown, []ArgType{ArgKeystroke}},
	"keyup":       {"release previously pressed keys", ActionKeysUp, []ArgType{ArgKeystroke}},
	"type":        {"type literal text character by character", ActionType, []ArgType{ArgString}},
	"move":        {"move the pointer to absolute coordinates", ActionMouseMove, []ArgType{ArgUnsignedInt, ArgUnsignedInt}},
	"mousemove":   {"move the pointer to absolute coordinates", ActionMouseMove, []ArgType{ArgUnsignedInt, ArgUnsignedInt}},
	"click":       {"click a mouse button", ActionClick, []ArgType{ArgString}},
	"doubleclick": {"double-click a mouse button", ActionDoubleClick, []ArgType{ArgString}},
	"mousedown":   {"press a mouse button without releasing it", ActionButtonDown, []ArgType{ArgString}},
	"mouseup":     {"release a previously pressed mouse button", ActionButtonUp, []ArgType{ArgString}},
	"scroll":      {"scroll up (positive) or down (negative) by lines", ActionScroll, []ArgType{ArgSignedInt}},
	"capture":     {"save a screenshot of the remote display", ActionCapture, []ArgType{ArgString}},
	"pause":       {"wait for the given number of seconds", ActionPause, []ArgType{ArgNumber}},
}

// LookupSpec returns the registered spec for a command name (exact,
// case-sensitive match).
func LookupSpec(name string) (Spec, bool) {
	spec, ok := registry[name]
	return spec, ok
}

// CommandNames returns all registered command names, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse consumes a word sequence into an ordered command list. Words are
// taken left to right: a command name, then exactly as many argument words
// as its spec requires. Empty words between commands are skipped, so an
// empty script parses to an empty list.
func Parse(words []string) ([]Command, error) {
	var cmds []Command
	i := 0
	for i < len(words) {
		name := words[i]
		i++
		if name == "" {
			continue
		}
		spec, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownCommand, name)
		}
		args := make([]any, 0, len(spec.Args))
		for _, at := range spec.Args {
			if i >= len(words) {
				return nil, fmt.Errorf("%w: %s expects %d arguments, got %d",
					ErrInvalidArgument, name, len(spec.Args), len(args))
			}
			v, err := parseArg(name, at, words[i])
			if err != nil {
				return nil, err
			}
			i++
			args = append(args, v)
		}
		cmds = append(cmds, Command{Name: name, Action: spec.Action, Args: args})
	}
	return cmds, nil
}

func parseArg(cmd string, at ArgType, word string) (any, error) {
	switch at {
	case ArgKeystroke:
		return SplitCombo(word), nil
	case ArgString:
		return word, nil
	case ArgUnsignedInt:
		v, err := strconv.ParseUint(word, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s got %q, want unsigned integer", ErrInvalidArgument, cmd, word)
		}
		return int(v), nil
	case ArgSignedInt:
		v, err := parseSignedInt(word)
		if err != nil {
			return nil, fmt.Errorf("%w: %s got %q, want integer", ErrInvalidArgument, cmd, word)
		}
		return v, nil
	case ArgNumber:
		v, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s got %q, want number", ErrInvalidArgument, cmd, word)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %s has an unhandled argument type", ErrInvalidArgument, cmd)
	}
}

// parseSignedInt accepts decimal digits with an optional leading minus,
// nothing else (strconv would also take an explicit plus sign).
func parseSignedInt(word string) (int, error) {
	s := word
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	v, err := strconv.ParseInt(word, 10, 32)
	return int(v), err
}
