package automation

import (
	"fmt"
	"os"
	"path/filepath"

	"vncpilot/internal/keymap"
	"vncpilot/internal/remote"
	"vncpilot/internal/script"
)

// Interpreter runs parsed commands against one executor, strictly in
// order. Each command runs to completion, delays included, before the
// next starts; the first failure aborts the rest. Events already sent are
// not undone.
type Interpreter struct {
	exec *Executor

	// CaptureDir, when set, is prepended to relative capture paths.
	CaptureDir string
}

// NewInterpreter wraps an executor for command dispatch.
func NewInterpreter(exec *Executor) *Interpreter {
	return &Interpreter{exec: exec}
}

// Run executes the command list, fail-fast. Errors carry the name of the
// command that failed.
func (in *Interpreter) Run(cmds []script.Command) error {
	for _, cmd := range cmds {
		if err := in.dispatch(cmd); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name, err)
		}
	}
	return nil
}

func (in *Interpreter) dispatch(cmd script.Command) error {
	switch cmd.Action {
	case script.ActionKeysPress:
		return in.exec.KeysPress(keyRefs(cmd.Args[0].([]string)))
	case script.ActionKeysDown:
		return in.exec.KeysDown(keyRefs(cmd.Args[0].([]string)))
	case script.ActionKeysUp:
		return in.exec.KeysUp(keyRefs(cmd.Args[0].([]string)))
	case script.ActionType:
		return in.exec.Type(cmd.Args[0].(string))
	case script.ActionMouseMove:
		return in.exec.MouseMove(cmd.Args[0].(int), cmd.Args[1].(int))
	case script.ActionClick:
		b, err := remote.ParseButton(cmd.Args[0].(string))
		if err != nil {
			return err
		}
		return in.exec.MouseClick(b, 1, nil)
	case script.ActionDoubleClick:
		b, err := remote.ParseButton(cmd.Args[0].(string))
		if err != nil {
			return err
		}
		return in.exec.MouseDoubleClick(b)
	case script.ActionButtonDown:
		b, err := remote.ParseButton(cmd.Args[0].(string))
		if err != nil {
			return err
		}
		return in.exec.MouseButtonDown(b)
	case script.ActionButtonUp:
		b, err := remote.ParseButton(cmd.Args[0].(string))
		if err != nil {
			return err
		}
		return in.exec.MouseButtonUp(b)
	case script.ActionScroll:
		return in.exec.Scroll(cmd.Args[0].(int))
	case script.ActionCapture:
		img, err := in.exec.CaptureScreen()
		if err != nil {
			return err
		}
		path := cmd.Args[0].(string)
		if in.CaptureDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(in.CaptureDir, path)
		}
		return os.WriteFile(path, img, 0644)
	case script.ActionPause:
		return in.exec.Pause(cmd.Args[0].(float64))
	default:
		return fmt.Errorf("%w: no operation for action %q", script.ErrUnknownCommand, cmd.Action)
	}
}

func keyRefs(names []string) []keymap.KeyRef {
	refs := make([]keymap.KeyRef, len(names))
	for i, name := range names {
		refs[i] = keymap.Name(name)
	}
	return refs
}
