// Package message defines the one-way commands the control panel sends to
// the capture agent of a tab.
//
// Wire format (JSON):
//
//	{"type":"setMode","mode":"testimonial"}
//	{"type":"setMode","mode":null}
//	{"type":"clearSelected"}
//
// Commands carry no reply; delivery is fire-and-forget.
package message

import (
	"encoding/json"

	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/selection"
)

// Command types.
const (
	TypeSetMode       = "setMode"
	TypeClearSelected = "clearSelected"
)

// Command is a single control message.
type Command struct {
	Type string  `json:"type"`
	Mode *string `json:"mode,omitempty"`
}

// SetMode builds a setMode command. ModeNone encodes as a null mode.
func SetMode(m selection.Mode) Command {
	cmd := Command{Type: TypeSetMode}
	if m != selection.ModeNone {
		s := string(m)
		cmd.Mode = &s
	}
	return cmd
}

// Clear builds a clearSelected command.
func Clear() Command {
	return Command{Type: TypeClearSelected}
}

// TargetMode returns the mode carried by a setMode command. A null or
// unrecognised mode yields ModeNone.
func (c Command) TargetMode() selection.Mode {
	if c.Mode == nil {
		return selection.ModeNone
	}
	return selection.ParseMode(*c.Mode)
}

// MarshalJSON writes "mode":null explicitly for setMode commands.
func (c Command) MarshalJSON() ([]byte, error) {
	if c.Type == TypeSetMode {
		return json.Marshal(struct {
			Type string  `json:"type"`
			Mode *string `json:"mode"`
		}{c.Type, c.Mode})
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{c.Type})
}

// Decode parses a command. Unknown command types decode successfully; the
// receiver decides to ignore them.
func Decode(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, errors.Wrap(errors.ErrCodeInvalidCommand, err, "decode command")
	}
	if c.Type == "" {
		return Command{}, errors.New(errors.ErrCodeInvalidCommand, "command type is required")
	}
	return c, nil
}
