package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/chefschoice/internal/model"
)

type Type string

const (
	TypeSearch Type = "search"
	TypeReload Type = "reload"
	TypeEdit   Type = "edit"
	TypeSet    Type = "set"
	TypeSave   Type = "save"
	TypeCancel Type = "cancel"
	TypeDelete Type = "delete"
	TypeView   Type = "view"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type SearchArgs struct {
	Query string
}

type EditArgs struct {
	ID string
}

// SetArgs changes one field of the edit buffer. A literal `\n` in the
// value is read as a line break, so ingredients can be given on one line.
type SetArgs struct {
	Field model.Field
	Value string
}

type DeleteArgs struct {
	ID string
}

type ViewArgs struct {
	Name string
}

type Command struct {
	Type   Type
	Raw    string
	Search *SearchArgs
	Edit   *EditArgs
	Set    *SetArgs
	Delete *DeleteArgs
	View   *ViewArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	rest := strings.TrimSpace(raw[len(parts[0]):])

	switch Type(head) {
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: rest}}, nil
	case TypeReload, TypeSave, TypeCancel:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeEdit:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a recipe id"}
		}
		return Command{Type: TypeEdit, Raw: input, Edit: &EditArgs{ID: args[0]}}, nil
	case TypeSet:
		return parseSet(input, rest)
	case TypeDelete:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a recipe id"}
		}
		return Command{Type: TypeDelete, Raw: input, Delete: &DeleteArgs{ID: args[0]}}, nil
	case TypeView:
		return parseView(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseSet(raw, rest string) (Command, error) {
	name, value, _ := strings.Cut(rest, " ")
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "set requires a field and a value"}
	}
	field := model.Field(name)
	if !field.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown field: %s", name)}
	}
	value = strings.ReplaceAll(strings.TrimSpace(value), `\n`, "\n")
	return Command{Type: TypeSet, Raw: raw, Set: &SetArgs{Field: field, Value: value}}, nil
}

func parseView(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "view requires home or catalog"}
	}
	name := strings.ToLower(args[0])
	switch name {
	case "home", "catalog":
		return Command{Type: TypeView, Raw: raw, View: &ViewArgs{Name: name}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", name)}
	}
}
