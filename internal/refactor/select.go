package refactor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoSuchAction is returned by Select when the choice matches no action.
var ErrNoSuchAction = errors.New("no such action")

// Select picks an action by 1-based number or by title, ignoring case.
func Select(actions []Action, choice string) (Action, error) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(actions) {
			return Action{}, fmt.Errorf("%w: %d of %d", ErrNoSuchAction, n, len(actions))
		}
		return actions[n-1], nil
	}
	for _, act := range actions {
		if strings.EqualFold(act.Title, choice) {
			return act, nil
		}
	}
	return Action{}, fmt.Errorf("%w: %q", ErrNoSuchAction, choice)
}
