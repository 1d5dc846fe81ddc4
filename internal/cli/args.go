package cli

import (
	"fmt"
	"strconv"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

// parseItemRef reads "<kind> <id>" positional arguments.
func parseItemRef(args []string) (domain.ItemKind, int64, error) {
	if len(args) != 2 {
		return "", 0, fmt.Errorf("expected <kind> <id>, got %d arguments", len(args))
	}
	kind, err := domain.ParseItemKind(args[0])
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("invalid item id %q", args[1])
	}
	return kind, id, nil
}
