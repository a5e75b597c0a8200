package validate

import (
	"fmt"
	"regexp"

	"github.com/jpl-au/caskfind/internal/catalog"
)

var tapComponent = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

// Tap validates a tap name and returns it as "user/repo". Repository full
// names ("user/homebrew-repo") and mixed case are accepted.
func Tap(name string) (string, error) {
	t, err := catalog.ParseTap(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q (expected user/repo)", ErrInvalidTap, name)
	}
	if !tapComponent.MatchString(t.User) || !tapComponent.MatchString(t.Repo) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTap, name)
	}
	return t.Name(), nil
}
