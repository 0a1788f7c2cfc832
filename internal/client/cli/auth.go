package cli

import (
	"context"
	"errors"
	"fmt"

	"zorgkaart/internal/common"
)

// loginAttempts is how often a wrong password may be retried before the app
// gives up.
const loginAttempts = 3

// login prompts for the shared access password until the server accepts it
// or the attempts run out.
func (a *App) login(ctx context.Context) error {
	for attempt := 0; attempt < loginAttempts; attempt++ {
		pw, err := GetPassword(a.out)
		if err != nil {
			return err
		}

		err = a.api.Login(ctx, string(pw))
		if err == nil {
			fmt.Fprintln(a.out, "Ingelogd.")
			return nil
		}
		if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Fprintln(a.out, "Wachtwoord onjuist.")
			continue
		}
		fmt.Fprintln(a.out, "Inloggen mislukt:", err)
		return err
	}
	return errors.New("te veel mislukte inlogpogingen")
}
