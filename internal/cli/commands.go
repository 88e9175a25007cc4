package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/passkeep/passkeep/internal/common"
	"github.com/passkeep/passkeep/internal/vault"
	"github.com/passkeep/passkeep/internal/vault/password"
)

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

// Login authenticates against the server in remote mode. A local vault has
// no session, so the command is a no-op there.
func (a *App) Login(ctx context.Context) error {
	if a.Mode == ModeLocal {
		printlnFn("Local vault, no login required")
		return nil
	}

	pw, err := getHiddenText("Master password", a.out)
	if err != nil {
		return err
	}

	if err := a.remote.Login(ctx, pw); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Wrong master password")
			return nil
		}
		return err
	}

	a.loggedIn = true
	printlnFn("Logged in")
	return nil
}

func (a *App) List(ctx context.Context) error {
	records, err := a.keeper.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		printlnFn("Vault is empty")
		return nil
	}
	for _, r := range records {
		printlnFn(formatOverview(r))
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Record id", a.out)
	if err != nil {
		return err
	}

	r, err := a.keeper.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No record with id", id)
			return nil
		}
		return err
	}

	printlnFn("Website: ", r.Website)
	printlnFn("Username:", r.Username)
	printlnFn("Password:", r.Password)
	if r.Notes != "" {
		printlnFn("Notes:   ", r.Notes)
	}
	printlnFn("Created: ", r.CreatedAt.Format("2006-01-02 15:04:05"))
	printlnFn("Updated: ", r.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	website, err := getSimpleText(a.reader, "Website", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	pw, err := getSimpleText(a.reader, "Password (empty to generate)", a.out)
	if err != nil {
		return err
	}
	if pw == "" {
		pw, err = password.Generate(password.Policy{
			Length: 16, Uppercase: true, Lowercase: true, Digits: true, Symbols: true,
		})
		if err != nil {
			return err
		}
		printlnFn("Generated:", pw)
	}
	notes, err := getSimpleText(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return err
	}

	r, err := a.keeper.Add(ctx, vault.Draft{
		Website:  website,
		Username: username,
		Password: pw,
		Notes:    notes,
	})
	if err != nil {
		return fmt.Errorf("error adding record: %w", err)
	}

	printlnFn("Added record", r.ID)
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Record id", a.out)
	if err != nil {
		return err
	}

	current, err := a.keeper.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No record with id", id)
			return nil
		}
		return err
	}

	var patch vault.Patch
	if patch.Website, err = getPatchField(a.reader, "Website", current.Website, a.out); err != nil {
		return err
	}
	if patch.Username, err = getPatchField(a.reader, "Username", current.Username, a.out); err != nil {
		return err
	}
	if patch.Password, err = getPatchField(a.reader, "Password", "hidden", a.out); err != nil {
		return err
	}
	if patch.Notes, err = getPatchField(a.reader, "Notes", current.Notes, a.out); err != nil {
		return err
	}

	if _, err := a.keeper.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("error updating record: %w", err)
	}

	printlnFn("Updated record", id)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Record id", a.out)
	if err != nil {
		return err
	}

	removed, err := a.keeper.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting record: %w", err)
	}
	if !removed {
		printlnFn("No record with id", id)
		return nil
	}
	printlnFn("Deleted record", id)
	return nil
}

func (a *App) Search(ctx context.Context, term string) error {
	records, err := a.keeper.Search(ctx, term)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		printlnFn("Nothing found")
		return nil
	}
	for _, r := range records {
		printlnFn(formatOverview(r))
	}
	return nil
}

// Generate produces a fresh password. An optional length argument overrides
// the default of 16; all character categories are enabled.
func (a *App) Generate(ctx context.Context, args []string) error {
	policy := password.Policy{
		Length: 16, Uppercase: true, Lowercase: true, Digits: true, Symbols: true,
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid length %q", args[0])
		}
		policy.Length = n
	}

	pw, err := password.Generate(policy)
	if err != nil {
		return err
	}

	score := password.Score(pw)
	printlnFn(pw)
	printlnFn(fmt.Sprintf("Strength: %d/100 (%s)", score, password.Classify(score)))
	return nil
}

// ScorePassword rates a password the user types, e.g. one they are about to
// use elsewhere.
func (a *App) ScorePassword(ctx context.Context) error {
	pw, err := getHiddenText("Password to rate", a.out)
	if err != nil {
		return err
	}

	score := password.Score(pw)
	printlnFn(fmt.Sprintf("Strength: %d/100 (%s)", score, password.Classify(score)))
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Erase the whole vault? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Aborted")
		return nil
	}

	if err := a.keeper.ClearAll(ctx); err != nil {
		return fmt.Errorf("error clearing vault: %w", err)
	}
	printlnFn("Vault cleared")
	return nil
}

func formatOverview(r vault.Plain) string {
	return fmt.Sprintf("%s  %-25s %s", r.ID, r.Website, r.Username)
}
