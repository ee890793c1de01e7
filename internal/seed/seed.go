// Package seed fills a store with a demo board so a fresh install has
// something to look at.
package seed

import (
	"context"
	"fmt"
	"os"
	osuser "os/user"
	"strings"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/models"
)

// DemoPassword is the password given to a seeded user.
const DemoPassword = "tablero-demo"

// demoColumns lists the seeded columns and the cards in each, in order.
var demoColumns = []struct {
	title string
	cards []string
}{
	{"Todo", []string{"Fix auth bug", "Refactor UI", "Update deps"}},
	{"In Progress", []string{"Add tests", "Review PR #42"}},
	{"Done", []string{"Deploy v1.0", "Hotfix prod"}},
}

// Result describes what Demo created.
type Result struct {
	User  *models.User
	Board *models.Board
	Cards int
}

// Demo creates a user (reusing one with the same email), a board owned by
// it and a few populated columns. username defaults to the OS user.
func Demo(ctx context.Context, a *app.App, username string) (*Result, error) {
	if username == "" {
		username = CurrentUsername()
	}
	user, err := demoUser(ctx, a, username)
	if err != nil {
		return nil, err
	}

	board, err := a.BoardService.CreateBoard(ctx, user.ID, models.BoardInput{
		Title:       "Demo board",
		Description: "Seeded by tablero seed",
		Type:        models.BoardTypePrivate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	res := &Result{User: user, Board: board}
	for _, dc := range demoColumns {
		col, err := a.ColumnService.CreateColumn(ctx, models.ColumnInput{BoardID: board.ID.Hex(), Title: dc.title})
		if err != nil {
			return nil, fmt.Errorf("failed to create column %q: %w", dc.title, err)
		}
		for _, title := range dc.cards {
			_, err := a.CardService.CreateCard(ctx, models.CardInput{
				BoardID:  board.ID.Hex(),
				ColumnID: col.ID.Hex(),
				Title:    title,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create card %q: %w", title, err)
			}
			res.Cards++
		}
	}

	if _, err := a.UserService.StarBoard(ctx, user.ID, board.ID); err != nil {
		return nil, fmt.Errorf("failed to star board: %w", err)
	}
	return res, nil
}

func demoUser(ctx context.Context, a *app.App, username string) (*models.User, error) {
	email := username + "@example.com"
	existing, err := a.Store().GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user, err := a.UserService.Register(ctx, models.UserInput{
		Email:       email,
		Username:    username,
		FullName:    username,
		Password:    DemoPassword,
		AvatarColor: "#4f46e5",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// CurrentUsername returns the OS username reduced to characters that are
// safe in an email local part. It falls back to $USER, then "demo".
func CurrentUsername() string {
	name := os.Getenv("USER")
	if u, err := osuser.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	// Windows reports DOMAIN\user.
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, name)
	name = strings.Trim(name, ".")
	if name == "" {
		return "demo"
	}
	return name
}
