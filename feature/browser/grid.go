package browser

import (
	"context"
	"fmt"
	"slices"
)

// Action is an entry in a card's menu.
type Action string

const (
	ActionDeleteBucket Action = "delete-bucket"
	ActionDownload     Action = "download"
	ActionDelete       Action = "delete"
	ActionMove         Action = "move"
	ActionCopy         Action = "copy"
)

// MenuFor returns the actions offered for an entry kind, in display order.
func MenuFor(k Kind) []Action {
	switch k {
	case KindBucket:
		return []Action{ActionDeleteBucket}
	case KindFolder:
		return []Action{ActionDelete, ActionMove, ActionCopy}
	case KindFile:
		return []Action{ActionDownload, ActionDelete, ActionMove, ActionCopy}
	}
	return nil
}

// Target is the part of a card that received a click.
type Target int

const (
	TargetBody Target = iota
	TargetMenuToggle
	TargetMenuPanel
)

// Card is a rendered entry with its handlers bound to the controller.
type Card struct {
	Entry Entry
	Menu  []Action

	ctrl *Controller
}

// Navigable reports whether clicking the card opens it.
func (c Card) Navigable() bool {
	return c.Entry.Kind == KindBucket || c.Entry.Kind == KindFolder
}

// Navigate opens a bucket or folder. Files have no navigation.
func (c Card) Navigate(ctx context.Context) error {
	switch c.Entry.Kind {
	case KindBucket:
		return c.ctrl.EnterBucket(ctx, c.Entry.Name)
	case KindFolder:
		return c.ctrl.EnterFolder(ctx, c.Entry.Name)
	}
	return nil
}

// Click navigates only when the card body was clicked, not its menu.
func (c Card) Click(ctx context.Context, target Target) error {
	if target != TargetBody {
		return nil
	}
	return c.Navigate(ctx)
}

// Run performs a menu action on the card's entry.
func (c Card) Run(ctx context.Context, a Action) error {
	if !slices.Contains(c.Menu, a) {
		return fmt.Errorf("%w: %s on %s", ErrActionNotAllowed, a, c.Entry.Kind)
	}

	switch a {
	case ActionDeleteBucket:
		return c.ctrl.DeleteBucket(ctx, c.Entry)
	case ActionDownload:
		return c.ctrl.Download(ctx, c.Entry)
	case ActionDelete:
		return c.ctrl.Delete(ctx, c.Entry)
	case ActionMove:
		return c.ctrl.Move(ctx, c.Entry)
	case ActionCopy:
		return c.ctrl.Copy(ctx, c.Entry)
	}
	return nil
}

// Grid is one full render: the path shown above the cards and the cards.
type Grid struct {
	Path  string
	Cards []Card
}

// Find returns the card with the given name.
func (g Grid) Find(name string) (Card, bool) {
	for _, c := range g.Cards {
		if c.Entry.Name == name {
			return c, true
		}
	}
	return Card{}, false
}

// View displays grids. Every Render replaces what was shown before.
type View interface {
	Render(g Grid)
}
