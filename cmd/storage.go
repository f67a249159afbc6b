package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/moviemaze/internal/repositories"
	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/urfave/cli/v3"
)

// StorageList prints every slot with its revision and size.
func (r *Runner) StorageList(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	inspector, ok := r.slots.(repositories.Inspector)
	if !ok {
		return fmt.Errorf("%w: storage does not support listing", shared.ErrNotImplemented)
	}

	slots, err := inspector.List()
	if err != nil {
		return err
	}

	if len(slots) == 0 {
		return r.writePlain("No slots stored\n")
	}

	r.writePlainHeader("Slots")
	for _, s := range slots {
		r.writePlain("%-16s rev %-4d %6d bytes  %s\n", s.Key, s.Revision, len(s.Value), s.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// StorageGet prints the raw value of a slot.
func (r *Runner) StorageGet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: slot key is required", shared.ErrMissingArgument)
	}

	if err := r.openStores(); err != nil {
		return err
	}

	value, err := r.slots.Get(key)
	if isNotFound(err) {
		return r.writePlain("Slot %q is empty\n", key)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("pretty") {
		var buf bytes.Buffer
		if err := json.Indent(&buf, value, "", "  "); err == nil {
			value = buf.Bytes()
		}
	}
	return r.writePlain("%s\n", value)
}
