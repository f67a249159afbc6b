package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the catalog API
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}
	compact := cmd.Bool("json")

	r.logger.Info("GET request", "path", path)

	resp, err := r.apiService().Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !compact)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
