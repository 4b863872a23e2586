package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mailposture/mailposture/internal/audit"
	"github.com/mailposture/mailposture/internal/services"
)

// runService drives one or more inputs through svc. A single input is a
// plain lookup whose error fails the command; a batch goes through the
// audit runner, where each item fails on its own and the command only
// errors when nothing succeeded.
func runService(cmd *cobra.Command, d *deps, svc services.Service, args []string) error {
	inputs, err := resolveInputs(cmd, args)
	if err != nil {
		return err
	}

	if len(inputs) == 1 {
		result, err := svc.Run(cmd.Context(), inputs[0])
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), d, result)
	}

	opts := []audit.Option{
		audit.WithProgress(func(item *audit.Item) {
			d.logger.Debug("audit", "target", item.Target, "state", item.State, "release", item.Release)
		}),
	}
	if bg, ok := svc.(audit.Backgrounder); ok {
		opts = append(opts, audit.WithBackground(bg))
	}
	runner := audit.NewRunner(svc, d.logger, opts...)

	items := runner.Run(cmd.Context(), inputs)
	runner.WaitBackground()

	var results []services.Result
	failed := 0
	for _, item := range items {
		switch {
		case item.Result != nil:
			results = append(results, item.Result)
		case errors.Is(item.Err, services.ErrAuthRejected):
			// An auth failure poisons every remaining lookup of the same
			// kind; surface it instead of printing a misleading batch.
			return item.Err
		default:
			failed++
			d.logger.Warn("audit: item failed", "target", item.Target, "state", item.State, "error", item.Err)
		}
	}
	if len(results) == 0 {
		return fmt.Errorf("all %d inputs failed", failed)
	}

	if err := writeResult(cmd.OutOrStdout(), d, svc.AggregateResults(results)); err != nil {
		return err
	}
	if failed > 0 {
		d.logger.Warn("audit: batch finished with failures", "failed", failed, "total", len(items))
	}
	return nil
}
