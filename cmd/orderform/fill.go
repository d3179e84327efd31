package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-orderform/pkg/cascade"
	"github.com/goliatone/go-orderform/pkg/renderers/live"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
)

func newFillCmd(a *app) *cobra.Command {
	var (
		mode   string
		output string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a purchase order interactively",
		Long: `Fill a purchase order in the terminal.

--mode live runs a full-screen form with type-ahead search (tab moves between
fields, ctrl+s submits). --mode prompt asks one question at a time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := tui.ParseOutputFormat(output)
			if !ok {
				return fmt.Errorf("unknown output format %q", output)
			}
			data, err := a.fill(cmd.Context(), mode, format)
			if errors.Is(err, tui.ErrAborted) || errors.Is(err, live.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
				return nil
			}
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Order written to %s\n", out)
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "live", "Interaction mode: live or prompt")
	cmd.Flags().StringVar(&output, "output", "json", "Output format: json, form, or pretty")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the order to a file instead of stdout")
	return cmd
}

func (a *app) fill(ctx context.Context, mode string, format tui.OutputFormat) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fetchers := cascade.FromClient(a.client(ctx))
	formOpts := []cascade.Option{
		cascade.WithFetchTimeout(a.cfg.Form.FetchTimeout),
		cascade.WithLogger(a.logger),
	}

	switch mode {
	case "prompt":
		r, err := tui.New(fetchers,
			tui.WithOutputFormat(format),
			tui.WithLogger(a.logger),
			tui.WithPageSize(a.cfg.Form.PageSize),
			tui.WithFormOptions(formOpts...),
		)
		if err != nil {
			return nil, err
		}
		return r.Render(ctx)

	case "live", "":
		formOpts = append(formOpts, cascade.WithDebounce(a.cfg.Form.Debounce))
		fields, err := live.New(fetchers,
			live.WithLogger(a.logger),
			live.WithFormOptions(formOpts...),
		).Run(ctx)
		if err != nil {
			return nil, err
		}
		return tui.Serialize(format, fields.Values())

	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
