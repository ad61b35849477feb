package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	widgetstore "github.com/meavi1994/go-widget-store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "widgetdemo",
		Short:        "Walks through the widget store's z-index cascade",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg widgetstore.Config
			if configPath != "" {
				var err error
				if cfg, err = widgetstore.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if verbose {
				cfg.LogLevel = log.DebugLevel.String()
			}
			opts, err := cfg.Options(os.Stderr)
			if err != nil {
				return err
			}
			repo, err := widgetstore.NewRepo(opts...)
			if err != nil {
				return err
			}
			return run(cmd.Context(), repo)
		},
	}

	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	return root
}

func run(ctx context.Context, repo *widgetstore.RepoImpl) error {
	out := widgetstore.NewLogger(os.Stdout, log.InfoLevel)
	repo.AddSubscriber(func(ev widgetstore.Event) {
		out.Info("received", "event", ev.Type, "widget", ev.Widget)
	})

	dims := widgetstore.MustDimensions(10, 20)
	var ids []widgetstore.WidgetID
	for _, z := range []widgetstore.ZIndex{1, 2, 3} {
		w, err := repo.Create(ctx, widgetstore.Coordinates{X: z, Y: z}, dims, widgetstore.AtZIndex(z))
		if err != nil {
			return err
		}
		ids = append(ids, w.ID)
	}

	// Lands on 2 and pushes 2 and 3 up.
	if _, err := repo.Create(ctx, widgetstore.Coordinates{}, dims, widgetstore.AtZIndex(2)); err != nil {
		return err
	}
	if _, err := repo.Create(ctx, widgetstore.Coordinates{X: 99}, dims, widgetstore.OnTop()); err != nil {
		return err
	}
	if _, err := repo.Update(ctx, ids[0], widgetstore.WidgetUpdate{ZIndex: widgetstore.Ptr(10)}); err != nil {
		return err
	}

	for _, w := range repo.GetAllSorted(ctx) {
		fmt.Println(w)
	}
	return nil
}
