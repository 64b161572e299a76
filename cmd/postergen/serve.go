package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vck-social/postergen/clients/server"
	"github.com/vck-social/postergen/internal/config"
	"github.com/vck-social/postergen/pkg/queue"
	"github.com/vck-social/postergen/pkg/template"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openQueue builds the configured queue. The returned close func releases
// any backend connection.
func (a *app) openQueue(ctx context.Context) (*queue.Queue, func(), error) {
	qc := a.cfg.Queue
	switch qc.Backend {
	case "redis":
		client, err := queue.Connect(ctx, qc.RedisAddr, qc.RedisPassword, qc.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return queue.New(queue.NewRedisStore(client, qc.RedisKey)), func() { client.Close() }, nil
	default:
		return queue.New(queue.NewFileStore(qc.Path)), func() {}, nil
	}
}

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fonts, err := a.fonts()
			if err != nil {
				return err
			}
			q, closeQueue, err := a.openQueue(ctx)
			if err != nil {
				return err
			}
			defer closeQueue()

			srv := server.New(server.Options{
				Registry:     a.reg,
				Fonts:        fonts,
				Queue:        q,
				PreviewScale: a.cfg.Server.PreviewScale,
				ExportRPS:    a.cfg.Server.ExportRPS,
				ExportBurst:  a.cfg.Server.ExportBurst,
			})
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config server.addr)")
	return cmd
}

func initCmd(a *app) *cobra.Command {
	var (
		out        string
		templateID string
		valuesOut  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample config file, and optionally a values file for a template",
		// The config file being created need not exist yet.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.reg = template.Default()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.configPath
			}
			if out == "" {
				out = "postergen.toml"
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := config.InitConfig(out); err != nil {
				return err
			}
			created := []string{out}

			if templateID != "" {
				def, err := a.reg.Lookup(templateID)
				if err != nil {
					return err
				}
				data, err := template.SampleValues(def)
				if err != nil {
					return err
				}
				if _, err := os.Stat(valuesOut); err == nil {
					return fmt.Errorf("values file already exists at %s", valuesOut)
				} else if !errors.Is(err, os.ErrNotExist) {
					return err
				}
				if err := os.WriteFile(valuesOut, data, 0o644); err != nil {
					return fmt.Errorf("write values: %w", err)
				}
				created = append(created, valuesOut)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Created: %s\n", strings.Join(created, ", "))
			if templateID != "" {
				fmt.Fprintf(w, "Run: %s render -t %s --values %s -o poster.png\n", appName, templateID, valuesOut)
			} else {
				fmt.Fprintf(w, "Run: %s list\n", appName)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Config path to create (default --config or postergen.toml)")
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "Also write sample values for this template")
	cmd.Flags().StringVar(&valuesOut, "values", "values.json", "Output path for sample values")
	return cmd
}
