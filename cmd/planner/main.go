package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/api"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/chart"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/config"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/export"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/logger"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/metrics"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/render"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/session"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/source"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "planner",
		Short:         "Smart study planner: split daily study time across subjects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml)")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(interactiveCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app bundles what every command needs: config, logger and a fresh session
type app struct {
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	session *session.Session
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.App.Env)
	m := metrics.New()

	s, err := session.New(log, m, cfg.Planner.MinHoursPerDay)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, metrics: m, session: s}, nil
}

func (a *app) Close() error {
	return a.session.Close()
}

func planCmd() *cobra.Command {
	var (
		file       string
		hours      float64
		csvPath    string
		xlsxPath   string
		showCharts bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a plan from a JSON subject file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			subjects, err := source.Load(file)
			if err != nil {
				return err
			}
			for _, s := range subjects {
				if _, err := a.session.AddSubject(s); err != nil {
					return fmt.Errorf("add %q: %w", s.Name, err)
				}
			}

			if !cmd.Flags().Changed("hours") {
				hours = a.cfg.Planner.DefaultHoursPerDay
			}
			plan, err := a.session.GeneratePlan(hours)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := render.Schedule(out, plan); err != nil {
				return err
			}
			if showCharts {
				fmt.Fprintln(out)
				if err := render.Charts(out, chart.Build(plan)); err != nil {
					return err
				}
			}

			if csvPath != "" {
				if err := writeFile(csvPath, plan, export.WriteCSV); err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %s\n", csvPath)
			}
			if xlsxPath != "" {
				if err := writeFile(xlsxPath, plan, export.WriteXLSX); err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON subject list: file path or http(s) URL")
	cmd.Flags().Float64Var(&hours, "hours", 0, "available study hours per day (defaults to planner.default_hours_per_day from config)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the plan as CSV to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the plan and charts as XLSX to this path")
	cmd.Flags().BoolVar(&showCharts, "charts", false, "print the time allocation and progress charts")
	cmd.MarkFlagRequired("file")
	return cmd
}

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Add subjects and generate plans from a prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			r := newREPL(a.session, cmd.InOrStdin(), cmd.OutOrStdout(), a.cfg)
			return r.Run()
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if cmd.Flags().Changed("addr") {
				a.cfg.HTTP.Addr = addr
			}

			var m *metrics.Metrics
			if a.cfg.Metrics.Enabled {
				m = a.metrics
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := api.New(a.session, a.log, api.Options{
				Addr:               a.cfg.HTTP.Addr,
				DefaultHoursPerDay: a.cfg.Planner.DefaultHoursPerDay,
				CSVFileName:        a.cfg.Export.CSVFileName,
				XLSXFileName:       a.cfg.Export.XLSXFileName,
				Metrics:            m,
			})
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "server address")
	return cmd
}

func writeFile(path string, plan *domain.Plan, write func(w io.Writer, p *domain.Plan) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
