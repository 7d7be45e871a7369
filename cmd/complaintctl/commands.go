package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/complaint-desk/internal/api/dto"
	"github.com/spec-kit/complaint-desk/internal/app"
	"github.com/spec-kit/complaint-desk/internal/classifier"
	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/observability"
	"github.com/spec-kit/complaint-desk/internal/persistence"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

var errMissingDSN = errors.New("POSTGRES_DSN is required")

// seedFile is the YAML layout accepted by seed-departments.
type seedFile struct {
	Departments []dto.CreateDepartmentRequest `yaml:"departments"`
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "complaintctl",
		Short:         "Maintenance commands for the complaint desk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		migrateCommand(),
		slaSweepCommand(),
		assignPrioritiesCommand(),
		seedDepartmentsCommand(),
		classifyCommand(),
		createUserCommand(),
	)
	return root
}

// withContainer loads configuration, wires services against Postgres and runs fn.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Postgres.DSN == "" {
		return errMissingDSN
	}
	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx := cmd.Context()
	container, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()
	return fn(ctx, container)
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Postgres.DSN == "" {
				return errMissingDSN
			}
			logger, err := observability.NewLogger(cfg.Logger, cfg.App)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			pg, err := persistence.NewPostgres(cmd.Context(), cfg.Postgres, logger)
			if err != nil {
				return err
			}
			defer pg.Close()
			return persistence.RunMigrations(pg.PoolHandle(), logger)
		},
	}
}

func slaSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sla-sweep",
		Short: "Escalate complaints past the SLA window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				result, err := c.Complaints.CheckSLA(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "escalated=%d notified=%d\n", result.EscalatedCount, result.Notified)
				return nil
			})
		},
	}
}

func assignPrioritiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assign-priorities",
		Short: "Derive priorities for unprioritised complaints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				result, err := c.Complaints.AssignPriorities(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated=%d\n", result.UpdatedCount)
				return nil
			})
		},
	}
}

func seedDepartmentsCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "seed-departments",
		Short: "Create departments listed in a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			seed, err := parseSeed(f)
			if err != nil {
				return err
			}
			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				for _, d := range seed.Departments {
					dept, err := c.Departments.Add(ctx, d.Name, d.Email, d.Description)
					switch {
					case apperrors.IsConflict(err):
						c.Logger.Info("department exists; skipping", zap.String("name", d.Name))
					case err != nil:
						return fmt.Errorf("department %q: %w", d.Name, err)
					default:
						fmt.Fprintf(cmd.OutOrStdout(), "created %d %s\n", dept.ID, dept.Name)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "departments.yaml", "YAML seed file")
	return cmd
}

// parseSeed decodes and validates a department seed document.
func parseSeed(r io.Reader) (*seedFile, error) {
	var seed seedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for i := range seed.Departments {
		if err := dto.Validate(&seed.Departments[i]); err != nil {
			return nil, fmt.Errorf("department #%d: %w", i+1, err)
		}
	}
	return &seed, nil
}

func classifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [text]",
		Short: "Predict the category of a complaint text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.Logger, cfg.App)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			label, err := classifier.New(cfg.Classifier.ModelPath, logger).Classify(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}

func createUserCommand() *cobra.Command {
	var username, email, password, role string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account with any role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				user, _, err := c.Auth.Register(ctx, username, email, password, domain.Role(role))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", user.ID, user.Username, user.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "admin, manager, agent or customer")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
