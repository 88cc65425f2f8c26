package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/giantswarm/kube-explorer/internal/catalog"
	"github.com/giantswarm/kube-explorer/internal/k8s"
	"github.com/giantswarm/kube-explorer/internal/logging"
	"github.com/giantswarm/kube-explorer/internal/server"
	"github.com/giantswarm/kube-explorer/internal/tools/output"
)

// selectOptions are the flags of the select command.
type selectOptions struct {
	Category string
	Query    string
	Output   string
}

// relateOptions are the flags of the relate command.
type relateOptions struct {
	Kind      string
	Name      string
	Namespace string
	Labels    map[string]string
	Output    string
}

func newSelectCmd() *cobra.Command {
	var (
		cluster ClusterConfig
		opts    selectOptions
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Print the resources of a category or matching a search",
		Long: `Load the catalog once and print a view of it.

With --category the records of the category's kinds are printed. With
--query every kind is searched for records whose name, namespace, status,
labels or annotations contain the query (case-insensitive). A query takes
precedence over a category.`,
		Example: `  kube-explorer select --category Workloads
  kube-explorer select --query web --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadClusterEnvVars(cmd, &cluster)
			if err := cluster.Validate(); err != nil {
				return err
			}
			format, err := output.ParseFormat(opts.Output)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			loader, err := loadOnce(ctx, cluster)
			if err != nil {
				return err
			}
			return runSelect(loader, opts.Category, opts.Query, format, cmd.OutOrStdout())
		},
	}

	addClusterFlags(cmd, &cluster)
	cmd.Flags().StringVar(&opts.Category, "category", "", "Category to show, e.g. Workloads")
	cmd.Flags().StringVar(&opts.Query, "query", "", "Case-insensitive text to search for across all kinds")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", string(output.FormatJSON), "Output format: json or yaml")
	return cmd
}

func newRelateCmd() *cobra.Command {
	var (
		cluster ClusterConfig
		opts    relateOptions
	)

	cmd := &cobra.Command{
		Use:   "relate",
		Short: "Print the resources related to a resource by labels",
		Long: `Load the catalog once and print the records of other kinds that share a
label key and value with the focal resource.

The focal labels are taken from the record named by --name and --namespace,
or given directly with --label.`,
		Example: `  kube-explorer relate --kind pods --name web-1 --namespace default
  kube-explorer relate --kind pods --label app=web`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Kind == "" {
				return fmt.Errorf("--kind is required")
			}
			if opts.Name == "" && len(opts.Labels) == 0 {
				return fmt.Errorf("either --name or --label is required")
			}

			loadClusterEnvVars(cmd, &cluster)
			if err := cluster.Validate(); err != nil {
				return err
			}
			format, err := output.ParseFormat(opts.Output)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			loader, err := loadOnce(ctx, cluster)
			if err != nil {
				return err
			}
			return runRelate(loader, opts, format, cmd.OutOrStdout())
		},
	}

	addClusterFlags(cmd, &cluster)
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "Kind of the focal resource (plural name, e.g. pods)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Name of the focal resource")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace of the focal resource; empty matches the first record with the name")
	cmd.Flags().StringToStringVar(&opts.Labels, "label", nil, "Focal labels as key=value, used instead of --name")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", string(output.FormatJSON), "Output format: json or yaml")
	return cmd
}

// loadOnce connects to the cluster and loads a single catalog. Logs go to
// stderr at warn level unless --debug is set.
func loadOnce(ctx context.Context, cluster ClusterConfig) (*k8s.Loader, error) {
	level := slog.LevelWarn
	if cluster.DebugMode {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	loader, err := newLoader(cluster, logger, nil)
	if err != nil {
		return nil, err
	}
	if _, err := loader.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return loader, nil
}

// runSelect prints the selection of category or query from the loader's catalog.
func runSelect(loader *k8s.Loader, category, query string, format output.Format, w io.Writer) error {
	c, err := loader.Store().Load()
	if err != nil {
		return err
	}

	sel := catalog.Select(c, category, query)
	return writeOutput(w, server.NewSelectResponse(c, sel), format)
}

// runRelate prints the relations of the focal resource described by opts.
func runRelate(loader *k8s.Loader, opts relateOptions, format output.Format, w io.Writer) error {
	c, err := loader.Store().Load()
	if err != nil {
		return err
	}

	kind := catalog.Kind(opts.Kind)
	resp := server.RelateResponse{Revision: c.Revision()}

	if opts.Name == "" {
		resp.Focal = server.FocalRecord{Kind: kind, Labels: opts.Labels}
		resp.Relations = catalog.Relate(c, kind, opts.Labels)
		return writeOutput(w, resp, format)
	}

	focal, relations, err := catalog.RelateTo(c, kind, opts.Namespace, opts.Name)
	if err != nil {
		if suggestions := catalog.Suggest(c, opts.Kind, 3); len(suggestions) > 0 && !c.Has(kind) {
			return fmt.Errorf("%w (did you mean: %s)", err, joinKinds(suggestions))
		}
		return err
	}
	resp.Focal = server.FocalRecord{
		Kind:      kind,
		Name:      focal.Name,
		Namespace: focal.Namespace,
		Labels:    focal.Labels,
	}
	resp.Relations = relations
	return writeOutput(w, resp, format)
}

func writeOutput(w io.Writer, v interface{}, format output.Format) error {
	out, err := output.Marshal(v, format)
	if err != nil {
		return err
	}
	if format != output.FormatYAML {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

func joinKinds(kinds []catalog.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
