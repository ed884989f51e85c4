package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"engagementReco/business/engagement"
	"engagementReco/business/recommendation"
	"engagementReco/domain"
	"engagementReco/internal/repository/cache"
	"engagementReco/internal/repository/spreadsheet"
	"engagementReco/pkg/config"
	"engagementReco/pkg/logger"
	"engagementReco/pkg/utils"

	"github.com/spf13/cobra"
)

type app struct {
	cfg     *config.Config
	service *engagement.DashboardService

	datasetPath     string
	sheet           string
	recommendations string
	verbose         bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "engagement",
		Short:         "Engagement profiles and persona recommendations from a spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.datasetPath, "dataset", "", "dataset file (.xlsx or .csv), overrides DATASET_PATH")
	root.PersistentFlags().StringVar(&a.sheet, "sheet", "", "workbook sheet, overrides DATASET_SHEET")
	root.PersistentFlags().StringVar(&a.recommendations, "recommendations", "", "persona table YAML, overrides RECOMMENDATIONS_FILE")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		a.usersCmd(),
		a.profileCmd(),
		a.statsCmd(),
		a.filterCmd(),
		a.personasCmd(),
		a.recommendCmd(),
		a.tokenCmd(),
	)

	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.datasetPath != "" {
		cfg.Dataset.Path = a.datasetPath
	}
	if a.sheet != "" {
		cfg.Dataset.Sheet = a.sheet
	}
	if a.recommendations != "" {
		cfg.Dataset.RecommendationsFile = a.recommendations
	}
	if a.verbose {
		logger.Init(cfg.App.Environment)
	}

	table, err := recommendation.LoadTable(cfg.Dataset.RecommendationsFile)
	if err != nil {
		return err
	}
	resolver := recommendation.NewResolver(table)

	loader := spreadsheet.NewLoader(spreadsheet.LoaderConfig{Path: cfg.Dataset.Path, Sheet: cfg.Dataset.Sheet})
	dataset := cache.NewDatasetCache(loader, func(rows []domain.UserRecord) []domain.UserRecord {
		return engagement.Derive(rows, resolver.Resolve)
	}, cfg.Dataset.Path)

	a.cfg = cfg
	a.service = engagement.NewDashboardService(dataset, resolver)
	return nil
}

func (a *app) usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List visitor ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := a.service.VisitorIDs(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <visitor_id>",
		Short: "Show a user's profile and recommendation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.service.UserProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			u := profile.User

			fmt.Fprintln(out, a.cfg.Dashboard.Title)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "📊 Profil utilisateur")
			fmt.Fprintf(out, "- Persona / Cluster : %s\n", u.ClusterLabel)
			fmt.Fprintf(out, "- Score d'engagement : %s / 10\n", formatScore(u.ScoreSur10))
			fmt.Fprintf(out, "  %s\n", progressBar(u.ScoreEngagement, 20))
			fmt.Fprintf(out, "- Sessions : %d | Clics : %d | Jours d'inactivité : %d\n",
				u.NbSessions, u.NbClicks, u.DaysSinceLastActivity)
			if ts, ok := u.FirstSession(); ok {
				fmt.Fprintf(out, "- Première session : %s\n", ts.Format(time.DateOnly))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "🧠 Recommandation personnalisée")
			fmt.Fprintln(out, profile.Recommendation)

			a.footer(out)
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Mean engagement score per cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *domain.UserFilter
			if f.changed(cmd) {
				uf, err := a.userFilter(cmd, f)
				if err != nil {
					return err
				}
				filter = &uf
			}

			stats, err := a.service.ClusterStats(cmd.Context(), filter)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CLUSTER\tSCORE MOYEN")
			for _, s := range stats {
				fmt.Fprintf(tw, "%s\t%s\n", s.ClusterLabel, formatMean(s.MeanScore))
			}
			return tw.Flush()
		},
	}
	f.register(cmd)

	return cmd
}

func (a *app) filterCmd() *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Users matching clusters and an engagement range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uf, err := a.userFilter(cmd, f)
			if err != nil {
				return err
			}

			users, err := a.service.FilterUsers(cmd.Context(), uf)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VISITOR\tCLUSTER\tSCORE\tSCORE/10\tSESSIONS\tCLICS")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
					u.VisitorID, u.ClusterLabel, formatMean(u.ScoreEngagement), formatScore(u.ScoreSur10), u.NbSessions, u.NbClicks)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d utilisateur(s)\n", len(users))
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func (a *app) personasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "Reference table of personas and recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CLUSTER\tPERSONA\tDESCRIPTION\tRECOMMANDATION")
			for _, p := range a.service.Personas() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ClusterID, p.Label, p.Description, p.Recommendation)
			}
			return tw.Flush()
		},
	}
}

func (a *app) recommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <cluster_label>",
		Short: "Recommendation for a cluster label",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := ""
			if len(args) == 1 {
				label = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.service.Recommend(label))
			return nil
		},
	}
}

func (a *app) tokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for the dataset reload endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.JWT.SecretKey == "" {
				return errors.New("JWT_SECRET is not set")
			}
			token, err := utils.GenerateJWT(userID, "ADMIN", a.cfg.JWT.SecretKey, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "cli", "user_id claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	return cmd
}

type filterFlags struct {
	labels []string
	min    float64
	max    float64
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.labels, "label", nil, "cluster label, repeatable (default: every cluster)")
	cmd.Flags().Float64Var(&f.min, "min", 0, "minimum engagement score, inclusive")
	cmd.Flags().Float64Var(&f.max, "max", 1, "maximum engagement score, inclusive")
}

func (f *filterFlags) changed(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("label") || cmd.Flags().Changed("min") || cmd.Flags().Changed("max")
}

func (a *app) userFilter(cmd *cobra.Command, f filterFlags) (domain.UserFilter, error) {
	labels := f.labels
	if !cmd.Flags().Changed("label") {
		all, err := a.service.Clusters(cmd.Context())
		if err != nil {
			return domain.UserFilter{}, err
		}
		labels = all
	}
	return domain.UserFilter{Labels: labels, MinScore: f.min, MaxScore: f.max}, nil
}

func (a *app) footer(out io.Writer) {
	if !a.cfg.Dashboard.ShowFooter {
		return
	}
	fmt.Fprintln(out, "---")
	fmt.Fprintln(out, a.cfg.Dashboard.FooterCaption)
}

func formatScore(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}

func formatMean(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

// progressBar draws score in [0,1] as a fixed width bar, clamped for display.
func progressBar(score float64, width int) string {
	if math.IsNaN(score) {
		score = 0
	}
	filled := int(math.Round(math.Max(0, math.Min(1, score)) * float64(width)))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
