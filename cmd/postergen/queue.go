package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vck-social/postergen/pkg/queue"
)

// withQueue opens the configured queue for the duration of fn.
func (a *app) withQueue(cmd *cobra.Command, fn func(q *queue.Queue) error) error {
	q, closeQueue, err := a.openQueue(cmd.Context())
	if err != nil {
		return err
	}
	defer closeQueue()
	return fn(q)
}

func printRecords(cmd *cobra.Command, recs []queue.Record, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, recs)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCHEDULED\tSTATUS\tTEMPLATE\tPLATFORMS\t")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\t\n", r.ID, r.ScheduledAt, r.Status, r.TemplateID, r.Platforms)
	}
	return tw.Flush()
}

func queueCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage scheduled posts",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List queued posts by schedule time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withQueue(cmd, func(q *queue.Queue) error {
				recs, err := q.List(cmd.Context())
				if err != nil {
					return err
				}
				return printRecords(cmd, recs, asJSON)
			})
		},
	})

	cmd.AddCommand(queueAddCmd(a), queueBatchCmd(a), queueDueCmd(a, &asJSON))

	cmd.AddCommand(&cobra.Command{
		Use:   "status <id> <queued|scheduled|published|failed>",
		Short: "Change a post's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withQueue(cmd, func(q *queue.Queue) error {
				return q.SetStatus(cmd.Context(), args[0], queue.Status(args[1]))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a queued post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withQueue(cmd, func(q *queue.Queue) error {
				return q.Remove(cmd.Context(), args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Count posts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withQueue(cmd, func(q *queue.Queue) error {
				st, err := q.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, st)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "total %d, pending %d, published %d, failed %d\n",
					st.Total, st.Queued, st.Published, st.Failed)
				return nil
			})
		},
	})

	return cmd
}

func queueAddCmd(a *app) *cobra.Command {
	var (
		templateID string
		caption    string
		platforms  []string
		at         string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Queue one post",
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.reg.Lookup(templateID)
			if err != nil {
				return err
			}
			ps, err := queue.ParsePlatforms(platforms)
			if err != nil {
				return err
			}
			ts, err := queue.ParseTimestamp(at)
			if err != nil {
				return err
			}
			return a.withQueue(cmd, func(q *queue.Queue) error {
				rec, err := q.Add(cmd.Context(), queue.Record{
					TemplateID:   def.ID,
					TemplateName: def.Name,
					Caption:      caption,
					Platforms:    ps,
					ScheduledAt:  ts,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued: %s at %s\n", rec.ID, rec.ScheduledAt)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&templateID, "template", "t", "", "Template id")
	cmd.Flags().StringVar(&caption, "caption", "", "Post caption")
	cmd.Flags().StringSliceVar(&platforms, "platform", []string{string(queue.Facebook)}, "facebook, instagram")
	cmd.Flags().StringVar(&at, "at", "", "Schedule time, RFC 3339 or 2006-01-02T15:04:05")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func queueBatchCmd(a *app) *cobra.Command {
	var (
		templateID string
		caption    string
		platforms  []string
		dates      []string
		clock      string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Queue one post per date at the same time of day",
		Example: `  postergen queue batch -t event-announcement --date 2025-02-01 --date 2025-02-08 --time 18:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.reg.Lookup(templateID)
			if err != nil {
				return err
			}
			ps, err := queue.ParsePlatforms(platforms)
			if err != nil {
				return err
			}
			return a.withQueue(cmd, func(q *queue.Queue) error {
				recs, err := q.AddBatch(cmd.Context(), def, caption, ps, dates, clock)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued %d post(s)\n", len(recs))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&templateID, "template", "t", "", "Template id")
	cmd.Flags().StringVar(&caption, "caption", "", "Post caption")
	cmd.Flags().StringSliceVar(&platforms, "platform", []string{string(queue.Facebook)}, "facebook, instagram")
	cmd.Flags().StringArrayVar(&dates, "date", nil, "Date as YYYY-MM-DD (repeatable)")
	cmd.Flags().StringVar(&clock, "time", "09:00", "Time of day as HH:MM")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func queueDueCmd(a *app, asJSON *bool) *cobra.Command {
	var (
		limit int
		now   string
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List queued posts whose time has come",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if now != "" {
				ts, err := queue.ParseTimestamp(now)
				if err != nil {
					return err
				}
				at = ts.Time
			}
			return a.withQueue(cmd, func(q *queue.Queue) error {
				recs, err := q.Due(cmd.Context(), at, limit)
				if err != nil {
					return err
				}
				return printRecords(cmd, recs, *asJSON)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", queue.DefaultDueLimit, "Maximum posts to return")
	cmd.Flags().StringVar(&now, "now", "", "Evaluate as of this time instead of the clock")
	return cmd
}
