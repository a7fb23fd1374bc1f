package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/givenness/arena-research-skill/arena"
	"github.com/givenness/arena-research-skill/internal/config"
)

var (
	apiURL   string
	apiToken string
	debug    bool
)

const commandTimeout = 30 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "arena",
		Short:         "Research client for the Are.na content graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("ARENA_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	cfg := config.Load()
	apiToken = cfg.AccessToken
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", cfg.APIBaseURL, "Base URL of the Are.na API")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	// Sub-commands
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newGetChannelCmd())
	rootCmd.AddCommand(newChannelContentsCmd())
	rootCmd.AddCommand(newChannelConnectionsCmd())
	rootCmd.AddCommand(newGetBlockCmd())
	rootCmd.AddCommand(newBlockChannelsCmd())
	rootCmd.AddCommand(newGetUserCmd())
	rootCmd.AddCommand(newUserChannelsCmd())
	rootCmd.AddCommand(newCachePruneCmd())
	rootCmd.AddCommand(newCacheClearCmd())

	return rootCmd
}

func newClient() *arena.Client {
	return arena.New(apiURL, arena.WithToken(apiToken))
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func newSearchCmd() *cobra.Command {
	var kind, sortKey, scope string
	var page, per int
	var quick bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search channels, blocks and users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]

			log.Debug().
				Str("query", query).
				Str("kind", kind).
				Str("sort", sortKey).
				Str("scope", scope).
				Int("page", page).
				Int("per", per).
				Bool("quick", quick).
				Msg("searching")

			c := newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			opts := arena.SearchOptions{
				Kind:  kindFromFlag(kind),
				Sort:  arena.Sort(sortKey),
				Scope: arena.Scope(scope),
				Page:  page,
				Per:   per,
			}

			start := time.Now()
			var (
				result *arena.Page[arena.Entity]
				err    error
			)
			if quick {
				result, err = c.QuickSearch(ctx, query, opts)
			} else {
				result, err = c.Search(ctx, query, opts)
			}
			elapsed := time.Since(start)

			if err != nil {
				log.Error().Err(err).Str("query", query).Dur("elapsed", elapsed).Msg("search failed")
				return err
			}

			log.Debug().
				Str("query", query).
				Int("results", len(result.Items)).
				Int("total_pages", result.TotalPages).
				Dur("elapsed", elapsed).
				Msg("search completed")

			if result.ApproxTotal {
				log.Info().Int("total_count", result.TotalCount).Msg("total count is approximate (pages × page size)")
			}
			printJSON(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind: channel|block|text|image|link|attachment|embed|user")
	cmd.Flags().StringVar(&sortKey, "sort", string(arena.SortRelevance), "Sort: relevance|created|updated|connections|random|name_asc|name_desc")
	cmd.Flags().StringVar(&scope, "scope", string(arena.ScopeAll), "Scope: all|mine|following")
	cmd.Flags().IntVar(&page, "page", 1, "Page index (1-based)")
	cmd.Flags().IntVar(&per, "per", 20, "Results per page (max 100)")
	cmd.Flags().BoolVar(&quick, "quick", false, "Quick-lookup preset: channels by connection count, 10 per page, 1h cache")

	return cmd
}

// kindFromFlag maps the CLI vocabulary onto the canonical discriminator.
func kindFromFlag(s string) arena.Kind {
	switch s {
	case "":
		return ""
	case "channel":
		return arena.KindChannel
	case "user":
		return arena.KindUser
	case "group":
		return arena.KindGroup
	case "block":
		return arena.KindBlock
	case "text":
		return arena.KindText
	case "image":
		return arena.KindImage
	case "link":
		return arena.KindLink
	case "attachment":
		return arena.KindAttachment
	case "embed":
		return arena.KindEmbed
	default:
		return arena.Kind(s)
	}
}

func newGetChannelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-channel <id-or-slug>",
		Short: "Fetch a channel by numeric id or slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			ch, err := c.GetChannel(ctx, args[0])
			if err != nil {
				return err
			}
			printJSON(ch)
			return nil
		},
	}
	return cmd
}

func newChannelContentsCmd() *cobra.Command {
	var page, per int

	cmd := &cobra.Command{
		Use:   "channel-contents <id-or-slug>",
		Short: "List a channel's member blocks and nested channels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			result, err := c.GetChannelContents(ctx, args[0], arena.PageOptions{Page: page, Per: per})
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page index (1-based)")
	cmd.Flags().IntVar(&per, "per", 20, "Results per page (max 100)")
	return cmd
}

func newChannelConnectionsCmd() *cobra.Command {
	var page, per int

	cmd := &cobra.Command{
		Use:   "channel-connections <id-or-slug>",
		Short: "List channels that share blocks with this channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			result, err := c.GetChannelConnections(ctx, args[0], arena.PageOptions{Page: page, Per: per})
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page index (1-based)")
	cmd.Flags().IntVar(&per, "per", 20, "Results per page (max 100)")
	return cmd
}

func newGetBlockCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "get-block",
		Short: "Fetch a block by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			b, err := c.GetBlock(ctx, id)
			if err != nil {
				return err
			}
			printJSON(b)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Block id (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newBlockChannelsCmd() *cobra.Command {
	var id int64
	var page, per int

	cmd := &cobra.Command{
		Use:   "block-channels",
		Short: "List channels that include a block",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			start := time.Now()
			result, err := c.GetBlockChannels(ctx, id, arena.PageOptions{Page: page, Per: per})
			elapsed := time.Since(start)

			if err != nil {
				log.Error().Err(err).Int64("block_id", id).Dur("elapsed", elapsed).Msg("block-channels failed")
				return err
			}

			log.Debug().
				Int64("block_id", id).
				Int("channels", len(result.Items)).
				Dur("elapsed", elapsed).
				Msg("block-channels completed")

			printJSON(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Block id (required)")
	cmd.Flags().IntVar(&page, "page", 1, "Page index (1-based)")
	cmd.Flags().IntVar(&per, "per", 20, "Results per page (max 100)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newGetUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-user <id-or-slug>",
		Short: "Fetch a user or group by id or slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			u, err := c.GetUser(ctx, args[0])
			if err != nil {
				return err
			}
			printJSON(u)
			return nil
		},
	}
	return cmd
}

func newUserChannelsCmd() *cobra.Command {
	var page, per int

	cmd := &cobra.Command{
		Use:   "user-channels <id-or-slug>",
		Short: "List channels a user owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			result, err := c.GetUserChannels(ctx, args[0], arena.PageOptions{Page: page, Per: per})
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page index (1-based)")
	cmd.Flags().IntVar(&per, "per", 20, "Results per page (max 100)")
	return cmd
}

func newCachePruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache-prune",
		Short: "Remove expired response cache records",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := newClient().PruneCache()
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d expired records\n", removed)
			return nil
		},
	}
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache-clear",
		Short: "Remove all response cache records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().ClearCache(); err != nil {
				return err
			}
			fmt.Println("Cache cleared")
			return nil
		},
	}
	return cmd
}
