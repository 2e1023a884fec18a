package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/studiowebux/postboard/internal/board"
	"github.com/studiowebux/postboard/internal/history"
	"github.com/studiowebux/postboard/internal/posts"
	"github.com/studiowebux/postboard/internal/types"
	"golang.org/x/sync/errgroup"
)

// MaxConcurrentGets bounds the number of detail reads in flight for Get
const MaxConcurrentGets = 4

// Options carries the output settings shared by every command
type Options struct {
	OutputFormat string // json, yaml, text
	Filter       string // JMESPath filter expression
	Query        string // JMESPath query expression
	Color        bool   // highlight JSON output
	Out          io.Writer
}

func (o Options) writer() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

// ListOptions are the options of the list command
type ListOptions struct {
	Options
	ID string // id search, same semantics as the TUI search
}

// List prints the collection, narrowed by the id search if one is given
func List(ctx context.Context, src board.Source, opts ListOptions) error {
	ctrl := board.New()
	if err := ctrl.Initialize(ctx, src); err != nil {
		return fmt.Errorf("failed to load posts: %w", err)
	}

	ctrl.Search(opts.ID)
	if f := ctrl.Filter(); !f.IsValid() {
		log.Warn().Str("query", f.Query()).Msg("Search is not an integer id, nothing matches")
	}

	return write(opts.Options, ctrl.Filtered(), renderPostsTable)
}

// Get reads the detail of every id concurrently and prints them in the
// order given. The first failure cancels the remaining reads.
func Get(ctx context.Context, src board.Source, ids []int, opts Options) error {
	results := make([]types.Post, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentGets)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			post, err := src.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("post %d: %w", id, err)
			}
			results[i] = post
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if len(results) == 1 {
		return write(opts, results[0], renderPostDetail)
	}
	return write(opts, results, renderPostDetails)
}

// HistoryOptions are the options of the history command
type HistoryOptions struct {
	Options
	Limit int
	Clear bool
}

// History prints or clears the fetch log
func History(mgr *history.Manager, opts HistoryOptions) error {
	if opts.Clear {
		count, err := mgr.GetCount()
		if err != nil {
			return err
		}
		if err := mgr.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(opts.writer(), "Cleared %d entries\n", count)
		return nil
	}

	entries, err := mgr.Load(opts.Limit)
	if err != nil {
		return err
	}

	return write(opts.Options, entries, renderHistoryTable)
}

// NewClient builds the posts client used by every command
func NewClient(baseURL, collection string, timeout time.Duration, tls *types.TLSConfig, recorder posts.Recorder) *posts.Client {
	opts := []posts.Option{posts.WithTimeout(timeout), posts.WithTLS(tls)}
	if recorder != nil {
		opts = append(opts, posts.WithRecorder(recorder))
	}
	return posts.New(baseURL, collection, opts...)
}
