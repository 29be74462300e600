package leaderboard

import (
	"context"
	"time"

	perr "shelfwatch/internal/platform/errors"
)

// Fetch walks the feed backwards from the newest post and returns every post whose age at ref
// is at most window. It stops at the first post older than window, at an empty page, or when
// the cursor cannot move further back.
//
// ctx is checked before each page; a cancelled ctx yields a Canceled error and no posts.
// A page already requested is allowed to finish
func Fetch(ctx context.Context, feed FeedSource, ref time.Time, window time.Duration) ([]Post, error) {
	out := make([]Post, 0)
	var before int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeCanceled, "fetch canceled after %d posts", len(out))
		}

		page, err := feed.Page(context.WithoutCancel(ctx), before)
		if err != nil {
			return nil, perr.FeedUnavailable(err, "feed page before %d", before)
		}
		if len(page) == 0 {
			return out, nil
		}

		for _, p := range page {
			if ref.Sub(p.CreatedAt) > window {
				return out, nil
			}
			out = append(out, p)
		}

		before = page[len(page)-1].ID - 1
		if before <= 0 {
			return out, nil
		}
	}
}
