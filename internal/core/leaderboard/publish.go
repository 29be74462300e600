package leaderboard

import (
	"context"

	perr "shelfwatch/internal/platform/errors"
)

// Publish posts ranked as a reply chain: the first entry at top level, each later entry in reply
// to the id returned for the one before it. permalink may be nil.
//
// ctx is checked before every post. Replies already sent stay in place on cancellation or
// failure; the returned Chain holds whatever was published
func Publish(ctx context.Context, sink PublishSink, ranked []Post, compose Composer, permalink func(Post) string) (Chain, error) {
	chain := make(Chain, 0, len(ranked))
	for i, p := range ranked {
		if err := ctx.Err(); err != nil {
			return chain, perr.Wrapf(err, perr.ErrorCodeCanceled, "publish canceled at rank %d", i+1)
		}

		pub := Publication{Text: compose(i+1, p), InReplyTo: chain.Last()}
		if permalink != nil {
			pub.AttachmentURL = permalink(p)
		}

		id, err := sink.Publish(context.WithoutCancel(ctx), pub)
		if err != nil {
			return chain, perr.PublishFailure(err, "publish rank %d (post %d)", i+1, p.ID)
		}
		chain = append(chain, id)
	}
	return chain, nil
}
