package service

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"shelfwatch/internal/core/leaderboard"
)

const (
	keyBoost    = "weekly.boost"
	keyApproval = "weekly.approval"
)

var texts = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Korean))
	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}
	set(language.Korean, keyBoost, "지난 한 주간 가장 많이 리트윗된 도서 %d위 (%d회)")
	set(language.Korean, keyApproval, "지난 한 주간 가장 많이 좋아요 표시된 도서 %d위 (%d회)")
	set(language.English, keyBoost, "Most retweeted book of the past week #%d (%d retweets)")
	set(language.English, keyApproval, "Most liked book of the past week #%d (%d likes)")
	return b
}()

// LocaleTag maps a configured locale ("ko", "en", "en-US") onto a supported tag
func LocaleTag(locale string) language.Tag {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(locale)), "en") {
		return language.English
	}
	return language.Korean
}

// composer builds the reply text for metric m in the given locale
func composer(tag language.Tag, m leaderboard.Metric) leaderboard.Composer {
	p := message.NewPrinter(tag, message.Catalog(texts))
	key := keyBoost
	if m == leaderboard.Approval {
		key = keyApproval
	}
	return func(rank int, post leaderboard.Post) string {
		return p.Sprintf(key, rank, m.Count(post))
	}
}
