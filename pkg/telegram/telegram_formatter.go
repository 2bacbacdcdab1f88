package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"
)

// MaxMessageLen keeps each part under Telegram's 4096 character limit.
const MaxMessageLen = 4090

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// FormatTrendingDigest formats ranked candidates into Markdown messages,
// splitting into parts so none exceeds MaxMessageLen.
func FormatTrendingDigest(candidates []dto.TrendingCandidate, at time.Time) []string {
	stamp := at.In(utils.MarketLocation()).Format("02 Jan 2006 15:04")
	if len(candidates) == 0 {
		return []string{fmt.Sprintf("📊 *Trending Stocks* (%s)\n\nNo major trending stocks found.", stamp)}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("📊 *Trending Stocks* (%s) 📊\n\n", stamp))
		} else {
			current.WriteString(fmt.Sprintf("---*Trending Stocks Part %d*---\n\n", part))
		}
	}
	startNewPart()

	for i, c := range candidates {
		entry := formatCandidate(i+1, c)
		if current.Len()+len(entry) > MaxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}
	messages = append(messages, current.String())

	return messages
}

func formatCandidate(rank int, c dto.TrendingCandidate) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%d. 📈 *%s* - %s\n", rank, markdownEscaper.Replace(c.Symbol), markdownEscaper.Replace(c.DisplayName)))
	b.WriteString(fmt.Sprintf("💰 *Price:* %s (%s today)\n", utils.FormatRupee(c.CurrentPrice), signedPercent(c.TodayChangePercent)))

	icon := "🟡"
	switch {
	case c.VolumeFactor >= 2:
		icon = "🔥"
	case c.VolumeFactor >= 1:
		icon = "🟢"
	}
	b.WriteString(fmt.Sprintf("%s *Volume:* %.2fx avg\n", icon, c.VolumeFactor))
	b.WriteString(fmt.Sprintf("📅 *5D Change:* %s\n\n", signedPercent(c.PriceChange5D)))

	return b.String()
}

func signedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}
