package gemini

import (
	"strings"

	"github.com/shortsforge/shortsforge/internal/types"
)

// Baseline tags every short gets; topic tags are appended on keyword match.
var baseHashtags = []string{"#shorts", "#viral", "#trending", "#fyp", "#video"}

var topicHashtags = []struct {
	keywords []string
	tags     []string
}{
	{[]string{"game", "gaming", "play", "stream"}, []string{"#gaming", "#gamer", "#gameplay"}},
	{[]string{"music", "song", "beat", "remix"}, []string{"#music", "#newmusic"}},
	{[]string{"food", "cook", "recipe", "kitchen"}, []string{"#food", "#cooking", "#foodie"}},
	{[]string{"travel", "trip", "city", "nature"}, []string{"#travel", "#adventure"}},
	{[]string{"funny", "comedy", "joke", "laugh"}, []string{"#funny", "#comedy", "#humor"}},
	{[]string{"tutorial", "learn", "how to", "guide"}, []string{"#tutorial", "#learning", "#howto"}},
	{[]string{"sport", "fitness", "workout", "gym"}, []string{"#fitness", "#sports", "#workout"}},
}

func fallbackStrategy(description string) types.ContentStrategy {
	d := strings.ToLower(description)
	tags := append([]string(nil), baseHashtags...)
	for _, topic := range topicHashtags {
		for _, kw := range topic.keywords {
			if strings.Contains(d, kw) {
				tags = append(tags, topic.tags...)
				break
			}
		}
	}

	plan := []types.ContentIdea{
		{Title: "Behind the scenes", Description: "Show how this video was made, setup and all."},
		{Title: "Top moments compilation", Description: "Re-cut the three strongest moments into one follow-up short."},
		{Title: "Q&A follow-up", Description: "Answer the most common questions from the comments."},
	}

	return types.ContentStrategy{Hashtags: tags, ContentPlan: plan}
}

// fallbackMusic scores tracks by keyword overlap with the description and
// returns the best match, or the first track when nothing overlaps.
func fallbackMusic(description string, tracks []string) string {
	d := strings.ToLower(description)
	best := tracks[0]
	bestScore := 0
	for _, t := range tracks {
		score := 0
		name := strings.ToLower(t)
		name = strings.TrimSuffix(name, ".mp3")
		name = strings.TrimSuffix(name, ".wav")
		for _, token := range strings.FieldsFunc(name, func(r rune) bool {
			return r == '_' || r == '-' || r == ' ' || r == '.'
		}) {
			if len(token) >= 3 && strings.Contains(d, token) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = t
		}
	}
	return best
}
