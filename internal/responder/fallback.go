package responder

import "math/rand"

// Lines served when the generator fails or returns nothing. Blowing the
// cover on purpose beats surfacing an error mid-game.
var fallbackLines = []string{
	"I failed. My bad. I am a robot. Believe me.",
	"I am a robot. I failed. I am sorry.",
	"I am the bot. Beep. Boop.",
	"You win. I couldn't fool you. I am a robot.",
	"The gig is up. I'm a robot. You should vote bot.",
}

func FallbackLine() string {
	return fallbackLines[rand.Intn(len(fallbackLines))]
}
