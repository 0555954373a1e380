package arena

import (
	"math/rand"
	"time"
)

func pickEither[T any](a, b T) T {
	if rand.Intn(2) == 0 {
		return a
	}
	return b
}

func randDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
