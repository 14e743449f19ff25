package utils

import (
	"math/rand"
	"os"

	"github.com/codenewsio/codenews/utils/dotenv"
)

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// ContainsInt64 returns true iff the provided slice hay contains needle.
func ContainsInt64(hay []int64, needle int64) bool {
	for _, v := range hay {
		if v == needle {
			return true
		}
	}
	return false
}

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// RandomAlphabetString returns a random lowercase string of the given length.
func RandomAlphabetString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

func IsProdEnv() bool {
	return os.Getenv("CODENEWS_ENV") == dotenv.ProdEnv
}
