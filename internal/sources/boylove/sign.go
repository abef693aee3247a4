package boylove

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"time"
)

const (
	tokenSecret  = "18comicAPPContent"
	tokenVersion = "1.1.0"
)

// signature holds the header values the API host checks on every call.
type signature struct {
	Param string
	Token string
}

func sign(now time.Time) signature {
	ts := strconv.FormatInt(now.Unix(), 10)
	sum := md5.Sum([]byte(ts + tokenSecret))
	return signature{
		Param: ts + "," + tokenVersion,
		Token: hex.EncodeToString(sum[:]),
	}
}
