package chatlog

import (
	"compress/gzip"
	json "encoding/json/v2"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

const maxDumpBytes = 256 << 20

// Open reads a dump file from disk, transparently decompressing
// a .gz export
func Open(path string) (Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dump{}, err
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return Dump{}, err
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}
	return Read(r)
}

// Read decodes a dump from r
func Read(r io.Reader) (Dump, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxDumpBytes))
	if err != nil {
		return Dump{}, err
	}
	var d Dump
	if err := json.Unmarshal(b, &d); err != nil {
		return Dump{}, fmt.Errorf("chatlog: decode dump: %w", err)
	}
	return d, nil
}

var tweetURLPattern = regexp.MustCompile(`https?://(?:www\.)?(?:x|twitter)\.com/(\w+)/status/(\d+)`)

// TweetLink is a tweet permalink found in a chat message
type TweetLink struct {
	Handle  string
	TweetID string
}

// ExtractTweetLinks returns every tweet permalink embedded in text,
// in order of appearance
func ExtractTweetLinks(text string) []TweetLink {
	matches := tweetURLPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]TweetLink, 0, len(matches))
	for _, m := range matches {
		out = append(out, TweetLink{Handle: m[1], TweetID: m[2]})
	}
	return out
}
