package social

import (
	"context"
	json "encoding/json/v2"
	"fmt"
	"io"
	"net/url"
	"strings"
)

const maxBodyBytes = 4 << 20

// RepliesAndQuotes fetches every tweet replying to or quoting the
// given tweet, following cursor pagination to the end
func (c *Client) RepliesAndQuotes(ctx context.Context, tweetID ID) ([]Tweet, error) {
	q := url.Values{}
	q.Set("query", fmt.Sprintf("(conversation_id:%s) OR (quoted_tweet_id:%s)", tweetID, tweetID))
	q.Set("queryType", "Latest")
	return c.pagedTweets(ctx, "/twitter/tweet/advanced_search", q)
}

// Retweeters fetches every user who retweeted the given tweet
func (c *Client) Retweeters(ctx context.Context, tweetID ID) ([]User, error) {
	q := url.Values{}
	q.Set("tweetId", string(tweetID))

	var out []User
	cursor := ""
	for {
		var page usersPage
		if err := c.getPage(ctx, "/twitter/tweet/retweeters", q, cursor, &page); err != nil {
			return out, err
		}
		out = append(out, page.Users...)
		if !page.HasNextPage || page.NextCursor == "" {
			return out, nil
		}
		cursor = page.NextCursor
		c.sleep(pageDelay)
	}
}

// TweetsByIDs fetches tweets by id in one call. The API caps the batch
// size so callers chunk large id sets before calling
func (c *Client) TweetsByIDs(ctx context.Context, ids []ID) ([]Tweet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	q := url.Values{}
	q.Set("tweet_ids", strings.Join(strs, ","))

	var page tweetsPage
	if err := c.getPage(ctx, "/twitter/tweets", q, "", &page); err != nil {
		return nil, err
	}
	return page.Tweets, nil
}

// UserLastTweets fetches the recent timeline of a user by handle,
// following cursor pagination to the end
func (c *Client) UserLastTweets(ctx context.Context, userName string) ([]Tweet, error) {
	q := url.Values{}
	q.Set("userName", NormalizeHandle(userName))
	return c.pagedTweets(ctx, "/twitter/user/last_tweets", q)
}

// UserInfo resolves a handle to a user document
func (c *Client) UserInfo(ctx context.Context, userName string) (User, error) {
	q := url.Values{}
	q.Set("userName", NormalizeHandle(userName))

	resp, err := c.Do(ctx, "/twitter/user/info", q)
	if err != nil {
		return User{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("social close body failed")
		}
	}()

	var out struct {
		Data User `json:"data"`
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return User{}, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return User{}, err
	}
	return out.Data, nil
}

// pagedTweets drains a tweets endpoint across all cursor pages
func (c *Client) pagedTweets(ctx context.Context, path string, q url.Values) ([]Tweet, error) {
	var out []Tweet
	cursor := ""
	for {
		var page tweetsPage
		if err := c.getPage(ctx, path, q, cursor, &page); err != nil {
			return out, err
		}
		out = append(out, page.Tweets...)
		if !page.HasNextPage || page.NextCursor == "" {
			return out, nil
		}
		cursor = page.NextCursor
		c.sleep(pageDelay)
	}
}

func (c *Client) getPage(ctx context.Context, path string, base url.Values, cursor string, dst any) error {
	q := url.Values{}
	for k, vs := range base {
		q[k] = vs
	}
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	resp, err := c.Do(ctx, path, q)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("social close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
