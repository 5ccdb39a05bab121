package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/node/runner/api/resource"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
	QueryType    QueryKey = "type"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		urlValues.Add(q.Key.String(), q.Value)
	}
	return "?" + urlValues.Encode()
}

// Client talks to the http API of a node.
type Client struct {
	URL string

	HTTP   *HTTP2Client
	Stream *HTTP2Client
}

func NewClient(url string, timeout time.Duration, retry *RetrySetting) (*Client, error) {
	httpClient, err := NewHTTP2Client(timeout, true, retry)
	if err != nil {
		return nil, err
	}
	streamClient, err := NewHTTP2Client(0, true, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		URL:    strings.TrimRight(url, "/"),
		HTTP:   httpClient,
		Stream: streamClient,
	}, nil
}

func (c *Client) Close() {
	c.HTTP.Close()
	c.Stream.Close()
}

func toResponse(resp *http.Response, response interface{}) error {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var p Problem
		if err := decoder.Decode(&p); err != nil {
			p = Problem{Title: http.StatusText(resp.StatusCode)}
		}
		p.Status = resp.StatusCode
		return Error{Problem: p}
	}

	return decoder.Decode(response)
}

func (c *Client) get(path string, response interface{}) error {
	headers := http.Header{}
	headers.Set("Accept", "application/json")

	resp, err := c.HTTP.Get(c.URL+path, headers)
	if err != nil {
		return err
	}
	return toResponse(resp, response)
}

func replaceID(pattern, id string) string {
	return strings.Replace(pattern, "{id}", id, -1)
}

func (c *Client) NodeInfo() (info node.NodeInfo, err error) {
	err = c.get(resource.APIPrefix+resource.APIVersionV1+"/", &info)
	return
}

// Submit posts a signed request. `Receipt.Committed` is false for the read
// only operations.
func (c *Client) Submit(req *node.Request) (receipt Receipt, err error) {
	var body []byte
	if body, err = req.Serialize(); err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Post(c.URL+resource.URLOperations, body, headers)
	if err != nil {
		return
	}
	err = toResponse(resp, &receipt)
	return
}

func (c *Client) LoadAccount(address string) (account Account, err error) {
	err = c.get(replaceID(resource.URLAccounts, address), &account)
	return
}

func (c *Client) LoadPoll(address string) (poll Poll, err error) {
	err = c.get(replaceID(resource.URLPolls, address), &poll)
	return
}

func (c *Client) LoadResults(address string) (results Results, err error) {
	err = c.get(replaceID(resource.URLPollResults, address), &results)
	return
}

func (c *Client) LoadHistory(order string) (history History, err error) {
	err = c.get(replaceID(resource.URLHistory, order), &history)
	return
}

func (c *Client) LoadHistories(queries ...Q) (page HistoriesPage, err error) {
	err = c.get(resource.URLHistories+Queries(queries).toQueryString(), &page)
	return
}

func (c *Client) LoadHistoriesByPoll(address string, queries ...Q) (page HistoriesPage, err error) {
	err = c.get(replaceID(resource.URLPollHistory, address)+Queries(queries).toQueryString(), &page)
	return
}

// stream calls `handler` with every line the node sends until `ctx` is
// done or the connection is closed.
func (c *Client) stream(ctx context.Context, path string, handler func([]byte) error) error {
	request, err := http.NewRequest("GET", c.URL+path, nil)
	if err != nil {
		return err
	}
	request = request.WithContext(ctx)
	request.Header.Set("Accept", "text/event-stream")

	resp, err := c.Stream.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return toResponse(resp, nil)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		line = []byte(strings.TrimSpace(string(line)))
		if len(line) == 0 {
			continue
		}
		if err = handler(line); err != nil {
			return err
		}
	}
}

func decodeStreamed(b []byte, v interface{}) error {
	var p Problem
	if err := json.Unmarshal(b, &p); err == nil && p.Status > 0 {
		return Error{Problem: p}
	}
	return json.Unmarshal(b, v)
}

// StreamResults sends the current results of the poll and then the
// results after every change.
func (c *Client) StreamResults(ctx context.Context, address string, handler func(Results)) error {
	return c.stream(ctx, replaceID(resource.URLPollResults, address), func(b []byte) error {
		var v Results
		if err := decodeStreamed(b, &v); err != nil {
			return err
		}
		handler(v)
		return nil
	})
}

// StreamHistories follows the operations committed from now on. An empty
// `opType` follows every type.
func (c *Client) StreamHistories(ctx context.Context, opType string, handler func(History)) error {
	path := resource.URLHistories
	if len(opType) > 0 {
		path += Queries{{Key: QueryType, Value: opType}}.toQueryString()
	}

	return c.stream(ctx, path, func(b []byte) error {
		var v History
		if err := decodeStreamed(b, &v); err != nil {
			return err
		}
		handler(v)
		return nil
	})
}
