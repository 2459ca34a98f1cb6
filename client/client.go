package client

import (
	"time"

	"github.com/valyala/fasthttp"
)

var (
	_ KVS = (*Client)(nil)
)

type KVS interface {
	Add(key, value string) error
	Get(key string) (string, error)
}

type Option func(*Client)

// WithDial replaces the network dialer, e.g. with an in-memory listener.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(o *Client) {
		o.client.Dial = dial
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Client) {
		o.timeout = timeout
	}
}

// WithConnectionClose asks the server to close the connection after every
// response instead of keeping it alive.
func WithConnectionClose() Option {
	return func(o *Client) {
		o.connectionClose = true
	}
}

type Client struct {
	host            string
	timeout         time.Duration
	connectionClose bool
	client          fasthttp.Client
}

func NewClient(host string, opts ...Option) *Client {
	o := &Client{
		host: host,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *Client) Add(key, value string) error {
	return o.AddBytes(key, []byte(value))
}

func (o *Client) AddBytes(key string, value []byte) error {
	resp, err := o.Do(fasthttp.MethodPost, "/"+key, value)
	if err != nil {
		return err
	}

	return resp.Err()
}

func (o *Client) Get(key string) (string, error) {
	body, err := o.GetBytes(key)

	return string(body), err
}

func (o *Client) GetBytes(key string) ([]byte, error) {
	resp, err := o.Do(fasthttp.MethodGet, "/"+key)
	if err != nil {
		return nil, err
	}

	if err := resp.Err(); err != nil {
		return nil, err
	}

	return resp.Bytes(), nil
}

func (o *Client) Do(method string, path string, body ...[]byte) (*Response, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	req.Header.SetRequestURI(o.host + path)
	req.Header.SetMethod(method)

	if len(body) > 0 {
		req.SetBody(body[0])
	}

	req.Header.Set("Accept-Encoding", "gzip")

	if o.connectionClose {
		req.SetConnectionClose()
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error

	if o.timeout > 0 {
		err = o.client.DoTimeout(req, resp, o.timeout)
	} else {
		err = o.client.Do(req, resp)
	}

	if err != nil {
		return nil, err
	}

	return newResponse(resp)
}
