package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/7phs/binbuf/buffer"
	"github.com/valyala/fasthttp"
)

var gzipEncoding = []byte("gzip")

// Response holds a received status, headers and the payload accumulated into
// a buffer. Whether the payload is text is decided after it is fully read.
type Response struct {
	code        int
	contentType string
	headers     map[string]string
	payload     *buffer.HeapBuffer
}

func newResponse(resp *fasthttp.Response) (*Response, error) {
	o := &Response{
		code:        resp.StatusCode(),
		contentType: string(resp.Header.ContentType()),
		headers:     make(map[string]string),
		payload:     buffer.Allocate(),
	}

	resp.Header.VisitAll(func(key, value []byte) {
		o.headers[strings.ToLower(string(key))] = string(value)
	})

	if bytes.EqualFold(resp.Header.Peek("Content-Encoding"), gzipEncoding) {
		body, err := resp.BodyGunzip()
		if err != nil {
			return nil, err
		}

		if err := o.payload.WriteBytes(body); err != nil {
			return nil, err
		}

		return o, nil
	}

	if err := resp.BodyWriteTo(o.payload); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Response) Code() int {
	return o.code
}

func (o *Response) IsSuccess() bool {
	return o.code == fasthttp.StatusOK
}

func (o *Response) Header(name string) string {
	return o.headers[strings.ToLower(name)]
}

func (o *Response) Bytes() []byte {
	return o.payload.ToByteArray()
}

// Payload returns an independent copy of the accumulated payload.
func (o *Response) Payload() buffer.Buffer {
	return o.payload.Duplicate()
}

// Text returns the payload as a string when the content type is textual and
// the bytes are valid UTF-8.
func (o *Response) Text() (string, bool) {
	if !isTextContentType(o.contentType) {
		return "", false
	}

	body := o.payload.ToByteArray()
	if !utf8.Valid(body) {
		return "", false
	}

	return string(body), true
}

func (o *Response) Err() error {
	switch o.code {
	case fasthttp.StatusOK:
		return nil
	case fasthttp.StatusNotFound:
		return ErrNotFound
	case fasthttp.StatusInsufficientStorage:
		return ErrOutOfLimit
	}

	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, o.code)
}

func (o *Response) String() string {
	text, isText := o.Text()

	if o.IsSuccess() {
		if isText {
			return text
		}

		return fmt.Sprintf("binary(%d bytes)", o.payload.Capacity())
	}

	message, _ := json.Marshal(struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{
		Code:    o.code,
		Message: strings.TrimSpace(text),
	})

	return string(message)
}

func isTextContentType(contentType string) bool {
	if contentType == "" {
		return true
	}

	contentType = strings.ToLower(contentType)

	return strings.HasPrefix(contentType, "text/") ||
		strings.Contains(contentType, "json") ||
		strings.Contains(contentType, "xml")
}
