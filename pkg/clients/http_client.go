package clients

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"
)

const timeout = time.Second * 15

var ErrFailedCloseResponseBody = errors.New("failed close response body")

type HTTPClientI interface {
	Do(req *http.Request) (*http.Response, error)
	Get(url string, headers http.Header) (statusCode int, respBody []byte, err error)
	Put(url string, headers http.Header, body []byte) (statusCode int, respBody []byte, err error)
	Post(url string, headers http.Header, body []byte) (statusCode int, respBody []byte, err error)
}

type HTTPClientAdapter struct {
	client *http.Client
}

func (h *HTTPClientAdapter) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

func (h *HTTPClientAdapter) Get(url string, headers http.Header) (int, []byte, error) {
	return h.send(http.MethodGet, url, headers, nil)
}

func (h *HTTPClientAdapter) Put(url string, headers http.Header, body []byte) (int, []byte, error) {
	return h.send(http.MethodPut, url, headers, body)
}

func (h *HTTPClientAdapter) Post(url string, headers http.Header, body []byte) (int, []byte, error) {
	return h.send(http.MethodPost, url, headers, body)
}

func (h *HTTPClientAdapter) send(method, url string, headers http.Header, body []byte) (statusCode int, respBody []byte, err error) {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return
	}
	if headers != nil {
		req.Header = headers
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return
	}
	defer func() {
		if e := resp.Body.Close(); e != nil {
			err = errors.Join(err, ErrFailedCloseResponseBody)
		}
	}()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	statusCode = resp.StatusCode

	return
}

type HTTPClient struct {
	client HTTPClientI
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		client: &HTTPClientAdapter{
			client: &http.Client{Timeout: timeout},
		},
	}
}

func (h *HTTPClient) Get(url string, headers http.Header) (int, []byte, error) {
	return h.client.Get(url, headers)
}

func (h *HTTPClient) Put(url string, headers http.Header, body []byte) (int, []byte, error) {
	return h.client.Put(url, headers, body)
}

func (h *HTTPClient) Post(url string, headers http.Header, body []byte) (int, []byte, error) {
	return h.client.Post(url, headers, body)
}

func (h *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

func (h *HTTPClient) SetClient(mock HTTPClientI) {
	h.client = mock
}
