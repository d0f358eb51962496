package whm

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ksdme/mailreport/internal/config"
	"github.com/pkg/errors"
)

// A client for the WHM json-api. Every call is a single authenticated GET,
// there is no retrying of any sort.
type Client struct {
	BaseURL string
	Debug   bool

	authorization string
	http          *http.Client
}

func NewClient(settings config.Settings) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !settings.VerifySSL,
	}

	return &Client{
		BaseURL: fmt.Sprintf("https://%s/json-api", net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port))),
		Debug:   settings.Debug,

		authorization: fmt.Sprintf("whm %s:%s", settings.User, settings.Token),
		http: &http.Client{
			Transport: transport,
			Timeout:   settings.Timeout,
		},
	}
}

// Get calls the named API function and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, function string, params url.Values, out any) error {
	endpoint := c.BaseURL + "/" + function
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	request.Header.Set("Authorization", c.authorization)
	request.Header.Set("Accept", "application/json")

	if c.Debug {
		slog.Debug("api request", "function", function, "url", endpoint)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return &NetworkError{Function: function, Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return &NetworkError{Function: function, Err: err}
	}

	if c.Debug {
		slog.Debug("api response", "function", function, "status", response.StatusCode, "body", string(body))
	}

	if response.StatusCode != http.StatusOK {
		return &StatusError{Function: function, StatusCode: response.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Function: function, Err: err}
	}

	return nil
}
