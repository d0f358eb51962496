package whm

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// A mailbox as reported by Email::list_pops_with_disk.
type Mailbox struct {
	Email    string    `json:"email"`
	Domain   string    `json:"domain"`
	DiskUsed DiskUsage `json:"_diskused"`
}

// Disk usage in bytes. The API is not consistent about sending it as a
// number or as a numeric string, and it is sometimes fractional.
type DiskUsage int64

func (d *DiskUsage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		if text == "" {
			*d = 0
			return nil
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Errorf("bad disk usage value %s", data)
	}

	// float64(math.MaxInt64) rounds up to 2^63, which int64 can not hold.
	switch {
	case value < 0:
		*d = 0
	case value >= math.MaxInt64:
		*d = math.MaxInt64
	default:
		*d = DiskUsage(int64(value))
	}
	return nil
}

type listMailboxesResponse struct {
	Result *struct {
		Data []Mailbox `json:"data"`
	} `json:"result"`
}

// ListMailboxes returns the mailboxes of a single cPanel user. A response
// without the result structure is treated as the user having no mailboxes.
func (c *Client) ListMailboxes(ctx context.Context, user string) ([]Mailbox, error) {
	var response listMailboxesResponse

	params := url.Values{
		"api.version":               {"1"},
		"cpanel_jsonapi_user":       {user},
		"cpanel_jsonapi_module":     {"Email"},
		"cpanel_jsonapi_func":       {"list_pops_with_disk"},
		"cpanel_jsonapi_apiversion": {"3"},
	}
	if err := c.Get(ctx, "cpanel", params, &response); err != nil {
		return nil, errors.Wrapf(err, "could not list mailboxes of %s", user)
	}

	if response.Result == nil || response.Result.Data == nil {
		slog.Debug("no mailbox data", "user", user)
		return []Mailbox{}, nil
	}

	return response.Result.Data, nil
}
