package whm

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

type listAccountsResponse struct {
	Data *struct {
		Acct []struct {
			User string `json:"user"`
		} `json:"acct"`
	} `json:"data"`
}

// ListAccounts returns the cPanel users on the server in the order the API
// lists them. An empty listing is an error, unlike an empty mailbox listing.
func (c *Client) ListAccounts(ctx context.Context) ([]string, error) {
	var response listAccountsResponse

	params := url.Values{"api.version": {"1"}}
	if err := c.Get(ctx, "listaccts", params, &response); err != nil {
		return nil, errors.Wrap(err, "could not list accounts")
	}

	if response.Data == nil || len(response.Data.Acct) == 0 {
		return nil, ErrNoAccounts
	}

	users := make([]string, 0, len(response.Data.Acct))
	for _, account := range response.Data.Acct {
		users = append(users, account.User)
	}

	return users, nil
}
