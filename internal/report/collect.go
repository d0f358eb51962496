package report

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ksdme/mailreport/internal/models"
	"github.com/ksdme/mailreport/internal/utils"
	"github.com/ksdme/mailreport/internal/whm"
)

// The part of the API the report depends on.
type API interface {
	ListAccounts(ctx context.Context) ([]string, error)
	ListMailboxes(ctx context.Context, user string) ([]whm.Mailbox, error)
}

// Returns the accounts to process. A non empty comma separated filter
// replaces the listing entirely.
func SelectAccounts(listed []string, filter string) []string {
	if strings.TrimSpace(filter) == "" {
		return listed
	}

	seen := map[string]bool{}
	selected := []string{}
	for _, user := range strings.Split(filter, ",") {
		user = strings.TrimSpace(user)
		if user == "" || seen[user] {
			continue
		}
		seen[user] = true
		selected = append(selected, user)
	}

	return selected
}

// Fetches the mailboxes of every account, one account at a time, and turns
// them into report records. Accounts without mailbox data contribute nothing,
// but any error from the API aborts the collection.
func Collect(ctx context.Context, api API, accounts []string, hideEmpty bool) ([]models.Mailbox, error) {
	records := []models.Mailbox{}

	for _, user := range accounts {
		mailboxes, err := api.ListMailboxes(ctx, user)
		if err != nil {
			return nil, err
		}

		skipped := 0
		for _, mailbox := range mailboxes {
			size := int64(mailbox.DiskUsed)
			if hideEmpty && size == 0 {
				skipped++
				continue
			}

			records = append(records, models.Mailbox{
				Seq:       int64(len(records) + 1),
				Account:   user,
				Email:     mailbox.Email,
				Domain:    mailbox.Domain,
				SizeBytes: size,
				SizeHuman: utils.HumanSize(size),
			})
		}

		slog.Debug("collected mailboxes", "user", user, "count", len(mailboxes), "skipped", skipped)
	}

	return records, nil
}
