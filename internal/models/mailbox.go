package models

import (
	"strconv"

	"github.com/uptrace/bun"
)

// A single mailbox line of the report. Records are built once per run
// and never modified afterwards.
type Mailbox struct {
	bun.BaseModel `bun:"table:mailboxes,alias:m"`

	// Position in the collection, used to keep orderings stable.
	Seq int64 `bun:",pk"`

	Account   string `bun:",notnull"`
	Email     string `bun:",notnull"`
	Domain    string `bun:",notnull"`
	SizeBytes int64  `bun:",notnull"`
	SizeHuman string `bun:",notnull"`
}

// Column names used for both the tables and the CSV export.
var Columns = []string{"cPanel_User", "Email", "Domain", "Size_Bytes", "Size_Human"}

func (m Mailbox) Row() []string {
	return []string{
		m.Account,
		m.Email,
		m.Domain,
		strconv.FormatInt(m.SizeBytes, 10),
		m.SizeHuman,
	}
}
