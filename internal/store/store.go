package store

import (
	"context"
	"database/sql"

	"github.com/ksdme/mailreport/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Rows are inserted in batches of this size.
const batchSize = 500

// An in memory table of mailbox records. It only lives as long as the run,
// grouping and ordering for the report are plain queries against it.
type Store struct {
	db *bun.DB
}

// A group of records with its summed size. FirstSeen is the smallest Seq
// in the group and is what keeps tied groups in collection order.
type Total struct {
	Name       string
	TotalBytes int64
	FirstSeen  int64
}

func Open(ctx context.Context) (*Store, error) {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "opening db failed")
	}
	// Every connection to :memory: is its own database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*models.Mailbox)(nil)).Exec(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "could not create mailboxes table")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Insert(ctx context.Context, records []models.Mailbox) error {
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))

		batch := records[start:end]
		if _, err := s.db.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return errors.Wrap(err, "could not insert mailboxes")
		}
	}
	return nil
}

// All records in collection order.
func (s *Store) All(ctx context.Context) ([]models.Mailbox, error) {
	var records []models.Mailbox

	err := s.db.
		NewSelect().
		Model(&records).
		OrderExpr("m.seq ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not query mailboxes")
	}

	return records, nil
}

// The n largest records, ties resolved by collection order.
func (s *Store) Top(ctx context.Context, n int) ([]models.Mailbox, error) {
	var records []models.Mailbox

	err := s.db.
		NewSelect().
		Model(&records).
		OrderExpr("m.size_bytes DESC, m.seq ASC").
		Limit(n).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not query top mailboxes")
	}

	return records, nil
}

// Per account totals, largest first.
func (s *Store) AccountTotals(ctx context.Context) ([]Total, error) {
	var totals []Total

	err := s.db.
		NewSelect().
		Model((*models.Mailbox)(nil)).
		ColumnExpr("m.account AS name").
		ColumnExpr("SUM(m.size_bytes) AS total_bytes").
		ColumnExpr("MIN(m.seq) AS first_seen").
		GroupExpr("m.account").
		OrderExpr("total_bytes DESC, first_seen ASC").
		Scan(ctx, &totals)
	if err != nil {
		return nil, errors.Wrap(err, "could not query account totals")
	}

	return totals, nil
}

// Per domain totals of one account, in the order the domains first
// appeared in the collection.
func (s *Store) DomainTotals(ctx context.Context, account string) ([]Total, error) {
	var totals []Total

	err := s.db.
		NewSelect().
		Model((*models.Mailbox)(nil)).
		ColumnExpr("m.domain AS name").
		ColumnExpr("SUM(m.size_bytes) AS total_bytes").
		ColumnExpr("MIN(m.seq) AS first_seen").
		Where("m.account = ?", account).
		GroupExpr("m.domain").
		OrderExpr("first_seen ASC").
		Scan(ctx, &totals)
	if err != nil {
		return nil, errors.Wrapf(err, "could not query domain totals of %s", account)
	}

	return totals, nil
}

// Records of one account and domain, largest first.
func (s *Store) Mailboxes(ctx context.Context, account string, domain string) ([]models.Mailbox, error) {
	var records []models.Mailbox

	err := s.db.
		NewSelect().
		Model(&records).
		Where("m.account = ?", account).
		Where("m.domain = ?", domain).
		OrderExpr("m.size_bytes DESC, m.seq ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not query mailboxes of %s", account)
	}

	return records, nil
}

func (s *Store) GrandTotal(ctx context.Context) (int64, error) {
	var total int64

	err := s.db.
		NewSelect().
		Model((*models.Mailbox)(nil)).
		ColumnExpr("COALESCE(SUM(m.size_bytes), 0)").
		Scan(ctx, &total)
	if err != nil {
		return 0, errors.Wrap(err, "could not query grand total")
	}

	return total, nil
}
