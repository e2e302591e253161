// Package catalog provides read-only access to the scraper-maintained
// product catalog and resolves free-text product queries against it.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver for the production catalog
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver for dev/test catalogs

	"github.com/grimdealz/dealscout/pkg/domain"
)

//go:embed schema.sql
var schemaSQL string

// errPermanent marks query failures repeater must not retry
var errPermanent = errors.New("permanent catalog error")

// Config represents catalog database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store is the read-only catalog connection. The DSN selects the driver:
// postgres:// for the scraper-maintained catalog, anything else is SQLite.
type Store struct {
	db *sqlx.DB
}

// NewStore opens the catalog connection. For SQLite DSNs the embedded schema
// is applied so dev and test catalogs are self-contained; the production
// Postgres schema is owned by the scrapers and never touched here.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	driver := "sqlite"
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver = "pgx"
	}

	db, err := sqlx.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if driver == "sqlite" && (cfg.DSN == ":memory:" || strings.Contains(cfg.DSN, "mode=memory")) {
		maxOpen = 1 // each connection to an in-memory db is a separate db
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if driver == "sqlite" {
		pragmas := []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
			"PRAGMA busy_timeout = 5000",
		}
		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				return nil, fmt.Errorf("execute %s: %w", pragma, err)
			}
		}
		if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
			return nil, fmt.Errorf("init catalog schema: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// productSQL is a product row for SQL operations
type productSQL struct {
	ID           string  `db:"id"`
	Slug         string  `db:"slug"`
	Name         string  `db:"name"`
	GWItemNumber string  `db:"gw_item_number"`
	RRPUSD       float64 `db:"gw_rrp_usd"`
}

// listingSQL is a joined listing+store row for SQL operations
type listingSQL struct {
	StoreName   string  `db:"store_name"`
	StoreSlug   string  `db:"store_slug"`
	Price       float64 `db:"current_price"`
	DiscountPct float64 `db:"discount_pct"`
	InStock     bool    `db:"in_stock"`
	URL         string  `db:"url"`
}

const productColumns = "id, slug, name, COALESCE(gw_item_number, '') AS gw_item_number, COALESCE(gw_rrp_usd, 0) AS gw_rrp_usd"

// SearchByName finds active products whose name contains the query,
// case-insensitive
func (s *Store) SearchByName(ctx context.Context, query string) ([]domain.Product, error) {
	stmt := s.db.Rebind(fmt.Sprintf(
		`SELECT %s FROM products WHERE is_active = TRUE AND LOWER(name) LIKE ? ESCAPE '\' ORDER BY name`, productColumns))

	var rows []productSQL
	err := s.query(ctx, func() error {
		rows = rows[:0]
		return s.db.SelectContext(ctx, &rows, stmt, likePattern(query))
	})
	if err != nil {
		return nil, fmt.Errorf("search products by name: %w", err)
	}
	return toProducts(rows), nil
}

// SearchByTokens finds active products whose name contains every token,
// case-insensitive (logical AND across tokens)
func (s *Store) SearchByTokens(ctx context.Context, tokens []string) ([]domain.Product, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]any, 0, len(tokens))
	for _, token := range tokens {
		clauses = append(clauses, `LOWER(name) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(token))
	}
	stmt := s.db.Rebind(fmt.Sprintf("SELECT %s FROM products WHERE is_active = TRUE AND %s ORDER BY name",
		productColumns, strings.Join(clauses, " AND ")))

	var rows []productSQL
	err := s.query(ctx, func() error {
		rows = rows[:0]
		return s.db.SelectContext(ctx, &rows, stmt, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("search products by tokens: %w", err)
	}
	return toProducts(rows), nil
}

// BestListing returns the lowest-price in-stock listing for a product with
// its store attached, or nil when no in-stock listing exists
func (s *Store) BestListing(ctx context.Context, productID string) (*domain.Listing, error) {
	stmt := s.db.Rebind(`
		SELECT st.name AS store_name, st.slug AS store_slug,
		       l.current_price, COALESCE(l.discount_pct, 0) AS discount_pct, l.in_stock,
		       COALESCE(NULLIF(l.affiliate_url, ''), l.store_product_url) AS url
		FROM listings l
		JOIN stores st ON st.id = l.store_id
		WHERE l.product_id = ? AND l.in_stock = TRUE
		ORDER BY l.current_price ASC
		LIMIT 1`)

	var row listingSQL
	err := s.query(ctx, func() error {
		return s.db.GetContext(ctx, &row, stmt, productID)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get best listing: %w", err)
	}

	return &domain.Listing{
		StoreName:   row.StoreName,
		StoreSlug:   row.StoreSlug,
		Price:       row.Price,
		DiscountPct: row.DiscountPct,
		InStock:     row.InStock,
		URL:         row.URL,
	}, nil
}

// query runs op with backoff on SQLite busy errors; everything else stops
// retrying immediately
func (s *Store) query(ctx context.Context, op func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		err := op()
		if err == nil || isLockError(err) {
			return err
		}
		return fmt.Errorf("%w: %w", errPermanent, err)
	}, errPermanent)
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// likePattern lowers the term and escapes LIKE metacharacters
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}

func toProducts(rows []productSQL) []domain.Product {
	products := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, domain.Product{
			ID:           r.ID,
			Slug:         r.Slug,
			Name:         r.Name,
			GWItemNumber: r.GWItemNumber,
			RRPUSD:       r.RRPUSD,
		})
	}
	return products
}
