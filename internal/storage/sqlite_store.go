package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"

	_ "github.com/mattn/go-sqlite3"

	"github.com/geohomepro/property-insight/internal/domain"
)

// geohashPrecision 7 gives ~150m cells, plenty for district-level grouping.
const geohashPrecision = 7

// Geohash encodes a property coordinate at the store's precision.
func Geohash(lat, lng float64) string {
	return geohash.EncodeWithPrecision(lat, lng, geohashPrecision)
}

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS properties (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  lat REAL NOT NULL DEFAULT 0,
  lng REAL NOT NULL DEFAULT 0,
  geohash TEXT NOT NULL DEFAULT '',
  price REAL NOT NULL,
  size REAL NOT NULL,
  lot_size REAL NOT NULL,
  year_built INTEGER NOT NULL,
  property_type TEXT NOT NULL,
  school_district TEXT NOT NULL,
  features_json TEXT NOT NULL DEFAULT '[]',
  walk_score INTEGER NOT NULL,
  monthly_rent REAL NOT NULL DEFAULT 0,
  days_on_market INTEGER NOT NULL DEFAULT 0,
  price_per_sqft REAL NOT NULL DEFAULT 0,
  appreciation_pct REAL NOT NULL DEFAULT 0,
  investment_grade TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return err
	}

	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_properties_district ON properties(school_district);`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price);`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_properties_geohash ON properties(geohash);`); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) CountProperties() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM properties`).Scan(&n)
	return n, err
}

const propertyColumns = `id, title, lat, lng, price, size, lot_size, year_built,
property_type, school_district, features_json, walk_score, monthly_rent,
days_on_market, price_per_sqft, appreciation_pct, investment_grade`

// UpsertMany seeds the initial catalog without duplicating by id.
func (s *SQLiteStore) UpsertMany(items []domain.PropertyRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO properties
(id, title, lat, lng, geohash, price, size, lot_size, year_built, property_type,
 school_district, features_json, walk_score, monthly_rent, days_on_market,
 price_per_sqft, appreciation_pct, investment_grade)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range items {
		ft, _ := json.Marshal(p.Features)
		if _, err := stmt.Exec(
			p.ID, p.Title, p.Lat, p.Lng, Geohash(p.Lat, p.Lng),
			p.Price, p.Size, p.LotSize, p.YearBuilt, string(p.PropertyType),
			p.SchoolDistrict, string(ft), p.WalkScore, p.MonthlyRent,
			p.DaysOnMarket, p.PricePerSqft, p.AppreciationPct, string(p.InvestmentGrade),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) CreateProperty(p domain.PropertyRecord) (domain.PropertyRecord, error) {
	if p.ID == "" {
		p.ID = fmt.Sprintf("p-%d", time.Now().UnixNano())
	}
	ft, _ := json.Marshal(p.Features)

	_, err := s.db.Exec(`
INSERT INTO properties
(id, title, lat, lng, geohash, price, size, lot_size, year_built, property_type,
 school_district, features_json, walk_score, monthly_rent, days_on_market,
 price_per_sqft, appreciation_pct, investment_grade)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		p.ID, p.Title, p.Lat, p.Lng, Geohash(p.Lat, p.Lng),
		p.Price, p.Size, p.LotSize, p.YearBuilt, string(p.PropertyType),
		p.SchoolDistrict, string(ft), p.WalkScore, p.MonthlyRent,
		p.DaysOnMarket, p.PricePerSqft, p.AppreciationPct, string(p.InvestmentGrade),
	)
	return p, err
}

func (s *SQLiteStore) DeleteProperty(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func scanProperty(scan func(dest ...any) error) (domain.PropertyRecord, error) {
	var p domain.PropertyRecord
	var ftJSON, ptype, grade string

	err := scan(
		&p.ID, &p.Title, &p.Lat, &p.Lng, &p.Price, &p.Size, &p.LotSize,
		&p.YearBuilt, &ptype, &p.SchoolDistrict, &ftJSON, &p.WalkScore,
		&p.MonthlyRent, &p.DaysOnMarket, &p.PricePerSqft, &p.AppreciationPct, &grade,
	)
	if err != nil {
		return domain.PropertyRecord{}, err
	}
	p.PropertyType = domain.PropertyType(ptype)
	p.InvestmentGrade = domain.InvestmentGrade(grade)
	_ = json.Unmarshal([]byte(ftJSON), &p.Features)
	return p, nil
}

func (s *SQLiteStore) GetProperty(id string) (domain.PropertyRecord, bool, error) {
	row := s.db.QueryRow(`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row.Scan)
	if err == sql.ErrNoRows {
		return domain.PropertyRecord{}, false, nil
	}
	if err != nil {
		return domain.PropertyRecord{}, false, err
	}
	return p, true, nil
}

// AllProperties returns the full catalog in stable id order. The filter and
// ranking passes always work from a fresh read; nothing is cached between calls.
func (s *SQLiteStore) AllProperties() ([]domain.PropertyRecord, error) {
	rows, err := s.db.Query(`SELECT ` + propertyColumns + ` FROM properties ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PropertyRecord
	for rows.Next() {
		p, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPropertiesFiltered applies the coarse SQL pre-filters used by the
// listing endpoint. The fine-grained criteria semantics live in the filter
// engine; this only narrows the page the UI browses.
func (s *SQLiteStore) ListPropertiesFiltered(
	limit, offset int,
	district, propertyType string,
	minPrice, maxPrice float64,
	sortBy string,
) ([]domain.PropertyRecord, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := make([]string, 0, 4)
	args := make([]any, 0, 8)

	if strings.TrimSpace(district) != "" {
		where = append(where, "school_district = ?")
		args = append(args, district)
	}
	if strings.TrimSpace(propertyType) != "" {
		where = append(where, "property_type = ?")
		args = append(args, propertyType)
	}
	if minPrice > 0 {
		where = append(where, "price >= ?")
		args = append(args, minPrice)
	}
	if maxPrice > 0 {
		where = append(where, "price <= ?")
		args = append(args, maxPrice)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	orderSQL := "ORDER BY id"
	switch sortBy {
	case "price_asc":
		orderSQL = "ORDER BY price ASC"
	case "price_desc":
		orderSQL = "ORDER BY price DESC"
	case "walk_score_desc":
		orderSQL = "ORDER BY walk_score DESC"
	}

	countSQL := "SELECT COUNT(*) FROM properties " + whereSQL
	var total int
	if err := s.db.QueryRow(countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rowsSQL := "SELECT " + propertyColumns + " FROM properties\n" +
		whereSQL + "\n" + orderSQL + "\nLIMIT ? OFFSET ?"
	rowsArgs := append(append([]any{}, args...), limit, offset)

	rows, err := s.db.Query(rowsSQL, rowsArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.PropertyRecord
	for rows.Next() {
		p, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}
