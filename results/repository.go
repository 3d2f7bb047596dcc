// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package results

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a cluster does not exist.
var ErrNotFound = errors.New("not found")

// ClusterRepository handles persistence of a run.
type ClusterRepository interface {
	// CreateSchema creates the bins, clusters and cluster_members tables
	CreateSchema() error

	// SaveTables replaces the stored run with t
	SaveTables(t *Tables) error

	// ListBins returns every bin ordered by number
	ListBins() ([]*BinRecord, error)

	// ListClusters returns the clusters with at least minNgal members,
	// optionally restricted to one bin
	ListClusters(bin *int, minNgal int) ([]*ClusterRecord, error)

	// GetCluster returns a cluster and its members in discovery order
	GetCluster(bin, num int) (*ClusterRecord, []*MemberRecord, error)

	// CountClusters returns the total number of clusters
	CountClusters() (int, error)
}

type sqlClusterRepository struct {
	db *sql.DB
}

// NewClusterRepository creates a repository backed by db.
func NewClusterRepository(db *sql.DB) ClusterRepository {
	return &sqlClusterRepository{db: db}
}

func (r *sqlClusterRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS bins (
			num INTEGER PRIMARY KEY,
			z DOUBLE NOT NULL,
			z_min DOUBLE NOT NULL,
			z_max DOUBLE NOT NULL,
			link_r DOUBLE NOT NULL,
			da DOUBLE NOT NULL,
			rfriend DOUBLE NOT NULL,
			galaxies INTEGER NOT NULL,
			found INTEGER NOT NULL,
			kept INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS clusters (
			bin INTEGER NOT NULL,
			num INTEGER NOT NULL,
			ngal INTEGER NOT NULL,
			ra_deg DOUBLE NOT NULL,
			dec_deg DOUBLE NOT NULL,
			z DOUBLE NOT NULL,
			z_median DOUBLE NOT NULL,
			radius DOUBLE NOT NULL,
			h3_cell BIGINT NOT NULL,
			PRIMARY KEY (bin, num)
		);

		CREATE TABLE IF NOT EXISTS cluster_members (
			bin INTEGER NOT NULL,
			cluster INTEGER NOT NULL,
			pos INTEGER NOT NULL,
			num INTEGER NOT NULL,
			id UBIGINT NOT NULL,
			ra_deg DOUBLE NOT NULL,
			dec_deg DOUBLE NOT NULL,
			z DOUBLE NOT NULL,
			PRIMARY KEY (bin, cluster, pos)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating results schema: %w", err)
	}

	return nil
}

func (r *sqlClusterRepository) SaveTables(t *Tables) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				err = errors.Join(err, rErr)
			}
		}
	}()

	for _, table := range []string{"cluster_members", "clusters", "bins"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err = insertBins(tx, t.Bins); err != nil {
		return err
	}

	if err = insertClusters(tx, t.Clusters); err != nil {
		return err
	}

	if err = insertMembers(tx, t.Members); err != nil {
		return err
	}

	return tx.Commit()
}

func insertBins(tx *sql.Tx, bins []*BinRecord) error {
	stmt, err := tx.Prepare(`
		INSERT INTO bins(num, z, z_min, z_max, link_r, da, rfriend, galaxies, found, kept)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing bin insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bins {
		_, err := stmt.Exec(b.Num, b.Z, b.ZMin, b.ZMax, b.LinkR, b.Da, b.RFriend, b.Galaxies, b.Found, b.Kept)
		if err != nil {
			return fmt.Errorf("inserting bin %d: %w", b.Num, err)
		}
	}

	return nil
}

func insertClusters(tx *sql.Tx, clusters []*ClusterRecord) error {
	stmt, err := tx.Prepare(`
		INSERT INTO clusters(bin, num, ngal, ra_deg, dec_deg, z, z_median, radius, h3_cell)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing cluster insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range clusters {
		_, err := stmt.Exec(c.Bin, c.Num, c.NGal, c.RA, c.Dec, c.Z, c.ZMedian, c.Radius, c.Cell)
		if err != nil {
			return fmt.Errorf("inserting cluster %d in bin %d: %w", c.Num, c.Bin, err)
		}
	}

	return nil
}

func insertMembers(tx *sql.Tx, members []*MemberRecord) error {
	stmt, err := tx.Prepare(`
		INSERT INTO cluster_members(bin, cluster, pos, num, id, ra_deg, dec_deg, z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing member insert: %w", err)
	}
	defer stmt.Close()

	type key struct{ bin, cluster int }

	pos := make(map[key]int)

	for _, m := range members {
		k := key{m.Bin, m.Cluster}

		_, err := stmt.Exec(m.Bin, m.Cluster, pos[k], m.Num, m.ID, m.RA, m.Dec, m.Z)
		if err != nil {
			return fmt.Errorf("inserting member %d of cluster %d in bin %d: %w", m.Num, m.Cluster, m.Bin, err)
		}

		pos[k]++
	}

	return nil
}

func (r *sqlClusterRepository) ListBins() ([]*BinRecord, error) {
	rows, err := r.db.Query(`
		SELECT num, z, z_min, z_max, link_r, da, rfriend, galaxies, found, kept
		FROM bins
		ORDER BY num
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bins []*BinRecord

	for rows.Next() {
		b := &BinRecord{}
		if err := rows.Scan(
			&b.Num, &b.Z, &b.ZMin, &b.ZMax, &b.LinkR,
			&b.Da, &b.RFriend, &b.Galaxies, &b.Found, &b.Kept,
		); err != nil {
			return nil, err
		}

		bins = append(bins, b)
	}

	return bins, rows.Err()
}

var clusterSelect = `
	SELECT bin, num, ngal, ra_deg, dec_deg, z, z_median, radius, h3_cell
	FROM clusters
`

func scanCluster(row interface{ Scan(dest ...any) error }) (*ClusterRecord, error) {
	c := &ClusterRecord{}

	err := row.Scan(&c.Bin, &c.Num, &c.NGal, &c.RA, &c.Dec, &c.Z, &c.ZMedian, &c.Radius, &c.Cell)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *sqlClusterRepository) ListClusters(bin *int, minNgal int) ([]*ClusterRecord, error) {
	query := clusterSelect + " WHERE ngal >= ?"
	args := []any{minNgal}

	if bin != nil {
		query += " AND bin = ?"

		args = append(args, *bin)
	}

	query += " ORDER BY bin, num"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clusters []*ClusterRecord

	for rows.Next() {
		c, err := scanCluster(rows)
		if err != nil {
			return nil, err
		}

		clusters = append(clusters, c)
	}

	return clusters, rows.Err()
}

func (r *sqlClusterRepository) GetCluster(bin, num int) (*ClusterRecord, []*MemberRecord, error) {
	c, err := scanCluster(r.db.QueryRow(clusterSelect+" WHERE bin = ? AND num = ?", bin, num))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("cluster %d in bin %d: %w", num, bin, ErrNotFound)
	}

	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(`
		SELECT bin, cluster, num, id, ra_deg, dec_deg, z
		FROM cluster_members
		WHERE bin = ? AND cluster = ?
		ORDER BY pos
	`, bin, num)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var members []*MemberRecord

	for rows.Next() {
		m := &MemberRecord{}
		if err := rows.Scan(&m.Bin, &m.Cluster, &m.Num, &m.ID, &m.RA, &m.Dec, &m.Z); err != nil {
			return nil, nil, err
		}

		members = append(members, m)
	}

	return c, members, rows.Err()
}

func (r *sqlClusterRepository) CountClusters() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM clusters").Scan(&count)

	return count, err
}
