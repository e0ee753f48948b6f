package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/venturemesh/partnermatch/internal/profile"
	"github.com/venturemesh/partnermatch/internal/scoring"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	payload TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS pair_scores (
	profile_a TEXT NOT NULL,
	profile_b TEXT NOT NULL,
	score_ab REAL NOT NULL,
	score_ba REAL NOT NULL,
	harmonic_mean REAL NOT NULL,
	percent REAL NOT NULL,
	breakdown TEXT NOT NULL,
	match_reason TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL,
	PRIMARY KEY (profile_a, profile_b)
);
CREATE INDEX IF NOT EXISTS idx_pair_scores_percent ON pair_scores(percent);
`

// Store persists profiles and pair scores in a local SQLite database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates the database file (and parent directory) when missing and
// applies the schema.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %q: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying store schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProfiles upserts the provided profiles keyed by id.
func (s *Store) SaveProfiles(ctx context.Context, profiles []*profile.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return err
		}

		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding profile %q: %w", p.ID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO profiles (id, name, payload, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, payload = excluded.payload, updated_at = excluded.updated_at`,
			p.ID, p.Name, string(payload), now,
		)
		if err != nil {
			return fmt.Errorf("saving profile %q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing profiles: %w", err)
	}

	s.logger.Debug("profiles saved", zap.Int("count", len(profiles)))
	return nil
}

// ListProfiles returns all stored profiles ordered by id.
func (s *Store) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*profile.Profile
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}

		var p profile.Profile
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, fmt.Errorf("decoding profile payload: %w", err)
		}
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}

// pairBreakdown is the JSON blob stored alongside the scalar columns.
type pairBreakdown struct {
	BreakdownAB []scoring.DimensionResult `json:"breakdown_ab"`
	BreakdownBA []scoring.DimensionResult `json:"breakdown_ba"`
}

// UpsertPairScore stores a pair score keyed by the unordered id pair. The
// pair key is canonicalized so (a,b) and (b,a) land on the same row; the
// directional fields are swapped to match.
func (s *Store) UpsertPairScore(ctx context.Context, score *scoring.PairScore) error {
	normalized := *score
	if normalized.ProfileA > normalized.ProfileB {
		normalized.ProfileA, normalized.ProfileB = normalized.ProfileB, normalized.ProfileA
		normalized.ScoreAB, normalized.ScoreBA = normalized.ScoreBA, normalized.ScoreAB
		normalized.BreakdownAB, normalized.BreakdownBA = normalized.BreakdownBA, normalized.BreakdownAB
	}

	breakdown, err := json.Marshal(pairBreakdown{
		BreakdownAB: normalized.BreakdownAB,
		BreakdownBA: normalized.BreakdownBA,
	})
	if err != nil {
		return fmt.Errorf("encoding breakdown: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pair_scores (profile_a, profile_b, score_ab, score_ba, harmonic_mean, percent, breakdown, match_reason, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_a, profile_b) DO UPDATE SET
			score_ab = excluded.score_ab,
			score_ba = excluded.score_ba,
			harmonic_mean = excluded.harmonic_mean,
			percent = excluded.percent,
			breakdown = excluded.breakdown,
			match_reason = excluded.match_reason,
			updated_at = excluded.updated_at`,
		normalized.ProfileA, normalized.ProfileB,
		normalized.ScoreAB, normalized.ScoreBA,
		normalized.HarmonicMean, normalized.Percent,
		string(breakdown), normalized.MatchReason,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting pair score %s/%s: %w", normalized.ProfileA, normalized.ProfileB, err)
	}

	return nil
}

// ListPairScores returns stored pair scores ordered by percent descending,
// optionally limited. A limit of 0 returns everything.
func (s *Store) ListPairScores(ctx context.Context, limit int) ([]*scoring.PairScore, error) {
	query := `SELECT profile_a, profile_b, score_ab, score_ba, harmonic_mean, percent, breakdown, match_reason
		FROM pair_scores ORDER BY percent DESC, profile_a, profile_b`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pair scores: %w", err)
	}
	defer rows.Close()

	var scores []*scoring.PairScore
	for rows.Next() {
		var ps scoring.PairScore
		var breakdown string
		if err := rows.Scan(&ps.ProfileA, &ps.ProfileB, &ps.ScoreAB, &ps.ScoreBA, &ps.HarmonicMean, &ps.Percent, &breakdown, &ps.MatchReason); err != nil {
			return nil, fmt.Errorf("scanning pair score row: %w", err)
		}

		var blob pairBreakdown
		if err := json.Unmarshal([]byte(breakdown), &blob); err != nil {
			return nil, fmt.Errorf("decoding breakdown for %s/%s: %w", ps.ProfileA, ps.ProfileB, err)
		}
		ps.BreakdownAB = blob.BreakdownAB
		ps.BreakdownBA = blob.BreakdownBA

		scores = append(scores, &ps)
	}

	return scores, rows.Err()
}
