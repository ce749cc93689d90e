package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"voxguard/api/internal/voice"
)

var ErrNotFound = sql.ErrNoRows

// DetectRepo caches detection results by audio hash so a repeat submission
// of the same clip skips a model call. Conversation history is deliberately
// not persisted anywhere.
type DetectRepo struct{ DB *sql.DB }

func NewDetectRepo(db *sql.DB) *DetectRepo { return &DetectRepo{DB: db} }

type DetectionRow struct {
	ID        int64
	CreatedAt time.Time
	AudioHash string
	Engine    string
	Model     string
	Result    voice.DetectionResult
}

// FindByHash returns the freshest cached result for (audio_hash, engine,
// model). With maxAge > 0 stale rows are treated as missing.
func (r *DetectRepo) FindByHash(ctx context.Context, audioHash, engine, model string, maxAge time.Duration) (*DetectionRow, error) {
	const q = `
select id, created_at, audio_hash, engine, model, result_json
from detections
where audio_hash = $1 and engine = $2 and model = $3
order by created_at desc
limit 1`
	row := r.DB.QueryRowContext(ctx, q, audioHash, engine, model)

	var (
		id      int64
		ts      time.Time
		hash    string
		engName string
		mdl     string
		js      []byte
	)
	if err := row.Scan(&id, &ts, &hash, &engName, &mdl, &js); err != nil {
		return nil, err
	}
	if maxAge > 0 && time.Since(ts) > maxAge {
		return nil, ErrNotFound
	}
	var res voice.DetectionResult
	if err := json.Unmarshal(js, &res); err != nil {
		// broken row: treat as missing rather than serve garbage
		return nil, ErrNotFound
	}
	if res.Status != voice.StatusSuccess {
		return nil, ErrNotFound
	}
	return &DetectionRow{
		ID:        id,
		CreatedAt: ts,
		AudioHash: hash,
		Engine:    engName,
		Model:     mdl,
		Result:    res,
	}, nil
}

// Upsert stores one successful detection. A later result for the same
// (audio_hash, engine, model) replaces the earlier one.
func (r *DetectRepo) Upsert(ctx context.Context, audioHash, engine, model string, res voice.DetectionResult) error {
	js, _ := json.Marshal(res)
	const q = `
insert into detections (
  audio_hash, engine, model,
  language, classification, confidence, result_json
) values ($1,$2,$3,$4,$5,$6,$7)
on conflict (audio_hash, engine, model) do update
set language = excluded.language,
    classification = excluded.classification,
    confidence = excluded.confidence,
    result_json = excluded.result_json,
    created_at = now()`
	_, err := r.DB.ExecContext(ctx, q,
		audioHash, engine, model,
		string(res.Language), string(res.Classification), res.ConfidenceScore, js)
	return err
}
