// Package postgres implements the repository ports over pgx. Session
// transcripts and applications are stored as JSONB documents; saves use
// upsert with optimistic version locking.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
	pgdb "github.com/vittamlabs/origination/pkg/postgres"
)

// SessionRepo implements port.SessionRepository.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepo creates a new repository backed by PostgreSQL.
func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Save persists a session (upsert by ID with optimistic locking).
func (r *SessionRepo) Save(ctx context.Context, sess model.Session) error {
	transcript, err := json.Marshal(toTurnRows(sess.Transcript()))
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	application, err := json.Marshal(toApplicationRow(sess.Application()))
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}
	var identity []byte
	if sess.Identity() != nil {
		identity, err = json.Marshal(toIdentityRow(*sess.Identity()))
		if err != nil {
			return fmt.Errorf("marshal identity: %w", err)
		}
	}
	processed, err := json.Marshal(sess.ProcessedMessages())
	if err != nil {
		return fmt.Errorf("marshal processed messages: %w", err)
	}

	query := `
		INSERT INTO sessions (
			id, stage, transcript, application, identity,
			verify_attempts, slip_reentries, processed, active,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			stage           = EXCLUDED.stage,
			transcript      = EXCLUDED.transcript,
			application     = EXCLUDED.application,
			identity        = EXCLUDED.identity,
			verify_attempts = EXCLUDED.verify_attempts,
			slip_reentries  = EXCLUDED.slip_reentries,
			processed       = EXCLUDED.processed,
			active          = EXCLUDED.active,
			version         = sessions.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE sessions.version = $10
	`
	tag, err := r.pool.Exec(ctx, query,
		sess.ID(), sess.Stage().String(),
		transcript, application, identity,
		sess.VerifyAttempts(), sess.SlipReentries(),
		processed, sess.Active(),
		sess.Version(), sess.CreatedAt(), sess.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionConflict
	}
	return nil
}

// FindByID retrieves a single session.
func (r *SessionRepo) FindByID(ctx context.Context, id string) (model.Session, error) {
	query := `
		SELECT id, stage, transcript, application, identity,
		       verify_attempts, slip_reentries, processed, active,
		       version, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	sess, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Session{}, port.ErrSessionNotFound
	}
	return sess, err
}

// Delete erases a session, its transcript, and any sanction records issued
// for it, in one transaction.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	return pgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM sanction_records WHERE session_id = $1`, id); err != nil {
			return fmt.Errorf("delete sanction records: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return port.ErrSessionNotFound
		}
		return nil
	})
}

func scanSession(row pgx.Row) (model.Session, error) {
	var (
		id, stageStr                   string
		transcript, application        []byte
		identity                       []byte
		verifyAttempts, slipReentries  int
		processed                      []byte
		active                         bool
		version                        int
		createdAt, updatedAt           time.Time
	)

	err := row.Scan(
		&id, &stageStr, &transcript, &application, &identity,
		&verifyAttempts, &slipReentries, &processed, &active,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Session{}, err
	}

	stage, err := valueobject.NewStage(stageStr)
	if err != nil {
		return model.Session{}, fmt.Errorf("parse stage: %w", err)
	}

	var turnRows []turnRow
	if err := json.Unmarshal(transcript, &turnRows); err != nil {
		return model.Session{}, fmt.Errorf("unmarshal transcript: %w", err)
	}
	var appRow applicationRow
	if err := json.Unmarshal(application, &appRow); err != nil {
		return model.Session{}, fmt.Errorf("unmarshal application: %w", err)
	}
	var ident *model.VerifiedIdentity
	if len(identity) > 0 {
		var ir identityRow
		if err := json.Unmarshal(identity, &ir); err != nil {
			return model.Session{}, fmt.Errorf("unmarshal identity: %w", err)
		}
		v := ir.toModel()
		ident = &v
	}
	var processedMap map[string]string
	if err := json.Unmarshal(processed, &processedMap); err != nil {
		return model.Session{}, fmt.Errorf("unmarshal processed messages: %w", err)
	}

	return model.ReconstructSession(
		id, stage,
		fromTurnRows(turnRows),
		appRow.toModel(),
		ident,
		verifyAttempts, slipReentries,
		processedMap,
		active, version,
		createdAt, updatedAt,
	), nil
}

// ---------------------------------------------------------------------------
// JSONB row shapes
// ---------------------------------------------------------------------------

type turnRow struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

func toTurnRows(turns []model.Turn) []turnRow {
	out := make([]turnRow, 0, len(turns))
	for _, t := range turns {
		out = append(out, turnRow{Role: string(t.Role), Content: t.Content, At: t.At})
	}
	return out
}

func fromTurnRows(rows []turnRow) []model.Turn {
	out := make([]model.Turn, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Turn{Role: model.TurnRole(r.Role), Content: r.Content, At: r.At})
	}
	return out
}

type applicationRow struct {
	Name         string          `json:"name,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	DateOfBirth  string          `json:"date_of_birth,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	TenureMonths int             `json:"tenure_months"`
	SalarySlip   bool            `json:"salary_slip"`
}

func toApplicationRow(a model.Application) applicationRow {
	return applicationRow{
		Name:         a.Name,
		Phone:        a.Phone,
		Address:      a.Address,
		DateOfBirth:  a.DateOfBirth,
		Amount:       a.Amount,
		TenureMonths: a.TenureMonths,
		SalarySlip:   a.SalarySlip,
	}
}

func (r applicationRow) toModel() model.Application {
	return model.Application{
		Name:         r.Name,
		Phone:        r.Phone,
		Address:      r.Address,
		DateOfBirth:  r.DateOfBirth,
		Amount:       r.Amount,
		TenureMonths: r.TenureMonths,
		SalarySlip:   r.SalarySlip,
	}
}

type identityRow struct {
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth string    `json:"date_of_birth"`
	VerifiedAt  time.Time `json:"verified_at"`
}

func toIdentityRow(v model.VerifiedIdentity) identityRow {
	return identityRow{
		Name:        v.Name,
		Phone:       v.Phone,
		Address:     v.Address,
		DateOfBirth: v.DateOfBirth,
		VerifiedAt:  v.VerifiedAt,
	}
}

func (r identityRow) toModel() model.VerifiedIdentity {
	return model.VerifiedIdentity{
		Name:        r.Name,
		Phone:       r.Phone,
		Address:     r.Address,
		DateOfBirth: r.DateOfBirth,
		VerifiedAt:  r.VerifiedAt,
	}
}
