package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"taxgate/internal/returns"
	id "taxgate/pkg/domain"
)

// PostgresStore persists VAT returns in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS vat_returns (
	vrn                          TEXT             NOT NULL,
	period_key                   TEXT             NOT NULL,
	vat_due_sales                DOUBLE PRECISION NOT NULL,
	vat_due_acquisitions         DOUBLE PRECISION NOT NULL,
	total_vat_due                DOUBLE PRECISION NOT NULL,
	vat_reclaimed_curr_period    DOUBLE PRECISION NOT NULL,
	net_vat_due                  DOUBLE PRECISION NOT NULL,
	total_value_sales_ex_vat     DOUBLE PRECISION NOT NULL,
	total_value_purchases_ex_vat DOUBLE PRECISION NOT NULL,
	total_value_goods_ex_vat     DOUBLE PRECISION NOT NULL,
	total_acquisitions_ex_vat    DOUBLE PRECISION NOT NULL,
	received_at                  TIMESTAMPTZ      NOT NULL,
	PRIMARY KEY (vrn, period_key)
)`

// Migrate creates the schema. Idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate vat_returns: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, ret *returns.VATReturn) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vat_returns (
			vrn, period_key, vat_due_sales, vat_due_acquisitions, total_vat_due,
			vat_reclaimed_curr_period, net_vat_due, total_value_sales_ex_vat,
			total_value_purchases_ex_vat, total_value_goods_ex_vat,
			total_acquisitions_ex_vat, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		ret.VRN.String(), ret.PeriodKey.String(), ret.VATDueSales, ret.VATDueAcquisitions,
		ret.TotalVATDue, ret.VATReclaimedCurrPd, ret.NetVATDue, ret.TotalValueSalesExVAT,
		ret.TotalValuePurchExVAT, ret.TotalValueGoodsExVAT, ret.TotalAcquisitionsExVAT,
		ret.ReceivedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return returns.ErrDuplicate
		}
		return fmt.Errorf("save return: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, vrn id.VRN, periodKey id.PeriodKey) (*returns.VATReturn, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT vat_due_sales, vat_due_acquisitions, total_vat_due,
			vat_reclaimed_curr_period, net_vat_due, total_value_sales_ex_vat,
			total_value_purchases_ex_vat, total_value_goods_ex_vat,
			total_acquisitions_ex_vat, received_at
		FROM vat_returns WHERE vrn = $1 AND period_key = $2`,
		vrn.String(), periodKey.String(),
	)

	ret := returns.VATReturn{VRN: vrn, PeriodKey: periodKey, Finalised: true}
	err := row.Scan(
		&ret.VATDueSales, &ret.VATDueAcquisitions, &ret.TotalVATDue,
		&ret.VATReclaimedCurrPd, &ret.NetVATDue, &ret.TotalValueSalesExVAT,
		&ret.TotalValuePurchExVAT, &ret.TotalValueGoodsExVAT,
		&ret.TotalAcquisitionsExVAT, &ret.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, returns.ErrNotFound
		}
		return nil, fmt.Errorf("find return: %w", err)
	}
	return &ret, nil
}

func (s *PostgresStore) ListPeriodKeys(ctx context.Context, vrn id.VRN) ([]id.PeriodKey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT period_key FROM vat_returns WHERE vrn = $1 ORDER BY period_key`,
		vrn.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list period keys: %w", err)
	}
	defer rows.Close()

	var keys []id.PeriodKey
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan period key: %w", err)
		}
		keys = append(keys, id.PeriodKey(key))
	}
	return keys, rows.Err()
}
