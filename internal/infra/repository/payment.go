package repository

import (
	"context"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/payment"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

const paymentColumns = `
	id, booking_id, method, amount_cents, status, gateway_transaction_id,
	refund_cents, refunded_at, created_at, updated_at
`

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	const query = `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		p.ID(), p.BookingID(), string(p.Method()), p.Amount().Amount(), string(p.Status()),
		pgconv.StringPtrToPgtype(p.GatewayTransactionID()),
		p.RefundAmount().Amount(), pgconv.TimePtrToPgtype(p.RefundedAt()),
		pgconv.TimeToPgtype(p.CreatedAt()), pgconv.TimeToPgtype(p.UpdatedAt()),
	)
	if err != nil {
		return wrapWriteErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) FindByGatewayTransactionID(ctx context.Context, txID string) (*payment.Payment, error) {
	// Locked so concurrent gateway callbacks for the same transaction
	// serialize instead of both reading the non-terminal row.
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE gateway_transaction_id = $1 FOR UPDATE`
	p, err := scanPayment(r.db.QueryRow(ctx, query, txID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found by gateway transaction id", err, infra.KindNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *PaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*payment.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find payments by booking", err)
	}
	defer rows.Close()

	var result []*payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payments", err)
	}
	return result, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	const query = `
		UPDATE payments
		SET status = $1, refund_cents = $2, refunded_at = $3, updated_at = $4
		WHERE id = $5`

	tag, err := r.db.Exec(ctx, query,
		string(p.Status()), p.RefundAmount().Amount(),
		pgconv.TimePtrToPgtype(p.RefundedAt()), pgconv.TimeToPgtype(p.UpdatedAt()), p.ID(),
	)
	if err != nil {
		return wrapWriteErr("failed to update payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found for update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PaymentRepository) CompletedAmount(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM payments
		WHERE booking_id = $1 AND status = 'completed'`

	var total int64
	if err := r.db.QueryRow(ctx, query, bookingID).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to sum completed payments", err)
	}
	return total, nil
}

func scanPayment(row rowScanner) (*payment.Payment, error) {
	var (
		id, bookingID uuid.UUID
		method        string
		amountCents   int64
		status        string
		gatewayTxID   pgtype.Text
		refundCents   int64
		refundedAt    pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)
	err := row.Scan(&id, &bookingID, &method, &amountCents, &status,
		&gatewayTxID, &refundCents, &refundedAt, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan payment", err)
	}

	m, err := payment.NewMethod(method)
	if err != nil {
		return nil, infra.WrapRepoErr("stored payment method is unknown", err)
	}

	return payment.Reconstruct(
		id, bookingID, m,
		booking.MustMoney(amountCents),
		payment.Status(status),
		pgconv.StringPtrFromPgtype(gatewayTxID),
		booking.MustMoney(refundCents),
		pgconv.TimePtrFromPgtype(refundedAt),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
