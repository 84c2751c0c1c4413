package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pipetrack/internal/models"
)

// ErrDuplicateOrder reports a violation of the one-order-per-lead
// constraint (orders_lead_id_key).
var ErrDuplicateOrder = errors.New("order already exists for this lead")

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and returns the new id. A second order for the
// same lead is rejected by the unique constraint, not just by the
// client-side eligibility filter.
func (r *OrderRepository) Create(order *models.Order) (int64, error) {
	const query = `
		INSERT INTO orders (lead_id, status, courier, tracking_number, dispatch_date, email_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(query,
		order.LeadID,
		order.Status,
		order.Courier,
		order.TrackingNumber,
		order.DispatchDate,
		order.EmailSent,
		order.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, ErrDuplicateOrder
		}
		return 0, fmt.Errorf("create order: %w", err)
	}
	return id, nil
}

const orderWithLeadColumns = `
	o.id, o.lead_id, o.status, o.courier, o.tracking_number, o.dispatch_date, o.email_sent, o.created_at,
	l.name, l.product, l.price, l.quantity, l.email
`

func scanOrderWithLead(row interface{ Scan(...interface{}) error }) (*models.OrderWithLead, error) {
	var o models.OrderWithLead
	err := row.Scan(&o.ID, &o.LeadID, &o.Status, &o.Courier, &o.TrackingNumber,
		&o.DispatchDate, &o.EmailSent, &o.CreatedAt,
		&o.LeadName, &o.Product, &o.Price, &o.Quantity, &o.LeadEmail)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID returns the order joined with its lead's billing fields.
func (r *OrderRepository) GetByID(id int) (*models.OrderWithLead, error) {
	query := `
		SELECT ` + orderWithLeadColumns + `
		FROM orders o
		JOIN leads l ON l.id = o.lead_id
		WHERE o.id = $1
	`
	o, err := scanOrderWithLead(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

// ListWithLead lists orders joined with lead fields, filtered by status and
// lead-name substring, sorted by a whitelisted column.
func (r *OrderRepository) ListWithLead(status, search, sortBy, order string, limit, offset int) ([]models.OrderWithLead, error) {
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	switch sortBy {
	case "name":
		sortBy = "l.name"
	case "dispatch_date", "":
		sortBy = "o.dispatch_date"
	default:
		sortBy = "o.dispatch_date"
	}

	query := `
		SELECT ` + orderWithLeadColumns + `
		FROM orders o
		JOIN leads l ON l.id = o.lead_id
		WHERE 1=1`
	args := []interface{}{}
	i := 1

	if status != "" {
		query += fmt.Sprintf(" AND o.status = $%d", i)
		args = append(args, status)
		i++
	}
	if search != "" {
		query += fmt.Sprintf(" AND l.name ILIKE $%d", i)
		args = append(args, "%"+search+"%")
		i++
	}

	query += fmt.Sprintf(" ORDER BY %s %s NULLS LAST LIMIT $%d OFFSET $%d", sortBy, order, i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OrderWithLead
	for rows.Next() {
		o, err := scanOrderWithLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) UpdateStatus(id int, status string) error {
	const query = `UPDATE orders SET status=$1 WHERE id=$2`
	res, err := r.db.Exec(query, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByLeadID removes all orders referencing the lead and reports how
// many rows went away. Deleting zero rows is not an error: the cascade is
// retried as-is after a partial failure.
func (r *OrderRepository) DeleteByLeadID(leadID int) (int64, error) {
	const query = `DELETE FROM orders WHERE lead_id=$1`
	res, err := r.db.Exec(query, leadID)
	if err != nil {
		return 0, fmt.Errorf("delete orders for lead %d: %w", leadID, err)
	}
	return res.RowsAffected()
}

// EligibleLeads computes {won leads} minus {leads already ordered} in one
// query, so the set can never be stale relative to the store.
func (r *OrderRepository) EligibleLeads() ([]models.EligibleLead, error) {
	const query = `
		SELECT l.id, l.name
		FROM leads l
		WHERE l.stage = $1
		  AND NOT EXISTS (SELECT 1 FROM orders o WHERE o.lead_id = l.id)
		ORDER BY l.name
	`
	rows, err := r.db.Query(query, models.StageWon)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EligibleLead
	for rows.Next() {
		var e models.EligibleLead
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkEmailSent flips the receipt flag and reports whether this call won
// the flip. The guard keeps a concurrent confirm from flipping it twice.
func (r *OrderRepository) MarkEmailSent(id int) (bool, error) {
	const query = `UPDATE orders SET email_sent=TRUE WHERE id=$1 AND email_sent=FALSE`
	res, err := r.db.Exec(query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *OrderRepository) CountOrders() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (r *OrderRepository) CountByStatus(status string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE status=$1`, status).Scan(&count)
	return count, err
}
