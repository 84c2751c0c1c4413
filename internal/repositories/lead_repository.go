package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"pipetrack/internal/models"
)

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadRepository{db: db}
}

// Create inserts the lead and fills in its generated id.
func (r *LeadRepository) Create(lead *models.Lead) error {
	const query = `
		INSERT INTO leads (name, company, contact_number, email, product, quantity, price, stage, follow_up_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.db.QueryRow(query,
		lead.Name, lead.Company, lead.ContactNumber, lead.Email,
		lead.Product, lead.Quantity, lead.Price, lead.Stage,
		lead.FollowUpDate, lead.CreatedAt,
	).Scan(&lead.ID)
}

func (r *LeadRepository) Update(lead *models.Lead) error {
	const query = `
		UPDATE leads
		SET name=$1, company=$2, contact_number=$3, email=$4, product=$5,
		    quantity=$6, price=$7, stage=$8, follow_up_date=$9
		WHERE id=$10
	`
	_, err := r.db.Exec(query,
		lead.Name, lead.Company, lead.ContactNumber, lead.Email,
		lead.Product, lead.Quantity, lead.Price, lead.Stage,
		lead.FollowUpDate, lead.ID,
	)
	return err
}

func (r *LeadRepository) UpdateStage(id int, stage string) error {
	const query = `UPDATE leads SET stage=$1 WHERE id=$2`
	res, err := r.db.Exec(query, stage, id)
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

func (r *LeadRepository) GetByID(id int) (*models.Lead, error) {
	const query = `
		SELECT id, name, company, contact_number, email, product, quantity, price, stage, follow_up_date, created_at
		FROM leads
		WHERE id=$1
	`
	row := r.db.QueryRow(query, id)
	lead := &models.Lead{}
	if err := row.Scan(&lead.ID, &lead.Name, &lead.Company, &lead.ContactNumber,
		&lead.Email, &lead.Product, &lead.Quantity, &lead.Price, &lead.Stage,
		&lead.FollowUpDate, &lead.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) CountLeads() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&count)
	return count, err
}

func (r *LeadRepository) CountByStage(stage string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM leads WHERE stage=$1`, stage).Scan(&count)
	return count, err
}

// FilterLeads lists leads filtered by stage and a name/company substring,
// sorted by a whitelisted column.
func (r *LeadRepository) FilterLeads(stage, search, sortBy, order string, limit, offset int) ([]models.Lead, error) {
	if sortBy == "" {
		sortBy = "created_at"
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	allowed := map[string]bool{"created_at": true, "name": true, "stage": true, "follow_up_date": true}
	if !allowed[sortBy] {
		sortBy = "created_at"
	}

	query := "SELECT id, name, company, contact_number, email, product, quantity, price, stage, follow_up_date, created_at FROM leads WHERE 1=1"
	args := []interface{}{}
	i := 1

	if stage != "" {
		query += fmt.Sprintf(" AND stage = $%d", i)
		args = append(args, stage)
		i++
	}
	if search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR company ILIKE $%d)", i, i)
		args = append(args, "%"+search+"%")
		i++
	}

	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortBy, order, i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Company, &l.ContactNumber,
			&l.Email, &l.Product, &l.Quantity, &l.Price, &l.Stage,
			&l.FollowUpDate, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
