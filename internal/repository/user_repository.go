package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gyansetu/internal/models"
	"gyansetu/internal/normalize"
)

const profileColumns = `id, role, first_name, last_name, username, email, mobile, password_hash,
	avatar_url, dob, gender, age, expertise, bio, rating, reviews, upi_id,
	bank_account_holder, bank_account_number, bank_ifsc, bank_upi_id, created_at`

type profileRow struct {
	ID                string    `db:"id"`
	Role              string    `db:"role"`
	FirstName         string    `db:"first_name"`
	LastName          string    `db:"last_name"`
	Username          string    `db:"username"`
	Email             string    `db:"email"`
	Mobile            string    `db:"mobile"`
	PasswordHash      string    `db:"password_hash"`
	AvatarURL         string    `db:"avatar_url"`
	DOB               string    `db:"dob"`
	Gender            string    `db:"gender"`
	Age               int       `db:"age"`
	Expertise         string    `db:"expertise"`
	Bio               string    `db:"bio"`
	Rating            float64   `db:"rating"`
	Reviews           int       `db:"reviews"`
	UPIID             string    `db:"upi_id"`
	BankAccountHolder string    `db:"bank_account_holder"`
	BankAccountNumber string    `db:"bank_account_number"`
	BankIFSC          string    `db:"bank_ifsc"`
	BankUPIID         string    `db:"bank_upi_id"`
	CreatedAt         time.Time `db:"created_at"`
}

func rowFromUser(u *models.User) profileRow {
	row := profileRow{
		ID:           u.ID,
		Role:         string(u.Role),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     normalize.Username(u.Username),
		Email:        normalize.Email(u.Email),
		Mobile:       normalize.Mobile(u.Mobile),
		PasswordHash: u.PasswordHash,
		AvatarURL:    u.ProfilePictureURL,
		DOB:          u.DOB,
		Gender:       u.Gender,
		CreatedAt:    u.CreatedAt,
	}
	if g := u.Guru; g != nil {
		row.Age = g.Age
		row.Expertise = g.Expertise
		row.Bio = g.Bio
		row.Rating = g.Rating
		row.Reviews = g.Reviews
		row.UPIID = g.UPIID
		if b := g.BankDetails; b != nil {
			row.BankAccountHolder = b.AccountHolder
			row.BankAccountNumber = b.AccountNumber
			row.BankIFSC = b.IFSC
			row.BankUPIID = b.UPIID
		}
	}
	return row
}

func (row profileRow) toUser() *models.User {
	u := &models.User{
		ID:                row.ID,
		Role:              models.Role(row.Role),
		FirstName:         row.FirstName,
		LastName:          row.LastName,
		Username:          row.Username,
		Email:             row.Email,
		Mobile:            row.Mobile,
		PasswordHash:      row.PasswordHash,
		ProfilePictureURL: row.AvatarURL,
		DOB:               row.DOB,
		Gender:            row.Gender,
		CreatedAt:         row.CreatedAt,
	}
	if u.Role == models.RoleGuru {
		u.Guru = &models.GuruProfile{
			Age:       row.Age,
			Expertise: row.Expertise,
			Bio:       row.Bio,
			Rating:    row.Rating,
			Reviews:   row.Reviews,
			UPIID:     row.UPIID,
		}
		if row.BankAccountNumber != "" {
			u.Guru.BankDetails = &models.BankDetails{
				AccountHolder: row.BankAccountHolder,
				AccountNumber: row.BankAccountNumber,
				IFSC:          row.BankIFSC,
				UPIID:         row.BankUPIID,
			}
		}
	}
	return u
}

// uniqueViolation maps a unique constraint failure onto the matching sentinel.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	switch pqErr.Constraint {
	case "profiles_email_key":
		return ErrEmailExists
	case "profiles_username_key":
		return ErrUsernameExists
	case "profiles_mobile_key":
		return ErrMobileExists
	}
	return nil
}

// updateProfileQuery rewrites every mutable column. Role, email, mobile and
// created_at are fixed at signup.
const updateProfileQuery = `
	UPDATE profiles
	SET first_name = $2, last_name = $3, username = $4, password_hash = $5, avatar_url = $6,
		dob = $7, gender = $8, age = $9, expertise = $10, bio = $11, rating = $12, reviews = $13,
		upi_id = $14, bank_account_holder = $15, bank_account_number = $16, bank_ifsc = $17,
		bank_upi_id = $18, updated_at = NOW()
	WHERE id = $1
`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	row := rowFromUser(user)

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.Role, row.FirstName, row.LastName, row.Username, row.Email, row.Mobile, row.PasswordHash,
		row.AvatarURL, row.DOB, row.Gender, row.Age, row.Expertise, row.Bio, row.Rating, row.Reviews, row.UPIID,
		row.BankAccountHolder, row.BankAccountNumber, row.BankIFSC, row.BankUPIID, row.CreatedAt,
	)
	if err != nil {
		if dup := uniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

func (r *userRepository) get(ctx context.Context, where string, args ...any) (*models.User, error) {
	var row profileRow

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + where + ` LIMIT 1`

	err := r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return row.toUser(), nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return r.get(ctx, `id = $1`, userID)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.get(ctx, `username = $1`, normalize.Username(username))
}

func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	mobile := normalize.Mobile(identifier)
	if mobile == "" {
		return nil, ErrNotFound
	}
	return r.get(ctx, `email = $1 OR username = $1 OR mobile = $2`, normalize.Email(identifier), mobile)
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var rows []profileRow

	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, id`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	users := make([]*models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	row := rowFromUser(user)

	result, err := r.db.ExecContext(ctx, updateProfileQuery,
		row.ID, row.FirstName, row.LastName, row.Username, row.PasswordHash, row.AvatarURL, row.DOB, row.Gender,
		row.Age, row.Expertise, row.Bio, row.Rating, row.Reviews, row.UPIID,
		row.BankAccountHolder, row.BankAccountNumber, row.BankIFSC, row.BankUPIID,
	)
	if err != nil {
		if dup := uniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
