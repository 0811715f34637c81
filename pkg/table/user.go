package table

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/synacor/argon2id"

	"niuniu-server/pkg/db"
)

const userColumns = `
users.id,
users.phone,
users.nickname,
users.balance,
users.password_hash,
users.created,
users.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrInvalidPhoneOrPassword is an error for an invalid phone number or password
var ErrInvalidPhoneOrPassword = UserError("invalid phone number and/or password")

// ErrDuplicateKey happens if a user tries to register a taken phone number
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// User is a record in the `users` table
type User struct {
	ID           int64  `json:"id"`
	Phone        string `json:"-"`
	Nickname     string `json:"nickname"`
	Balance      int    `json:"balance"`
	passwordHash string
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getUserByRow(row db.Scanner) (*User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.Phone, &user.Nickname, &user.Balance, &user.passwordHash, &user.Created, &user.Updated); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns the user based on the ID
func GetUserByID(ctx context.Context, id int64) (*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getUserByRow(row)
}

// GetUserByPhone will return a user by the phone number
func GetUserByPhone(ctx context.Context, phone string) (*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE phone = $1`

	row := db.Instance().QueryRowContext(ctx, query, phone)
	return getUserByRow(row)
}

// GetUserByPhoneAndPassword will return a user if the phone and password are valid
func GetUserByPhoneAndPassword(ctx context.Context, phone, password string) (*User, error) {
	user, err := GetUserByPhone(ctx, phone)
	if err != nil {
		if err == sql.ErrNoRows {
			// prevent timing attacks
			_ = argon2id.Compare("", "")
			return nil, ErrInvalidPhoneOrPassword
		}

		return nil, err
	}

	if err := user.ValidatePassword(password); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUser creates a new user
func CreateUser(ctx context.Context, phone, nickname, password string) (*User, error) {
	hashPassword, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO users (phone, nickname, balance, password_hash)
VALUES ($1, $2, 0, $3)
RETURNING id, created, updated`

	user := User{
		Phone:        phone,
		Nickname:     nickname,
		passwordHash: hashPassword,
	}

	row := db.Instance().QueryRowContext(ctx, query, phone, nickname, hashPassword)
	if err := row.Scan(&user.ID, &user.Created, &user.Updated); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return &user, nil
}

// ValidatePassword will validate a user's password
// Returns nil if the password is valid
func (u *User) ValidatePassword(password string) error {
	if err := argon2id.Compare(u.passwordHash, password); err != nil {
		return ErrInvalidPhoneOrPassword
	}

	return nil
}

// SetPassword sets a new password on the user. You must call Save() to persist the change.
func (u *User) SetPassword(password string) error {
	newHash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return err
	}

	u.passwordHash = newHash
	return nil
}

// Save will persist any changes made to the user to the database
func (u *User) Save(ctx context.Context) error {
	const query = `
UPDATE users
SET phone = $1,
    nickname = $2,
    password_hash = $3,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $4`

	_, err := db.Instance().ExecContext(ctx, query, u.Phone, u.Nickname, u.passwordHash, u.ID)
	return err
}

// AdjustUserBalance updates a user's global balance by delta
func AdjustUserBalance(ctx context.Context, userID int64, delta int) error {
	const query = `
UPDATE users
SET balance = balance + $1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	_, err := db.Instance().ExecContext(ctx, query, delta, userID)
	return err
}
