package types

// User represents a row in the users table.
// The table enforces nothing beyond the primary key and the column
// length limits; in particular usernames and emails may repeat.
type User struct {
	// ID is the identifier the storage engine assigns to the row.
	// It uniquely identifies the row and never changes after creation.
	ID int `json:"id" db:"id"`

	// Username is the account name, at most 50 characters.
	Username string `json:"username" db:"username"`

	// Email is the account's email address, at most 100 characters.
	Email string `json:"email" db:"email"`

	// Password holds at most 100 characters and is stored exactly as the
	// seed script provides it. It is never serialized.
	Password string `json:"-" db:"password"`
}
