package table

// UserError is a validation error whose text may be echoed back to the
// client verbatim
type UserError string

// Error implements the error interface
func (u UserError) Error() string {
	return string(u)
}
