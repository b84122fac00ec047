package ports

// SortField is the closed enumeration of sortable columns. Each list endpoint
// accepts only a subset; repositories map the enumeration to fixed column
// references so no caller-supplied identifier ever reaches the SQL text.
type SortField string

const (
	SortByName    SortField = "name"
	SortByEmail   SortField = "email"
	SortByAddress SortField = "address"
	SortByRole    SortField = "role"
	SortByRating  SortField = "rating"
	SortByDate    SortField = "date"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort pairs a whitelisted field with a direction.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// ParseSort normalizes raw query parameters against an allowed-field set.
// Unknown fields fall back to name ascending; anything other than "desc" is
// treated as ascending.
func ParseSort(field, direction string, allowed ...SortField) Sort {
	s := Sort{Field: SortByName, Direction: SortAsc}
	for _, a := range allowed {
		if SortField(field) == a {
			s.Field = a
			break
		}
	}
	if direction == string(SortDesc) {
		s.Direction = SortDesc
	}
	return s
}
