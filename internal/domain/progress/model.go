package progress

// Completion marks that a user finished a specific day of a specific week.
// Absence of a record is the "not completed" state; a record is always
// completed. The (User, Week, Day) triple is the storage primary key.
type Completion struct {
	User string
	Week int
	Day  int
}
