package domain

// Course represents a menu item of a shop.
// DurationMinutes is the base service duration used when a guest does
// not supply an explicit duration override.
type Course struct {
	ID              int64
	ShopID          int64
	Name            string
	Price           float64
	DurationMinutes int
}

// FindCourse looks up a course by id in a shop's menu.
// Returns nil when the id is not present.
func FindCourse(menu []Course, courseID int64) *Course {
	for i := range menu {
		if menu[i].ID == courseID {
			return &menu[i]
		}
	}
	return nil
}
