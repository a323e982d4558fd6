package store

// Sortable column whitelists for paginated listing. The first entry of each
// list is the default sort column. These names must match the columns the
// storage backends actually order by.
var (
	UserSortableColumns = []string{"created_at", "updated_at", "username"}
	TodoSortableColumns = []string{"created_at", "updated_at", "title", "is_completed"}
)
