package templates

// DatasetRow is one registry entry on the index page.
type DatasetRow struct {
	Label  string
	File   string
	Format string
}
