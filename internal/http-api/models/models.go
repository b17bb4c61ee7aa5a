package models

// All lists the schema in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&Account{},
		&Artwork{},
		&Comment{},
		&Like{},
	}
}
