package driven

// FieldNormaliser cleans one field of a term during import.
// Field names match the term schema: "name", "short_definition",
// "long_definition", or "*" for all fields.
type FieldNormaliser interface {
	// Name identifies the normaliser for logging
	Name() string

	// Fields returns the field names this normaliser applies to
	Fields() []string

	// Priority determines application order (higher runs first)
	Priority() int

	// Normalise transforms the raw field value
	Normalise(value string) string
}

// NormaliserRegistry manages field normalisers
type NormaliserRegistry interface {
	// Register adds a normaliser to the registry
	Register(n FieldNormaliser)

	// Apply runs all matching normalisers for a field, highest priority first
	Apply(field, value string) string

	// List returns the registered normaliser names
	List() []string
}
