package logging

// Common attribute keys.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldAttempt    = "attempt"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldGeneration = "generation"
	FieldTier       = "tier"
	FieldRoute      = "route"

	FieldSchemaVersion = "schema_version"
)

// Component names.
const (
	ComponentAPI         = "api"
	ComponentSession     = "session"
	ComponentCredentials = "credentials"
	ComponentRouter      = "router"
	ComponentDashboard   = "dashboard"
	ComponentStorage     = "storage"
	ComponentCLI         = "cli"
)

// Component returns l tagged with the given component name.
func Component(l Logger, name string) Logger {
	if l == nil {
		l = Nop()
	}
	return l.With(FieldComponent, name)
}
