package logging

// Standardized attribute keys. Warnings carry event_type plus error_hint and
// impact so operators can tell what happened and what it costs them.
const (
	FieldComponent = "component"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
)
