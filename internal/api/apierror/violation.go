package apierror

// FieldViolation is a validation failure of a single field.
type FieldViolation struct {
	Field   string
	Message string
}

// ObjectViolation is a validation failure of a whole object.
type ObjectViolation struct {
	Object  string
	Message string
}

// ArgumentNotValid reports a request body that failed validation. Each
// violation becomes one detail line "<name> , <message>", field violations
// first and object violations after them.
func ArgumentNotValid(fields []FieldViolation, objects []ObjectViolation) *Error {
	details := make([]string, 0, len(fields)+len(objects))
	for _, f := range fields {
		details = append(details, f.Field+" , "+f.Message)
	}
	for _, o := range objects {
		details = append(details, o.Object+" , "+o.Message)
	}
	return New(KindArgumentNotValid, details...)
}
