package errs

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func Field(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Fields flattens the FieldErrors carried by err, including errors.Join trees.
func Fields(err error) []FieldDetail {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []FieldDetail
		for _, inner := range joined.Unwrap() {
			out = append(out, Fields(inner)...)
		}
		return out
	}
	var fe *FieldError
	if As(err, &fe) {
		return []FieldDetail{{Field: fe.Field, Message: fe.Err.Error()}}
	}
	return nil
}

// AsValidation marks field errors with ErrValidation and leaves anything else untouched.
func AsValidation(err error) error {
	var fe *FieldError
	if err != nil && As(err, &fe) {
		return Mark(err, ErrValidation)
	}
	return err
}
