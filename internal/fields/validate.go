package fields

// requiredFields lists the fields a usable extraction must contain, in
// reporting order.
var requiredFields = []string{BorrowerName, LoanAmount}

// Validation reports whether an extraction contains every required field.
type Validation struct {
	IsValid       bool     `json:"is_valid"`
	MissingFields []string `json:"missing_fields"`
	Extracted     Set      `json:"extracted_data"`
}

// Validate checks an extraction against the required-field list. Pure,
// no side effects.
func Validate(s Set) Validation {
	var missing []string
	for _, f := range requiredFields {
		if _, ok := s[f]; !ok {
			missing = append(missing, f)
		}
	}
	return Validation{
		IsValid:       len(missing) == 0,
		MissingFields: missing,
		Extracted:     s,
	}
}
