package discount

// UsageLog records which codes this client has already consumed. Codes are
// marked used when an order completes, not at validation time, so a client
// may validate repeatedly before committing.
type UsageLog interface {
	Used(code string) bool
	MarkUsed(code string) error
}

// Validator checks codes against a fixed table and a per-client usage log.
type Validator struct {
	table Table
}

// NewValidator creates a Validator over the given code table.
func NewValidator(table Table) *Validator {
	return &Validator{table: table}
}

// Validate returns the rule for a code, ErrUnknownCode when the code is not
// in the table, or ErrAlreadyUsed when the usage log shows it consumed.
// Validation does not mark the code used.
func (v *Validator) Validate(code string, usage UsageLog) (*Rule, error) {
	normalized := Normalize(code)

	rule, ok := v.table[normalized]
	if !ok {
		return nil, ErrUnknownCode
	}
	if usage != nil && usage.Used(normalized) {
		return nil, ErrAlreadyUsed
	}

	r := rule
	return &r, nil
}
