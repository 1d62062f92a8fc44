package order

// Patch is a partial order update. Nil pointer fields are left untouched.
// Paid and Delivered only ever move false -> true: a patch cannot un-pay or
// un-deliver an order.
type Patch struct {
	Paid      *bool   `json:"paid,omitempty"`
	Delivered *bool   `json:"delivered,omitempty"`
	Reference *string `json:"reference,omitempty"`
	ProofURL  *string `json:"proofUrl,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Apply merges the patch into the order, honoring flag monotonicity.
func (p Patch) Apply(o *Order) {
	if p.Paid != nil && *p.Paid {
		o.Payment.Paid = true
	}
	if p.Delivered != nil && *p.Delivered {
		o.Payment.Delivered = true
	}
	if p.Reference != nil {
		o.Payment.Reference = *p.Reference
	}
	if p.ProofURL != nil {
		o.Payment.ProofURL = *p.ProofURL
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
}

// MarkPaid returns a patch that sets the paid flag.
func MarkPaid() Patch {
	t := true
	return Patch{Paid: &t}
}

// MarkDelivered returns a patch that sets the delivered flag.
func MarkDelivered() Patch {
	t := true
	return Patch{Delivered: &t}
}
