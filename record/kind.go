package record

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a property value for merging and projection.
type Kind int

const (
	KindUnknown Kind = iota // func, chan and other values without a record view
	KindNull                // nil interface, nil pointer, nil map or nil slice
	KindScalar              // string, number, bool, identifier, time, ...
	KindFormula             // scalar whose text holds at least one {placeholder}
	KindList                // ordered, indexable sequence
	KindRecord              // value exposing its own named properties

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsScalar reports whether the kind is a scalar, formulas included.
func (k Kind) IsScalar() bool {
	return k == KindScalar || k == KindFormula
}

// IsContainer reports whether values of the kind hold other values.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindRecord
}
