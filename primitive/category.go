package primitive

// CategoryEnum is a set of conversion categories. A conversion happens only
// when one of the allowed categories contains its pair of kinds.
type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // number to number, every value fits
	CategoryUnsafeNumber                          // number to number, checked at run time
	CategoryTextNumber                            // number <-> decimal text
	CategoryNumericBool                           // integer 0 or 1 <-> bool
	CategoryTextualBool                           // true/false, yes/no, on/off <-> bool
	CategoryDatetime                              // RFC 3339 text <-> time.Time
	CategoryTimestamp                             // Unix seconds <-> time.Time
	CategoryDuration                              // text like 2h45m <-> time.Duration
	CategoryNanoseconds                           // integer nanoseconds <-> time.Duration
	CategorySeconds                               // float seconds <-> time.Duration
	CategoryEnumString                            // text or enum <-> enum, checked with IsValid
	CategoryIdentifier                            // text <-> uuid.UUID, unparsable text is uuid.Nil
	CategorySafeArray                             // list -> array that is long enough
	CategoryUnsafeArray                           // list -> array, longer lists are cut

	CategoryAll  = (1 << iota) - 1
	CategoryNone = 0
)

// mantissa bits, integers up to this width are exact in the float kind
var mantissa = map[KindEnum]int{
	KindFloat32: 24,
	KindFloat64: 53,
}

// Allowed reports whether any of the allowed categories permits the pair.
func Allowed(pair ConversionPair, allowed CategoryEnum) bool {
	return CategoryOf(pair)&allowed != 0
}

// CategoryOf returns the categories containing the pair, CategoryNone if there are none.
func CategoryOf(pair ConversionPair) CategoryEnum {
	var res CategoryEnum

	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if category.contains(pair) {
			res |= category
		}
	}

	return res
}

func (c CategoryEnum) Has(category CategoryEnum) bool {
	return c&category == category
}

// contains reports whether the single category c holds the pair.
func (c CategoryEnum) contains(p ConversionPair) bool {
	from, to := p.From, p.To

	switch c {
	case CategorySafeNumber:
		return from.IsNumber() && to.IsNumber() && safeNumber(from, to)
	case CategoryUnsafeNumber:
		return from.IsNumber() && to.IsNumber() && !safeNumber(from, to)
	case CategoryTextNumber:
		return oneWay(p, KindString, KindEnum.IsNumber)
	case CategoryNumericBool:
		return oneWay(p, KindBool, KindEnum.IsInteger)
	case CategoryTextualBool:
		return either(p, KindString, KindBool)
	case CategoryDatetime:
		return either(p, KindString, KindTime)
	case CategoryTimestamp:
		return oneWay(p, KindTime, KindEnum.IsInteger)
	case CategoryDuration:
		return either(p, KindString, KindDuration)
	case CategoryNanoseconds:
		return oneWay(p, KindDuration, func(k KindEnum) bool { return k.IsInteger() && k != KindUint64 })
	case CategorySeconds:
		return oneWay(p, KindDuration, KindEnum.IsFloat)
	case CategoryEnumString:
		return (from == KindPrimitiveEnum || to == KindPrimitiveEnum) && from.IsTextual() && to.IsTextual()
	case CategoryIdentifier:
		return either(p, KindString, KindUUID)
	}

	return false
}

// safeNumber reports whether every value of from is exact in to.
func safeNumber(from, to KindEnum) bool {
	if from == to {
		return true
	}

	f, t := from.traits(), to.traits()

	switch {
	case f.class == float:
		return t.class == float && f.maxBits <= t.minBits
	case t.class == float:
		return f.maxBits < mantissa[to]
	case f.class == t.class:
		return f.maxBits <= t.minBits
	case f.class == unsigned && t.class == signed:
		return f.maxBits < t.minBits
	}

	return false
}

func either(p ConversionPair, a, b KindEnum) bool {
	return p == ConversionPair{a, b} || p == ConversionPair{b, a}
}

func oneWay(p ConversionPair, fixed KindEnum, other func(KindEnum) bool) bool {
	return (p.From == fixed && other(p.To)) || (p.To == fixed && other(p.From))
}
