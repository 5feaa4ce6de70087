package chain

//go:generate go tool stringer -type=Operation -trimprefix=Op -output=operation_string.go
//go:generate go tool stringer -type=LinkAccess -trimprefix=Link -output=linkaccess_string.go

// Operation is the runtime operation a call site asked for. Its String form
// is used in artifact names.
type Operation int

const (
	OpWhenChanged Operation = iota
	OpWhenChanging
	OpBind
)

// Operations lists every operation in generation order.
var Operations = []Operation{OpWhenChanged, OpWhenChanging, OpBind}

// ParseOperation maps an operation name back to its value.
func ParseOperation(s string) (Operation, bool) {
	for _, op := range Operations {
		if op.String() == s {
			return op, true
		}
	}

	return 0, false
}

// LinkAccess describes how a link reads its property.
type LinkAccess int

const (
	LinkField  LinkAccess = iota // struct field
	LinkGetter                   // zero-argument method
)

// ReceiverKind tells whether the chain was requested on the enclosing
// method's own receiver or on some other value.
type ReceiverKind int

const (
	ReceiverExternal ReceiverKind = iota
	ReceiverSelf
)

// String returns a human-readable receiver kind.
func (k ReceiverKind) String() string {
	switch k {
	case ReceiverExternal:
		return "external"
	case ReceiverSelf:
		return "self"
	default:
		return UnknownStr
	}
}

// RequestedVisibility is the surface the call site would like the generated
// code to live on.
type RequestedVisibility int

const (
	RequestExtension RequestedVisibility = iota
	RequestMember
)

// String returns a human-readable requested visibility.
func (v RequestedVisibility) String() string {
	switch v {
	case RequestExtension:
		return "extension"
	case RequestMember:
		return "member"
	default:
		return UnknownStr
	}
}

// ConversionKind classifies a bound chain's conversion function.
type ConversionKind int

const (
	ConversionNone   ConversionKind = iota
	ConversionValue                 // converts between value types
	ConversionObject                // may construct a new intermediate object
)

// String returns a human-readable conversion kind.
func (k ConversionKind) String() string {
	switch k {
	case ConversionNone:
		return "none"
	case ConversionValue:
		return "value"
	case ConversionObject:
		return "object"
	default:
		return UnknownStr
	}
}
