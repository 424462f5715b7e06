package olink

// Kind identifies the shape of a Message — the integer in its first
// tuple element. The numeric values are part of the wire contract and
// must not change.
type Kind int

const (
	KindLink           Kind = 10
	KindInit           Kind = 11
	KindUnlink         Kind = 12
	KindSetProperty    Kind = 20
	KindPropertyChange Kind = 21
	KindInvoke         Kind = 30
	KindInvokeReply    Kind = 31
	KindSignal         Kind = 40
	KindError          Kind = 90
)

func (k Kind) String() string {
	switch k {
	case KindLink:
		return "Link"
	case KindInit:
		return "Init"
	case KindUnlink:
		return "Unlink"
	case KindSetProperty:
		return "SetProperty"
	case KindPropertyChange:
		return "PropertyChange"
	case KindInvoke:
		return "Invoke"
	case KindInvokeReply:
		return "InvokeReply"
	case KindSignal:
		return "Signal"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}
