package transport

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindNetwork covers DNS, refused connections, resets and timeouts.
	KindNetwork Kind = iota + 1
	// KindProtocol is a response that could not be decoded.
	KindProtocol
	// KindHTTP is a non-2xx status other than 401, or a backend envelope
	// with success=false.
	KindHTTP
	// KindAuthExpired is a 401, or a session already torn down.
	KindAuthExpired
	// KindInvalid is a payload rejected locally before sending.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindProtocol:
		return "protocol"
	case KindHTTP:
		return "http"
	case KindAuthExpired:
		return "auth_expired"
	case KindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Messages shown to the user when the backend supplies none.
const (
	MsgNetwork     = "网络错误"
	MsgTimeout     = "请求超时"
	MsgProtocol    = "响应格式错误"
	MsgRequest     = "请求失败"
	MsgAuthExpired = "登录已过期"
)

// Failure is the error half of a Result.
type Failure struct {
	Kind    Kind
	Message string
	// Status is the HTTP status when one was received, else 0.
	Status int
	// Details carries the backend's error.details, if any.
	Details json.RawMessage
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", f.Kind, f.Status, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Is matches another *Failure by Kind, so errors.Is(err, &Failure{Kind: KindNetwork}) works.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

// Result is the untyped outcome of one call. Exactly one of Data or Err is
// meaningful, selected by Success.
type Result struct {
	Success bool
	// Data is the unwrapped payload. JSON null for empty bodies.
	Data json.RawMessage
	Err  *Failure
	// Status is the HTTP status of the final response, 0 if none arrived.
	Status int
}

func OK(status int, data json.RawMessage) Result {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return Result{Success: true, Data: data, Status: status}
}

func Fail(f *Failure) Result {
	return Result{Err: f, Status: f.Status}
}

// AuthExpired reports whether r is a 401-style failure.
func (r Result) AuthExpired() bool {
	return !r.Success && r.Err != nil && r.Err.Kind == KindAuthExpired
}

func NetworkFailure(msg string) *Failure {
	if msg == "" {
		msg = MsgNetwork
	}
	return &Failure{Kind: KindNetwork, Message: msg}
}

func AuthExpiredFailure() *Failure {
	return &Failure{Kind: KindAuthExpired, Message: MsgAuthExpired, Status: 401}
}

func InvalidFailure(msg string) *Failure {
	return &Failure{Kind: KindInvalid, Message: msg}
}
